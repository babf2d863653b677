package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fulcrum-wms/packer/internal/httpapi/apierror"
	"github.com/fulcrum-wms/packer/internal/repository"
)

// GetUser handles GET /api/users/:id. Identity lookup only, for attributing
// who triggered a given pack run in the operator UI — there is no
// authentication layer behind it.
func (s *Server) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.BadRequest(c, "invalid user id", err)
		return
	}

	users := repository.NewUserRepository(s.db)
	u, err := users.GetByID(c.Request.Context(), id)
	if err != nil {
		apierror.NotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, u)
}
