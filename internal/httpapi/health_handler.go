package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fulcrum-wms/packer/internal/health"
)

// Health handles GET /api/health.
func (s *Server) Health(c *gin.Context) {
	report := s.health.Check(c.Request.Context())

	status := http.StatusOK
	if report.Status == health.StatusCritical {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
