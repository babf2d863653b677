package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fulcrum-wms/packer/internal/httpapi/apierror"
)

// GetPalletRun handles GET /api/pallet-runs/:orderNumber — the most
// recent archived run for that order, looked up by joining through the
// order number (the archive itself is indexed by order id; this handler
// is the one place that still needs the sqlx side to resolve the number).
func (s *Server) GetPalletRun(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	var orderID int64
	err := s.db.GetContext(c.Request.Context(), &orderID, `SELECT id FROM orders WHERE order_number = $1`, orderNumber)
	if err != nil {
		apierror.NotFound(c, "order not found")
		return
	}

	run, err := s.archive.ByOrderID(c.Request.Context(), orderID)
	if err != nil {
		apierror.NotFound(c, "no pallet run recorded for this order")
		return
	}

	c.JSON(http.StatusOK, run)
}
