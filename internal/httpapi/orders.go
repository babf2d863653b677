package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fulcrum-wms/packer/internal/httpapi/apierror"
	"github.com/fulcrum-wms/packer/internal/models"
	"github.com/fulcrum-wms/packer/internal/repository"
	"github.com/fulcrum-wms/packer/internal/wshub"
)

// CreateOrderRequest is the request body for POST /api/orders.
type CreateOrderRequest struct {
	OrderNumber string              `json:"order_number" binding:"required"`
	Lines       []CreateOrderLineIn `json:"lines" binding:"required,dive"`
}

// CreateOrderLineIn is one line of a CreateOrderRequest.
type CreateOrderLineIn struct {
	SKU      string `json:"sku" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "invalid order request", err)
		return
	}

	order := &models.Order{OrderNumber: req.OrderNumber}
	lines := make([]models.OrderLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = models.OrderLine{SKU: l.SKU, Quantity: l.Quantity}
	}

	orders := repository.NewOrderRepository(s.db)
	if err := orders.Create(c.Request.Context(), order, lines); err != nil {
		s.log.Error("create order failed", zap.Error(err))
		apierror.Internal(c, "failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierror.BadRequest(c, "invalid order id", err)
		return
	}

	orders := repository.NewOrderRepository(s.db)
	order, err := orders.GetByID(c.Request.Context(), id)
	if err != nil {
		apierror.NotFound(c, "order not found")
		return
	}

	lines, err := orders.ListLines(c.Request.Context(), id)
	if err != nil {
		apierror.Internal(c, "failed to load order lines")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "lines": lines})
}

// TriggerPack handles POST /api/orders/:id/pack. It never runs the
// pipeline inline: it validates the order is eligible, enqueues its id,
// and returns 202 — internal/pipeline.Runner processes it asynchronously.
func (s *Server) TriggerPack(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apierror.BadRequest(c, "invalid order id", err)
		return
	}

	orders := repository.NewOrderRepository(s.db)
	order, err := orders.GetByID(c.Request.Context(), id)
	if err != nil {
		apierror.NotFound(c, "order not found")
		return
	}
	if order.Status != models.OrderStatusNew {
		apierror.BadRequest(c, "order is not eligible for packing", nil)
		return
	}

	s.queue.Enqueue(id)
	s.metrics.QueueDepth.Set(float64(s.queue.Len()))
	s.hub.Broadcast(wshub.Event{Type: wshub.EventQueued, OrderID: id})

	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
