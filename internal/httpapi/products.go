package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fulcrum-wms/packer/internal/httpapi/apierror"
	"github.com/fulcrum-wms/packer/internal/models"
	"github.com/fulcrum-wms/packer/internal/repository"
)

// CreateProductRequest is the request body for POST /api/products.
type CreateProductRequest struct {
	SKU          string  `json:"sku" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	WidthCM      int     `json:"width_cm" binding:"required,gt=0"`
	DepthCM      int     `json:"depth_cm" binding:"required,gt=0"`
	HeightCM     int     `json:"height_cm" binding:"required,gt=0"`
	WeightKG     float64 `json:"weight_kg" binding:"gte=0"`
	IsFragile    bool    `json:"is_fragile"`
	AllowTipping bool    `json:"allow_tipping"`
}

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(c *gin.Context) {
	products := repository.NewProductRepository(s.db)
	list, err := products.List(c.Request.Context())
	if err != nil {
		s.log.Error("list products failed", zap.Error(err))
		apierror.Internal(c, "failed to list products")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.BadRequest(c, "invalid product request", err)
		return
	}

	p := &models.Product{
		SKU: req.SKU, Name: req.Name,
		WidthCM: req.WidthCM, DepthCM: req.DepthCM, HeightCM: req.HeightCM,
		WeightKG: req.WeightKG, IsFragile: req.IsFragile, AllowTipping: req.AllowTipping,
	}

	products := repository.NewProductRepository(s.db)
	if err := products.Create(c.Request.Context(), p); err != nil {
		s.log.Error("create product failed", zap.Error(err))
		apierror.Internal(c, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, p)
}
