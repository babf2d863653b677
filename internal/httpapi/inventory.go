package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fulcrum-wms/packer/internal/cache"
	"github.com/fulcrum-wms/packer/internal/httpapi/apierror"
	"github.com/fulcrum-wms/packer/internal/repository"
)

// GetInventoryLocation handles GET /api/inventory/:productID. The result
// is read through internal/cache first; a cache miss falls back to the
// repository and repopulates the cache.
func (s *Server) GetInventoryLocation(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		apierror.BadRequest(c, "invalid product id", err)
		return
	}

	key := cache.ProductKey(productID.String())
	var location string
	if s.cache.Get(c.Request.Context(), key, &location) {
		c.JSON(http.StatusOK, gin.H{"product_id": productID, "location": location, "cached": true})
		return
	}

	inventory := repository.NewInventoryRepository(s.db)
	location, err = inventory.LocationForProduct(c.Request.Context(), productID)
	if err != nil {
		apierror.NotFound(c, "no inventory found for product")
		return
	}

	s.cache.Set(c.Request.Context(), key, location)
	c.JSON(http.StatusOK, gin.H{"product_id": productID, "location": location, "cached": false})
}
