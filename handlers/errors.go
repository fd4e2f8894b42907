package handlers

import (
	"errors"
	"net/http"

	"storefront/api"

	"github.com/gin-gonic/gin"
)

// respondUpstreamError maps an order-service failure onto the edge response.
// Client errors from the service keep their status and message; anything
// else is a bad gateway.
func respondUpstreamError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}
