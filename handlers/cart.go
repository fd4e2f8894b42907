package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"storefront/api"
	"storefront/cart"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

// ProductLookup resolves a product id to the catalog's current snapshot.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// CartHandler serves the cart. Lock is shared with CheckoutHandler so that
// every cart access happens one at a time.
type CartHandler struct {
	Cart    *cart.Cart
	Catalog ProductLookup
	Lock    *sync.Mutex
}

func (h *CartHandler) GetCart(c *gin.Context) {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	c.JSON(http.StatusOK, h.Cart.Snapshot())
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req struct {
		Product   *models.Product `json:"product"`
		ProductID string          `json:"productId"`
		Quantity  int             `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var product models.Product
	switch {
	case req.Product != nil && req.Product.ID != "":
		product = *req.Product
	case req.ProductID != "":
		p, err := h.Catalog.GetProduct(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, api.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			respondUpstreamError(c, err, "Failed to fetch product")
			return
		}
		product = *p
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "product or productId is required"})
		return
	}

	h.Lock.Lock()
	defer h.Lock.Unlock()

	h.Cart.AddItem(product, req.Quantity)
	c.JSON(http.StatusOK, h.Cart.Snapshot())
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	h.Lock.Lock()
	defer h.Lock.Unlock()

	h.Cart.SetQuantity(c.Param("productId"), *req.Quantity)
	c.JSON(http.StatusOK, h.Cart.Snapshot())
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	h.Cart.RemoveItem(c.Param("productId"))
	c.JSON(http.StatusOK, h.Cart.Snapshot())
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	h.Cart.Clear()
	c.JSON(http.StatusOK, h.Cart.Snapshot())
}

func (h *CartHandler) ToggleCart(c *gin.Context) {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	h.Cart.Toggle()
	c.JSON(http.StatusOK, gin.H{"isOpen": h.Cart.IsOpen()})
}

func (h *CartHandler) CloseCart(c *gin.Context) {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	h.Cart.Close()
	c.JSON(http.StatusOK, gin.H{"isOpen": h.Cart.IsOpen()})
}
