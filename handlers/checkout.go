package handlers

import (
	"errors"
	"net/http"
	"sync"

	"storefront/checkout"
	"storefront/middleware"
	"storefront/models"
	"storefront/orders"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	Submitter *checkout.Submitter
	Lock      *sync.Mutex
}

func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	h.Lock.Lock()
	defer h.Lock.Unlock()

	c.JSON(http.StatusOK, h.Submitter.Summary())
}

// PlaceOrder holds the cart lock for the whole submission so the cart cannot
// change between building the draft and clearing it.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
		PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}

	h.Lock.Lock()
	defer h.Lock.Unlock()

	result, err := h.Submitter.Submit(c.Request.Context(), middleware.Token(c), req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		var validationErr *checkout.ValidationError
		var submissionErr *checkout.SubmissionError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty"})
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "fields": validationErr.Fields})
		case errors.As(err, &submissionErr):
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, gin.H{"error": submissionErr.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":     result.Order,
		"view":      orders.View(result.Order),
		"refreshed": result.Refreshed,
	})
}
