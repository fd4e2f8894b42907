package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"storefront/api"
	"storefront/middleware"
	"storefront/models"
	"storefront/orders"

	"github.com/gin-gonic/gin"
)

// OrderService is the read and cancel side of the order API.
type OrderService interface {
	GetUserOrders(ctx context.Context, token string, query api.OrderQuery) (*models.OrderList, error)
	GetOrder(ctx context.Context, token, id string) (*models.Order, error)
	CancelOrder(ctx context.Context, token, id string) (*models.Order, error)
}

type OrderHandler struct {
	API  OrderService
	Book *orders.Book
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	query := api.OrderQuery{Status: c.Query("status")}
	for name, dst := range map[string]*int{"page": &query.Page, "limit": &query.Limit} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
			return
		}
		*dst = n
	}

	// Omitted paging falls back to the page last shown.
	h.Book.SetPagination(models.Pagination{Page: query.Page, Limit: query.Limit})
	paging := h.Book.Pagination()
	query.Page, query.Limit = paging.Page, paging.Limit

	list, err := h.API.GetUserOrders(c.Request.Context(), middleware.Token(c), query)
	if err != nil {
		h.Book.SetError("Failed to fetch orders")
		respondUpstreamError(c, err, "Failed to fetch orders")
		return
	}
	h.Book.Replace(*list)

	views := make([]orders.OrderView, 0, len(list.Orders))
	for _, o := range list.Orders {
		views = append(views, orders.View(o))
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":     views,
		"pagination": h.Book.Pagination(),
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.API.GetOrder(c.Request.Context(), middleware.Token(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, api.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		respondUpstreamError(c, err, "Failed to fetch order")
		return
	}

	h.Book.Select(*order)
	c.JSON(http.StatusOK, orders.View(*order))
}

// GetSelectedOrder returns the order last opened through GetOrder.
func (h *OrderHandler) GetSelectedOrder(c *gin.Context) {
	order, ok := h.Book.Selected()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No order selected"})
		return
	}
	c.JSON(http.StatusOK, orders.View(order))
}

func (h *OrderHandler) ClearSelectedOrder(c *gin.Context) {
	h.Book.ClearSelected()
	c.JSON(http.StatusOK, gin.H{"message": "Selection cleared"})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.API.CancelOrder(c.Request.Context(), middleware.Token(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, api.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		respondUpstreamError(c, err, "Failed to cancel order")
		return
	}

	h.Book.Update(*order)
	c.JSON(http.StatusOK, orders.View(*order))
}
