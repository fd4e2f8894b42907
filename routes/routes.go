package routes

import (
	"net/http"
	"sync"

	"storefront/cart"
	"storefront/checkout"
	"storefront/handlers"
	"storefront/middleware"
	"storefront/orders"

	"github.com/gin-gonic/gin"
)

// OrderAPI is everything the edge needs from the remote API.
type OrderAPI interface {
	handlers.ProductLookup
	handlers.OrderService
}

// StoreStatus reports the last persistence failure, if any.
type StoreStatus interface {
	LastError() error
}

type Dependencies struct {
	Cart      *cart.Cart
	Book      *orders.Book
	Submitter *checkout.Submitter
	API       OrderAPI
	Store     StoreStatus
	Limiter   *middleware.RateLimiter
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	// Every cart read and write goes through this lock.
	cartLock := &sync.Mutex{}

	cartHandler := &handlers.CartHandler{Cart: deps.Cart, Catalog: deps.API, Lock: cartLock}
	checkoutHandler := &handlers.CheckoutHandler{Submitter: deps.Submitter, Lock: cartLock}
	orderHandler := &handlers.OrderHandler{API: deps.API, Book: deps.Book}

	api := r.Group("/api")
	api.Use(middleware.BearerToken())
	if deps.Limiter != nil {
		api.Use(deps.Limiter.Middleware())
	}
	{
		// Cart routes
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items", cartHandler.AddToCart)
		api.PUT("/cart/items/:productId", cartHandler.UpdateCartItem)
		api.DELETE("/cart/items/:productId", cartHandler.RemoveFromCart)
		api.DELETE("/cart", cartHandler.ClearCart)
		api.POST("/cart/toggle", cartHandler.ToggleCart)
		api.POST("/cart/close", cartHandler.CloseCart)

		api.GET("/checkout/summary", checkoutHandler.GetSummary)
	}

	// Protected routes (require a bearer token)
	protected := api.Group("")
	protected.Use(middleware.RequireToken())
	{
		protected.POST("/checkout", checkoutHandler.PlaceOrder)

		protected.GET("/orders", orderHandler.GetOrders)
		protected.GET("/orders/selected", orderHandler.GetSelectedOrder)
		protected.DELETE("/orders/selected", orderHandler.ClearSelectedOrder)
		protected.GET("/orders/:id", orderHandler.GetOrder)
		protected.PUT("/orders/:id/cancel", orderHandler.CancelOrder)
	}

	// Health check, outside /api so a stale bearer token cannot fail it
	r.GET("/health", health(deps.Store, deps.Book))
}

func health(store StoreStatus, book *orders.Book) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok"}
		if store != nil {
			if err := store.LastError(); err != nil {
				body["status"] = "degraded"
				body["store"] = err.Error()
			}
		}
		if book != nil {
			if msg := book.Error(); msg != "" {
				body["status"] = "degraded"
				body["orders"] = msg
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
