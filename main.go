package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/api"
	"storefront/cart"
	"storefront/checkout"
	"storefront/config"
	"storefront/database"
	"storefront/middleware"
	"storefront/orders"
	"storefront/routes"
	"storefront/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// cartStore is what main needs from a backend: the cart contract plus the
// failure status reported by /health.
type cartStore interface {
	cart.Store
	routes.StoreStatus
}

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal().Err(err).Msg("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	config.SetupLogger(cfg)

	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		log.Fatal().Err(err).Msg("Environment validation failed")
	}

	store, closeStore := openStore(cfg)
	defer closeStore()

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	shoppingCart := cart.New(store)
	book := orders.NewBook()
	submitter := checkout.NewSubmitter(shoppingCart, client, book, cfg.DeliveryFee)

	log.Info().
		Str("store", cfg.CartStore).
		Int("items", shoppingCart.TotalItems()).
		Str("api", cfg.APIBaseURL).
		Msg("cart restored")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	origins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		origins = []string{cfg.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", api.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", api.HeaderRequestID},
		AllowCredentials: true,
	}))

	limiter := middleware.NewRateLimiter(30, time.Minute)
	defer limiter.Stop()

	routes.SetupRoutes(r, routes.Dependencies{
		Cart:      shoppingCart,
		Book:      book,
		Submitter: submitter,
		API:       client,
		Store:     store,
		Limiter:   limiter,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// openStore builds the configured cart backend. A backend that cannot be
// reached at startup falls back to memory so the session still works.
func openStore(cfg *config.Config) (cartStore, func()) {
	switch cfg.CartStore {
	case config.StoreSQLite, config.StorePostgres:
		db, err := database.Connect(cfg)
		if err == nil {
			err = database.Migrate(db)
		}
		if err != nil {
			log.Error().Err(err).Str("store", cfg.CartStore).Msg("cart database unavailable, using memory")
			return storage.NewMemoryStore(cfg.CartKey), func() {}
		}
		return storage.NewRecordStore(db, cfg.CartKey), func() { closeDB(db) }

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis not reachable, cart will load empty until it is")
		}
		return storage.NewRedisStore(rdb, cfg.CartKey, 0), func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing redis client")
			}
		}

	default:
		return storage.NewMemoryStore(cfg.CartKey), func() {}
	}
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("Error closing database connection")
		return
	}
	log.Info().Msg("Database connection closed")
}
