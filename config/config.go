package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Cart store backends.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type Config struct {
	Env         string
	Port        string
	LogLevel    string
	APIBaseURL  string
	HTTPTimeout time.Duration
	CartStore   string
	CartDBPath  string
	DatabaseURL string
	RedisAddr   string
	CartKey     string
	DeliveryFee decimal.Decimal
	FrontendURL string
}

// LoadEnv reads .env from the working directory into the environment. A
// missing file is normal outside local development; one that exists but
// cannot be read or parsed is an error.
func LoadEnv() error {
	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if os.Getenv("API_BASE_URL") == "" {
		missing = append(missing, "API_BASE_URL")
	}
	switch GetEnv("CART_STORE", StoreSQLite) {
	case StorePostgres:
		if os.Getenv("DATABASE_URL") == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StoreRedis:
		if os.Getenv("REDIS_ADDR") == "" {
			log.Warn().Msg("REDIS_ADDR not set - using localhost:6379")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if os.Getenv("FRONTEND_URL") == "" {
		log.Warn().Msg("FRONTEND_URL not set - CORS will only allow http://localhost:3000")
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Load reads the environment into a Config. Call LoadEnv first to pick up a
// .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         GetEnv("APP_ENV", "development"),
		Port:        GetEnv("PORT", "8081"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		APIBaseURL:  strings.TrimRight(GetEnv("API_BASE_URL", "http://localhost:3030/api"), "/"),
		CartStore:   strings.ToLower(GetEnv("CART_STORE", StoreSQLite)),
		CartDBPath:  GetEnv("CART_DB_PATH", "storefront.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   GetEnv("REDIS_ADDR", "localhost:6379"),
		CartKey:     GetEnv("CART_KEY", "userCart"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	timeout, err := time.ParseDuration(GetEnv("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	fee, err := decimal.NewFromString(GetEnv("DELIVERY_FEE", "2.99"))
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_FEE: %w", err)
	}
	if fee.IsNegative() {
		return nil, fmt.Errorf("invalid DELIVERY_FEE: must not be negative")
	}
	cfg.DeliveryFee = fee

	switch cfg.CartStore {
	case StoreSQLite, StorePostgres, StoreRedis, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid CART_STORE %q", cfg.CartStore)
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
