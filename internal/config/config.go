package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Promo    PromoConfig
	Cart     CartConfig
	Orders   OrderConfig
	Events   EventConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	PublicBaseURL   string // used for links embedded in order QR codes
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for operator endpoints
}

type PromoConfig struct {
	Sources []string // local paths or http(s) URLs, plain text or gzip
}

type CartConfig struct {
	Backend   string // memory | redis
	RedisAddr string
	TTLHours  int
}

type OrderConfig struct {
	Backend     string // memory | postgres
	DatabaseURL string
}

type EventConfig struct {
	Brokers []string
	Topic   string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Promo: PromoConfig{
			Sources: getEnvAsSlice("PROMO_FILES", nil),
		},
		Cart: CartConfig{
			Backend:   strings.ToLower(getEnv("CART_BACKEND", "memory")),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
			TTLHours:  getEnvAsInt("CART_TTL_HOURS", 72),
		},
		Orders: OrderConfig{
			Backend:     strings.ToLower(getEnv("ORDER_BACKEND", "memory")),
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Events: EventConfig{
			Brokers: getEnvAsSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "orders"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Cart.Backend {
	case "memory":
	case "redis":
		if c.Cart.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CART_BACKEND=redis")
		}
	default:
		return fmt.Errorf("invalid cart backend: %s (must be memory or redis)", c.Cart.Backend)
	}

	switch c.Orders.Backend {
	case "memory":
	case "postgres":
		if c.Orders.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when ORDER_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("invalid order backend: %s (must be memory or postgres)", c.Orders.Backend)
	}

	if c.Cart.TTLHours <= 0 {
		return fmt.Errorf("CART_TTL_HOURS must be positive")
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
