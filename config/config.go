package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Recipe API configuration
	MealDBBaseURL string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Session configuration
	SessionTTL    time.Duration
	SearchLockTTL time.Duration
}

// Defaults used when a variable is not set
const (
	DefaultServerPort    = "8080"
	DefaultServerHost    = "0.0.0.0"
	DefaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1/"
	DefaultSessionTTL    = 24 * time.Hour
	DefaultSearchLockTTL = 30 * time.Second
)

// LoadConfig creates a new Config instance with values from environment
// variables. A .env file in the working directory is read first when present;
// variables already set in the environment win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg, err := loadEnvConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads every setting from the environment, applying defaults
func loadEnvConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", DefaultServerPort),
		ServerHost:    getEnv("SERVER_HOST", DefaultServerHost),
		MealDBBaseURL: getEnv("MEALDB_BASE_URL", DefaultMealDBBaseURL),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", DefaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.SearchLockTTL, err = getDuration("SEARCH_LOCK_TTL", DefaultSearchLockTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UseRedis reports whether session state should live in Redis
func (c *Config) UseRedis() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
