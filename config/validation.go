package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequireRedis    bool
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI:          {},
		Production: {
			RequiredEnvVars: []string{
				"SERVER_PORT",
			},
			RequireRedis: true,
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	// Validate environment variables
	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	if reqs.RequireRedis && !cfg.UseRedis() {
		errors = append(errors, ValidationError{Field: "REDIS_URL", Message: "REDIS_URL or REDIS_HOST is required in production"}.Error())
	}

	if u, err := url.Parse(cfg.MealDBBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, ValidationError{Field: "MEALDB_BASE_URL", Message: fmt.Sprintf("invalid URL %q", cfg.MealDBBaseURL)}.Error())
	}

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}.Error())
	}

	if cfg.SessionTTL <= 0 {
		errors = append(errors, ValidationError{Field: "SESSION_TTL", Message: "must be positive"}.Error())
	}
	if cfg.SearchLockTTL <= 0 {
		errors = append(errors, ValidationError{Field: "SEARCH_LOCK_TTL", Message: "must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
