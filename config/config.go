package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	AgencyBaseURL        string        // Agency backend base URL
	AgencyTimeout        time.Duration // HTTP timeout for agency calls
	Port                 string        // Service port
	CacheTTL             time.Duration // In-process session cache TTL
	SessionTTL           time.Duration // Durable session lifetime
	SessionSecret        string        // Secret for signing session cookies
	SessionIssuer        string        // Session cookie JWT issuer claim
	SessionAudience      string        // Session cookie JWT audience claim
	RedisURL             string        // Redis URL; empty selects the in-memory store
	InternalSharedSecret string        // Shared secret for internal endpoints
	LogoutForceLocal     bool          // Clear local session even when backend logout fails
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		AgencyBaseURL:        getEnv("AGENCY_BASE_URL", "http://agency-api:8080"),
		AgencyTimeout:        10 * time.Second,
		Port:                 getEnv("PORT", "8888"),
		CacheTTL:             5 * time.Minute,
		SessionTTL:           12 * time.Hour,
		SessionSecret:        getEnv("SESSION_SECRET", ""),
		SessionIssuer:        getEnv("SESSION_ISSUER", "herald-hub"),
		SessionAudience:      getEnv("SESSION_AUDIENCE", "herald-frontend"),
		RedisURL:             getEnv("REDIS_URL", ""),
		InternalSharedSecret: getEnv("INTERNAL_SHARED_SECRET", ""),
		LogoutForceLocal:     getEnv("LOGOUT_FORCE_LOCAL", "true") != "false",
	}

	if timeoutStr := os.Getenv("AGENCY_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid AGENCY_TIMEOUT format: %w", err)
		}
		config.AgencyTimeout = duration
	}

	if cacheTTLStr := os.Getenv("CACHE_TTL"); cacheTTLStr != "" {
		duration, err := time.ParseDuration(cacheTTLStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL format: %w", err)
		}
		config.CacheTTL = duration
	}

	if sessionTTLStr := os.Getenv("SESSION_TTL"); sessionTTLStr != "" {
		duration, err := time.ParseDuration(sessionTTLStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL format: %w", err)
		}
		config.SessionTTL = duration
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AgencyBaseURL == "" {
		return fmt.Errorf("AGENCY_BASE_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.AgencyTimeout <= 0 {
		return fmt.Errorf("AGENCY_TIMEOUT must be positive")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.CacheTTL > c.SessionTTL {
		return fmt.Errorf("CACHE_TTL must not exceed SESSION_TTL")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
