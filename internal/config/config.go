package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Reconciliation engine
	EngineBaseURL  string
	EngineTimeout  time.Duration
	BreakerEnabled bool

	// Uploads
	UploadMaxBytes int64

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		EngineBaseURL:  getEnv("ENGINE_BASE_URL", "http://localhost:5000"),
		EngineTimeout:  getEnvDuration("ENGINE_TIMEOUT", 15*time.Second),
		BreakerEnabled: getEnvBool("ENGINE_BREAKER_ENABLED", true),

		UploadMaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 10<<20)),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate engine URL
	if c.EngineBaseURL == "" {
		errors = append(errors, "engine base URL cannot be empty")
	} else if parsedURL, err := url.Parse(c.EngineBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid engine base URL '%s': %v", c.EngineBaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid engine base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	}

	if c.EngineTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid engine timeout %v: must be at least 1 second", c.EngineTimeout))
	} else if c.EngineTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid engine timeout %v: must be at most 5 minutes", c.EngineTimeout))
	}

	// Validate upload limit
	if c.UploadMaxBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid upload limit %d: must be at least 1KB", c.UploadMaxBytes))
	} else if c.UploadMaxBytes > 256<<20 {
		errors = append(errors, fmt.Sprintf("invalid upload limit %d: must be at most 256MB", c.UploadMaxBytes))
	}

	// Validate logging
	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
