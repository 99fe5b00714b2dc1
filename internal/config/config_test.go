package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "8080",
		EngineBaseURL:  "http://localhost:5000",
		EngineTimeout:  15 * time.Second,
		UploadMaxBytes: 10 << 20,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty engine URL",
			mutate:      func(c *Config) { c.EngineBaseURL = "" },
			wantErr:     true,
			errorString: "engine base URL cannot be empty",
		},
		{
			name:        "engine URL with bad scheme",
			mutate:      func(c *Config) { c.EngineBaseURL = "ftp://engine:21" },
			wantErr:     true,
			errorString: "invalid engine base URL scheme 'ftp'",
		},
		{
			name:        "engine timeout too short",
			mutate:      func(c *Config) { c.EngineTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "engine timeout too long",
			mutate:      func(c *Config) { c.EngineTimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
		{
			name:        "upload limit too small",
			mutate:      func(c *Config) { c.UploadMaxBytes = 100 },
			wantErr:     true,
			errorString: "must be at least 1KB",
		},
		{
			name:        "upload limit too large",
			mutate:      func(c *Config) { c.UploadMaxBytes = 1 << 30 },
			wantErr:     true,
			errorString: "must be at most 256MB",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	vars := []string{
		"PORT", "ENGINE_BASE_URL", "ENGINE_TIMEOUT",
		"ENGINE_BREAKER_ENABLED", "UPLOAD_MAX_BYTES", "LOG_LEVEL", "LOG_FORMAT",
	}
	for _, key := range vars {
		os.Unsetenv(key)
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8080" {
			t.Errorf("Load() Port = %v, want 8080", cfg.Port)
		}
		if cfg.EngineBaseURL != "http://localhost:5000" {
			t.Errorf("Load() EngineBaseURL = %v, want http://localhost:5000", cfg.EngineBaseURL)
		}
		if cfg.EngineTimeout != 15*time.Second {
			t.Errorf("Load() EngineTimeout = %v, want 15s", cfg.EngineTimeout)
		}
		if !cfg.BreakerEnabled {
			t.Errorf("Load() BreakerEnabled = false, want true")
		}
		if cfg.UploadMaxBytes != 10<<20 {
			t.Errorf("Load() UploadMaxBytes = %v, want %v", cfg.UploadMaxBytes, 10<<20)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("ENGINE_BASE_URL", "https://engine.internal:8443")
		t.Setenv("ENGINE_TIMEOUT", "45s")
		t.Setenv("ENGINE_BREAKER_ENABLED", "false")
		t.Setenv("UPLOAD_MAX_BYTES", "1048576")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.EngineBaseURL != "https://engine.internal:8443" {
			t.Errorf("Load() EngineBaseURL = %v, want https://engine.internal:8443", cfg.EngineBaseURL)
		}
		if cfg.EngineTimeout != 45*time.Second {
			t.Errorf("Load() EngineTimeout = %v, want 45s", cfg.EngineTimeout)
		}
		if cfg.BreakerEnabled {
			t.Errorf("Load() BreakerEnabled = true, want false")
		}
		if cfg.UploadMaxBytes != 1<<20 {
			t.Errorf("Load() UploadMaxBytes = %v, want %v", cfg.UploadMaxBytes, 1<<20)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})

	t.Run("malformed numeric values fall back to defaults", func(t *testing.T) {
		t.Setenv("ENGINE_TIMEOUT", "soon")
		t.Setenv("UPLOAD_MAX_BYTES", "lots")

		cfg := Load()

		if cfg.EngineTimeout != 15*time.Second {
			t.Errorf("Load() EngineTimeout = %v, want 15s", cfg.EngineTimeout)
		}
		if cfg.UploadMaxBytes != 10<<20 {
			t.Errorf("Load() UploadMaxBytes = %v, want %v", cfg.UploadMaxBytes, 10<<20)
		}
	})
}
