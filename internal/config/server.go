package config

import (
	"fmt"
	"time"

	"github.com/epicplan/planner/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	Session         SessionConfig
	Planner         PlannerConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"PLANNER_SHUTDOWN_TIMEOUT"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"PLANNER_HTTP_HOST"`
	Port              string        `env:"PLANNER_HTTP_PORT"`
	ReadTimeout       time.Duration `env:"PLANNER_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"PLANNER_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"PLANNER_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"PLANNER_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"PLANNER_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"PLANNER_HTTP_MAX_BODY_BYTES"`
}

// SessionConfig holds the shared-password gate configuration.
type SessionConfig struct {
	// Password is the single shared dashboard password. Required.
	Password string `env:"PLANNER_PASSWORD"`

	// TTL is how long issued sessions stay valid. Zero gets the
	// session package default.
	TTL time.Duration `env:"PLANNER_SESSION_TTL"`
}

// Validate validates the session configuration.
func (c *SessionConfig) Validate() error {
	if c.Password == "" {
		return fmt.Errorf("PLANNER_PASSWORD is required")
	}
	return nil
}

// PlannerConfig holds planning service configuration.
type PlannerConfig struct {
	// LegacyParityCTA makes even-numbered weeks without explicit sprint
	// config classify as CTA weeks, matching the old dashboard.
	LegacyParityCTA bool `env:"PLANNER_LEGACY_PARITY_CTA"`
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"PLANNER_OTEL_ENABLED"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
