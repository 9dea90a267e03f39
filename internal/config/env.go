package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level overrides read from the environment.
type Env struct {
	ConfigPath   string `env:"ELEMENTAL_CONFIG" envDefault:"config/elemental.yaml"`
	LogLevel     string `env:"ELEMENTAL_LOG_LEVEL"`
	DatabaseDSN  string `env:"ELEMENTAL_DATABASE_DSN"`
	OtelEndpoint string `env:"ELEMENTAL_OTEL_ENDPOINT"`
}

// ParseEnv parses environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Apply overrides config values with every non-empty variable.
// A database DSN also enables the database.
func (e Env) Apply(c *Engine) {
	if e.LogLevel != "" {
		c.Logging.Level = e.LogLevel
	}
	if e.DatabaseDSN != "" {
		c.Database.URL = e.DatabaseDSN
		c.Database.Enabled = true
	}
	if e.OtelEndpoint != "" {
		c.Tracing.Endpoint = e.OtelEndpoint
	}
}
