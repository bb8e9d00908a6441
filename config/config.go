// Package config provides configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when none is given.
const DefaultPath = "superheroes.yaml"

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	OpenAPI  OpenAPIConfig  `yaml:"openapi"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host" env:"SUPERHEROES_SERVER_HOST"`
	Port         int           `yaml:"port" env:"SUPERHEROES_SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SUPERHEROES_SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SUPERHEROES_SERVER_WRITE_TIMEOUT"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the database.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"SUPERHEROES_DATABASE_DRIVER"` // "sqlite", "postgres" or "memory"
	DSN    string `yaml:"dsn" env:"SUPERHEROES_DATABASE_DSN"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"SUPERHEROES_LOG_LEVEL"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" env:"SUPERHEROES_LOG_FORMAT"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"SUPERHEROES_METRICS_ENABLED"`
	Path    string `yaml:"path" env:"SUPERHEROES_METRICS_PATH"`
}

// OpenAPIConfig configures OpenAPI/Swagger documentation.
type OpenAPIConfig struct {
	Enabled bool `yaml:"enabled" env:"SUPERHEROES_OPENAPI_ENABLED"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         5555,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "app.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		OpenAPI: OpenAPIConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from a YAML file.
// Keys absent from the file keep their defaults; SUPERHEROES_* environment
// variables override both.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return finish(&cfg)
}

// LoadFromEnv creates configuration from defaults and environment variables.
//
// Environment variables:
//
//	SUPERHEROES_SERVER_HOST           - Server host (default: 0.0.0.0)
//	SUPERHEROES_SERVER_PORT           - Server port (default: 5555)
//	SUPERHEROES_SERVER_READ_TIMEOUT   - Read timeout (default: 30s)
//	SUPERHEROES_SERVER_WRITE_TIMEOUT  - Write timeout (default: 60s)
//	SUPERHEROES_DATABASE_DRIVER       - sqlite, postgres or memory (default: sqlite)
//	SUPERHEROES_DATABASE_DSN          - Database path or URL (default: app.db)
//	SUPERHEROES_LOG_LEVEL             - debug, info, warn, error (default: info)
//	SUPERHEROES_LOG_FORMAT            - json or console (default: json)
//	SUPERHEROES_METRICS_ENABLED       - Enable metrics endpoint (default: true)
//	SUPERHEROES_METRICS_PATH          - Metrics path (default: /metrics)
//	SUPERHEROES_OPENAPI_ENABLED       - Enable OpenAPI/Swagger (default: true)
func LoadFromEnv() (*Config, error) {
	cfg := Defaults()
	return finish(&cfg)
}

// LoadWithFallback loads path if it exists, otherwise falls back to
// defaults and environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}
	return LoadFromEnv()
}

// HasEnvConfig returns true if any SUPERHEROES_* variable is set.
func HasEnvConfig() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SUPERHEROES_") {
			return true
		}
	}
	return false
}

func finish(cfg *Config) (*Config, error) {
	// Environment variables always override file-based configuration.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// setDefaults fills values a file set explicitly to empty.
func setDefaults(cfg *Config) {
	d := Defaults()

	if cfg.Server.Host == "" {
		cfg.Server.Host = d.Server.Host
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = d.Database.Driver
	}
	if cfg.Database.Driver == DriverMemory && cfg.Database.DSN == "" {
		cfg.Database.DSN = ":memory:"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = d.Logging.Format
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = d.Metrics.Path
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	validDrivers := map[string]bool{DriverSQLite: true, DriverPostgres: true, DriverMemory: true}
	if !validDrivers[cfg.Database.Driver] {
		return fmt.Errorf("database.driver must be 'sqlite', 'postgres' or 'memory', got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", cfg.Metrics.Path)
	}

	return nil
}
