// Package config loads the settings of the assistant from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Data sources.
const (
	Mock          = "mock"
	GhostfolioAPI = "ghostfolio_api"
)

// Config holds all configuration of the assistant.
type Config struct {
	// Ghostfolio
	GhostfolioBaseURL string        `envconfig:"GHOSTFOLIO_BASE_URL" default:"https://ghostfol.io"`
	GhostfolioToken   string        `envconfig:"GHOSTFOLIO_TOKEN"`
	GhostfolioTimeout time.Duration `envconfig:"GHOSTFOLIO_REQUEST_TIMEOUT" default:"10s"`
	GhostfolioRate    float64       `envconfig:"GHOSTFOLIO_RATE_LIMIT" default:"5"` // requests per second
	DefaultDataSource string        `envconfig:"GHOSTFOLIO_DEFAULT_DATA_SOURCE" default:"mock"`
	EODHDAPIKey       string        `envconfig:"EODHD_API_KEY"`

	// Automated routing
	LLMEnabled   bool   `envconfig:"LLM_ENABLED" default:"false"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// Server
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8000"`
	SessionDSN string `envconfig:"SESSION_DSN"` // empty keeps sessions in memory

	// Observability
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty       bool   `envconfig:"LOG_PRETTY" default:"false"`
	TracingExporter string `envconfig:"TRACING_EXPORTER" default:"none"` // none, stdout
}

// Load reads the configuration from the environment, after loading the
// .env file of the working directory if there is one.
func Load() (*Config, error) {
	_ = godotenv.Load() // the file is optional
	return LoadFromEnv()
}

// LoadFromEnv reads the configuration from the environment only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the consistency of the settings.
func (c *Config) Validate() error {
	if err := c.ValidateDataSource(c.DefaultDataSource); err != nil {
		return fmt.Errorf("GHOSTFOLIO_DEFAULT_DATA_SOURCE: %w", err)
	}
	if c.LLMEnabled && c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required when LLM_ENABLED is set")
	}
	switch c.TracingExporter {
	case "", "none", "stdout":
	default:
		return fmt.Errorf("TRACING_EXPORTER: unsupported exporter %q", c.TracingExporter)
	}
	return nil
}

// ValidateDataSource checks that source is known and usable.
func (c *Config) ValidateDataSource(source string) error {
	switch source {
	case Mock:
		return nil
	case GhostfolioAPI:
		if c.GhostfolioToken == "" {
			return errors.New("GHOSTFOLIO_TOKEN is required for the ghostfolio_api data source")
		}
		return nil
	default:
		return fmt.Errorf("unknown data source %q, want %q or %q", source, Mock, GhostfolioAPI)
	}
}
