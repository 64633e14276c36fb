package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the alert service and scheduler worker.
// Environment variables are automatically parsed from the ALERTS_ prefix.
type Config struct {
	// Build target selects high-level environment: local (sqlite) or cloud (postgres)
	BuildTarget string `envconfig:"BUILD_TARGET" default:"local"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage Configuration
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/alerts.db"`

	// Scheduler Configuration
	DeliveryHour       int           `envconfig:"DELIVERY_HOUR" default:"9"`
	SupportedTimezones string        `envconfig:"SUPPORTED_TIMEZONES" default:"UTC,America/New_York,America/Los_Angeles,Europe/London,Asia/Kolkata,Asia/Tokyo"`
	TickCronSpec       string        `envconfig:"TICK_CRON_SPEC" default:"0 * * * *"`
	TickTimeout        time.Duration `envconfig:"TICK_TIMEOUT" default:"5m"`

	// Content generation (OpenAI)
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Email delivery (Brevo transactional API)
	BrevoAPIKey  string `envconfig:"BREVO_API_KEY" default:""`
	SenderName   string `envconfig:"SENDER_NAME" default:"HighlightAgent"`
	SenderEmail  string `envconfig:"SENDER_EMAIL" default:"no-reply@highlight-agent.com"`
	DashboardURL string `envconfig:"DASHBOARD_URL" default:""`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "local":
		defaultDB = "sqlite"
	case "cloud":
		defaultDB = "postgres"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DeliveryHour < 0 || c.DeliveryHour > 23 {
		return fmt.Errorf("DELIVERY_HOUR out of range: %d", c.DeliveryHour)
	}
	if len(c.Timezones()) == 0 {
		return fmt.Errorf("SUPPORTED_TIMEZONES must not be empty")
	}
	return nil
}

// Timezones returns the supported timezone allow-list as a slice.
func (c *Config) Timezones() []string {
	parts := strings.Split(c.SupportedTimezones, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if tz := strings.TrimSpace(p); tz != "" {
			out = append(out, tz)
		}
	}
	return out
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with ALERTS_
// Example: ALERTS_HTTP_PORT, ALERTS_DELIVERY_HOUR
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ALERTS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Int("delivery_hour", cfg.DeliveryHour).
		Int("timezones", len(cfg.Timezones())).
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Bool("brevo_key_present", cfg.BrevoAPIKey != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:        "local",
		Environment:        EnvTesting,
		HTTPPort:           8080,
		DBDriver:           "sqlite",
		SQLitePath:         ":memory:",
		DeliveryHour:       9,
		SupportedTimezones: "UTC,America/New_York",
		TickCronSpec:       "0 * * * *",
		TickTimeout:        time.Minute,
		OpenAIModel:        "gpt-4o-mini",
		SenderName:         "HighlightAgent",
		SenderEmail:        "no-reply@highlight-agent.test",
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
