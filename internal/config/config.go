package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the portal service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	SES      SESConfig      `yaml:"ses"`
	Notify   NotifyConfig   `yaml:"notify"`
	Waitlist WaitlistConfig `yaml:"waitlist"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds the Postgres connection settings for signup storage.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SESConfig holds AWS SES API configuration for the notification channel.
type SESConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (c SESConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HasCredentials reports whether static SES credentials are configured.
func (c SESConfig) HasCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

// NotifyConfig controls the operator notification side channel.
// Mode is explicit ("live" or "simulated") and chosen at startup.
type NotifyConfig struct {
	Mode             string `yaml:"mode"`
	OperatorEmail    string `yaml:"operator_email"`
	FromEmail        string `yaml:"from_email"`
	FromName         string `yaml:"from_name"`
	SimulatedDelayMs int    `yaml:"simulated_delay_ms"`
}

// SimulatedDelay returns the artificial delay for the simulated notifier.
func (c NotifyConfig) SimulatedDelay() time.Duration {
	return time.Duration(c.SimulatedDelayMs) * time.Millisecond
}

// WaitlistConfig holds intake channel settings.
type WaitlistConfig struct {
	Source          string `yaml:"source"`
	RedirectBaseURL string `yaml:"redirect_base_url"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.SES.TimeoutSeconds == 0 {
		cfg.SES.TimeoutSeconds = 30
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "us-east-1"
	}
	if cfg.Notify.Mode == "" {
		cfg.Notify.Mode = "simulated"
	}
	if cfg.Notify.FromName == "" {
		cfg.Notify.FromName = "TipOfMy Waitlist"
	}
	if cfg.Notify.SimulatedDelayMs == 0 {
		cfg.Notify.SimulatedDelayMs = 1000
	}
	if cfg.Waitlist.Source == "" {
		cfg.Waitlist.Source = "tipofmy"
	}
	if cfg.Waitlist.RedirectBaseURL == "" {
		cfg.Waitlist.RedirectBaseURL = "https://findbyvibe.com"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if accessKey := os.Getenv("AWS_SES_ACCESS_KEY"); accessKey != "" {
		cfg.SES.AccessKey = accessKey
	}
	if secretKey := os.Getenv("AWS_SES_SECRET_KEY"); secretKey != "" {
		cfg.SES.SecretKey = secretKey
	}
	if region := os.Getenv("AWS_SES_REGION"); region != "" {
		cfg.SES.Region = region
	}
	if mode := os.Getenv("NOTIFY_MODE"); mode != "" {
		cfg.Notify.Mode = mode
	}
	if op := os.Getenv("OPERATOR_EMAIL"); op != "" {
		cfg.Notify.OperatorEmail = op
	}
	if from := os.Getenv("NOTIFY_FROM_EMAIL"); from != "" {
		cfg.Notify.FromEmail = from
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	return cfg, nil
}

// Validate checks cross-field constraints that would otherwise surface
// only at request time.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required (or set DATABASE_URL)")
	}
	switch c.Notify.Mode {
	case "simulated":
	case "live":
		if !c.SES.HasCredentials() {
			return fmt.Errorf("notify.mode is live but SES credentials are not configured")
		}
		if c.Notify.OperatorEmail == "" {
			return fmt.Errorf("notify.mode is live but notify.operator_email is empty")
		}
		if c.Notify.FromEmail == "" {
			return fmt.Errorf("notify.mode is live but notify.from_email is empty")
		}
	default:
		return fmt.Errorf("notify.mode must be %q or %q, got %q", "live", "simulated", c.Notify.Mode)
	}
	return nil
}
