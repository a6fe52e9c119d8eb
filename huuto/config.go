package huuto

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration, loaded from a YAML file with
// environment variable substitution. The same file carries the mutable token
// record, so it is rewritten after every successful credential exchange.
type Config struct {
	Huuto   HuutoConfig   `yaml:"huuto"`
	Token   TokenRecord   `yaml:"token"`
	Logging LoggingConfig `yaml:"logging"`
}

// HuutoConfig holds the static account and API settings.
type HuutoConfig struct {
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadConfig reads and parses a YAML config file, performing environment
// variable substitution and validation.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted caller
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Huuto.BaseURL == "" {
		cfg.Huuto.BaseURL = defaultBaseURL
	}
	if cfg.Huuto.Timeout == 0 {
		cfg.Huuto.Timeout = defaultTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func validateConfig(cfg *Config) error {
	var errs []error

	if cfg.Huuto.Username == "" {
		errs = append(errs, fmt.Errorf("huuto.username is required"))
	}
	if cfg.Huuto.Password == "" {
		errs = append(errs, fmt.Errorf("huuto.password is required"))
	}

	return errors.Join(errs...)
}
