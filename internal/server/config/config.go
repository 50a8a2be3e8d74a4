// Package config handles configuration for the TaskKeeper server,
// layering defaults, an optional JSON file, environment variables, and
// command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the TaskKeeper server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabaseURI: MongoDB connection string.
//   - DatabaseName: MongoDB database name.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenTTL: bearer token lifetime.
type Config struct {
	Addr         string
	DatabaseURI  string
	DatabaseName string
	SecretKey    string
	TokenTTL     time.Duration
}

// LoadDefaults populates the fields that have a safe default. Address,
// database URI, secret, and TTL deliberately stay empty: the process
// refuses to start without them.
func (c *Config) LoadDefaults() {
	c.DatabaseName = "taskkeeper"
}

// Validate reports which required settings are missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Addr == "" {
		missing = append(missing, "listen address")
	}
	if c.DatabaseURI == "" {
		missing = append(missing, "database URI")
	}
	if c.DatabaseName == "" {
		missing = append(missing, "database name")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if c.TokenTTL <= 0 {
		missing = append(missing, "token TTL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying
// values from an optional JSON file, the environment, and finally
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
