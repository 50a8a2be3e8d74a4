package config

import (
	"fmt"
	"os"

	"github.com/avelkovs/taskkeeper/internal/timex"
)

// Environment variable names. A .env file loaded via godotenv in main
// ends up here as well.
const (
	envAddr         = "ADDRESS"
	envDatabaseURI  = "DATABASE_URI"
	envDatabaseName = "DATABASE_NAME"
	envSecretKey    = "SECRET_KEY"
	envTokenTTL     = "TOKEN_TTL"
)

// parseEnv overlays values from the process environment. Unset
// variables leave the current values untouched.
func parseEnv(config *Config) error {
	if v, ok := os.LookupEnv(envAddr); ok {
		config.Addr = v
	}
	if v, ok := os.LookupEnv(envDatabaseURI); ok {
		config.DatabaseURI = v
	}
	if v, ok := os.LookupEnv(envDatabaseName); ok {
		config.DatabaseName = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envTokenTTL); ok {
		ttl, err := timex.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envTokenTTL, err)
		}
		config.TokenTTL = ttl
	}

	return nil
}
