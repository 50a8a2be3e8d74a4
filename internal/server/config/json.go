package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avelkovs/taskkeeper/internal/flagx"
	"github.com/avelkovs/taskkeeper/internal/timex"
)

// JSONConfig is the file-side shape of Config. It uses timex.Duration
// for the TTL field, which accepts strings such as "15m" or "7d" as
// well as integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config.
type JSONConfig struct {
	Addr         string         `json:"address"`
	DatabaseURI  string         `json:"database_uri"`
	DatabaseName string         `json:"database_name"`
	SecretKey    string         `json:"secret_key"`
	TokenTTL     timex.Duration `json:"token_ttl"`
}

// parseJSON overlays values from the JSON file named by the -c/-config
// flags, if any. Only fields present in the file are copied.
func parseJSON(config *Config) error {
	jsonConfigFile := flagx.JSONConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.DatabaseURI != "" {
		config.DatabaseURI = c.DatabaseURI
	}
	if c.DatabaseName != "" {
		config.DatabaseName = c.DatabaseName
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration > 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}

	return nil
}
