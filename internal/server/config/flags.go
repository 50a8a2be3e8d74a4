package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/avelkovs/taskkeeper/internal/flagx"
	"github.com/avelkovs/taskkeeper/internal/timex"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   MongoDB connection URI
//	-n string   MongoDB database name
//	-s string   JWT HMAC secret key
//	-t string   token TTL as a duration ("15m", "7d")
//
// The arguments are first filtered to only the flags handled here using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseURI, "d", config.DatabaseURI, "MongoDB connection URI")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "MongoDB database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenTTL := fs.String("t", "", "token TTL (duration, e.g. 15m or 7d)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *tokenTTL != "" {
		ttl, err := timex.ParseDuration(*tokenTTL)
		if err != nil {
			return fmt.Errorf("parsing -t: %w", err)
		}
		config.TokenTTL = ttl
	}

	return nil
}
