package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/etfdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend REST endpoint (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-f string   local state file path (default from Config)
//
// os.Args is filtered to only the flags handled here so that flags owned by
// other packages do not cause parse errors.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-f"})

	fs := flag.NewFlagSet("main", flag.PanicOnError)

	fs.StringVar(&config.BaseURL, "a", config.BaseURL, "base URL of the backend server")
	fs.StringVar(&config.StatePath, "f", config.StatePath, "local state file path")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
