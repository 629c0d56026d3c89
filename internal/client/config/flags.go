package config

import (
	"flag"
	"os"
	"time"

	"github.com/possoft/posadmin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the entity service API (default from Config)
//	-s string   path to the local session database (default from Config)
//	-b int      filter debounce in milliseconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the entity service API")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "path to the local session database")
	debounceMs := fs.Int("b", int(cfg.FilterDebounce.Milliseconds()), "filter debounce (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FilterDebounce = time.Duration(*debounceMs) * time.Millisecond
}
