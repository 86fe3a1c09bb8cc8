package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/billed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        base URL of the bills API
//	-i int           online check interval (in seconds)
//	-t int           store request timeout (in seconds)
//	-db string       session database file
//	-locale string   display locale (fr, en)
//	-log-level string
//	-log-format string
//	-demo            run against an in-memory store
//
// Args are filtered with flagx.FilterArgs so flags owned by other stages
// (such as -c) do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-i", "-t", "-db", "-locale", "-log-level", "-log-format", "-demo",
	})

	fs := flag.NewFlagSet("billed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the bills API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "store request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDBPath, "db", cfg.SessionDBPath, "session database file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "display locale (fr, en)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	fs.BoolVar(&cfg.Demo, "demo", cfg.Demo, "run against an in-memory store")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only overwrite durations that were given, so sub-second values from
	// earlier sources survive.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
	return nil
}
