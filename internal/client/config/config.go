package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/billed/internal/flagx"
)

// Config holds runtime settings for the Billed CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the bills API. Empty means the client
//     runs without a remote store.
//   - SessionDBPath: SQLite file holding the persisted session.
//   - RequestTimeout: upper bound of a single store request.
//   - OnlineCheckInterval: how often the client probes store reachability.
//   - Locale: display locale of dates and statuses ("fr" or "en").
//   - LogLevel, LogFormat: logger settings ("text" or "json").
//   - Demo: use an in-memory store seeded with sample data.
type Config struct {
	ServerEndpointAddr  string
	SessionDBPath       string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	Locale              string
	LogLevel            string
	LogFormat           string
	Demo                bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = ""
	c.SessionDBPath = "billed.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.Locale = "fr"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Demo = false
}

// LoadConfig builds a Config from the process environment and arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment, the config file named by -c/-config (if any) and command-line
// flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be fixed up later.
func (c *Config) Validate() error {
	switch c.Locale {
	case "fr", "en":
	default:
		return fmt.Errorf("unsupported locale %q", c.Locale)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.SessionDBPath == "" {
		return fmt.Errorf("session db path is empty")
	}
	return nil
}
