package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BILLED"

// Keys shared by the environment and the config file. The environment
// variable of a key is its upper-cased form with the BILLED_ prefix, e.g.
// BILLED_SERVER_ENDPOINT_ADDR.
const (
	keyServerEndpointAddr  = "server_endpoint_addr"
	keySessionDBPath       = "session_db_path"
	keyRequestTimeout      = "request_timeout"
	keyOnlineCheckInterval = "online_check_interval"
	keyLocale              = "locale"
	keyLogLevel            = "log_level"
	keyLogFormat           = "log_format"
	keyDemo                = "demo"
)

var keys = []string{
	keyServerEndpointAddr,
	keySessionDBPath,
	keyRequestTimeout,
	keyOnlineCheckInterval,
	keyLocale,
	keyLogLevel,
	keyLogFormat,
	keyDemo,
}

// parseEnv overlays Config with BILLED_* variables. A .env file in the
// working directory is loaded first; variables already set in the process
// environment win over it.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("bind env %s: %w", k, err)
		}
	}
	return overlay(cfg, v)
}

// parseFile overlays Config with values from a JSON, YAML or TOML file. The
// format follows the file extension. Durations are strings such as "3s":
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:5678",
//	  "online_check_interval": "3s",
//	  "locale": "fr"
//	}
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return overlay(cfg, v)
}

// overlay copies every key set in v into cfg.
func overlay(cfg *Config, v *viper.Viper) error {
	strs := map[string]*string{
		keyServerEndpointAddr: &cfg.ServerEndpointAddr,
		keySessionDBPath:      &cfg.SessionDBPath,
		keyLocale:             &cfg.Locale,
		keyLogLevel:           &cfg.LogLevel,
		keyLogFormat:          &cfg.LogFormat,
	}
	for k, dst := range strs {
		if v.IsSet(k) {
			*dst = v.GetString(k)
		}
	}

	durations := map[string]*time.Duration{
		keyRequestTimeout:      &cfg.RequestTimeout,
		keyOnlineCheckInterval: &cfg.OnlineCheckInterval,
	}
	for k, dst := range durations {
		if !v.IsSet(k) {
			continue
		}
		d, err := time.ParseDuration(v.GetString(k))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", k, err)
		}
		*dst = d
	}

	if v.IsSet(keyDemo) {
		cfg.Demo = v.GetBool(keyDemo)
	}
	return nil
}
