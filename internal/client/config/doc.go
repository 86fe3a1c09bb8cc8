// Package config loads runtime configuration for the Billed CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: BILLED_* variables, optionally from a .env file.
//  3. Optional config file (JSON, YAML or TOML) selected with -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Primary API
//
//   - type Config                     holds the settings
//   - func LoadConfig() (*Config, error)  reads os.Args and the environment
//   - func Load(args) (*Config, error)    same with explicit arguments
package config
