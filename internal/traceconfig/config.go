// Package traceconfig loads the oopstrace CLI's process-wide trace
// configuration (runtime level, anonymize flag) from an optional YAML file,
// environment variables, and defaults, and applies it to pkg/trace's
// package-level Config before the CLI's commands run.
package traceconfig

import "errors"

// ErrInvalidLevel is returned by Validate when Level is not one of
// "verbose", "debug", "info", or "off".
var ErrInvalidLevel = errors.New("traceconfig: invalid level")

// Config is the CLI's trace configuration, unmarshalled by viper.
type Config struct {
	Level     string `mapstructure:"level"`
	Anonymize bool   `mapstructure:"anonymize"`
}

// Validate reports whether cfg.Level names a known trace level.
func (c *Config) Validate() error {
	switch c.Level {
	case "verbose", "debug", "info", "off":
		return nil
	default:
		return ErrInvalidLevel
	}
}
