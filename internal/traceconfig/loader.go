package traceconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/resserops/oopstrace/pkg/trace"
)

const (
	configName      = ".oopstrace"
	configType      = "yaml"
	envPrefix       = "OOPSTRACE"
	envKeySeparator = "_"
)

// Load loads Config from file, environment variables, and defaults. If
// configPath is non-empty it is used as an explicit config file path;
// otherwise the file is searched for in the working directory and $HOME. A
// missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("level", "info")
	v.SetDefault("anonymize", false)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	readErr := v.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) && !errors.Is(readErr, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Apply sets pkg/trace's package-level Config from cfg.
func Apply(cfg *Config) {
	trace.SetLevel(parseLevel(cfg.Level))
	trace.SetAnonymous(cfg.Anonymize)
}

func parseLevel(s string) trace.Level {
	switch s {
	case "verbose":
		return trace.VERBOSE
	case "debug":
		return trace.DEBUG
	case "off":
		return trace.OFF
	default:
		return trace.INFO
	}
}
