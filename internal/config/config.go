// Package config manages phrasekit settings from ~/.phrasekit/config.yaml
// and PHRASEKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Data struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"data" yaml:"data"`
	Insert struct {
		Target   string `mapstructure:"target" yaml:"target"`
		Document string `mapstructure:"document" yaml:"document"`
		Marker   string `mapstructure:"marker" yaml:"marker"`
	} `mapstructure:"insert" yaml:"insert"`
	Watch struct {
		Enabled    bool `mapstructure:"enabled" yaml:"enabled"`
		DebounceMs int  `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	} `mapstructure:"watch" yaml:"watch"`
	Output struct {
		Color bool `mapstructure:"color" yaml:"color"`
	} `mapstructure:"output" yaml:"output"`
	Log struct {
		Level string `mapstructure:"level" yaml:"level"`
	} `mapstructure:"log" yaml:"log"`
	History struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"history" yaml:"history"`
}

// Defaults applied before the config file and environment.
var defaults = map[string]interface{}{
	"data.path":         "",
	"insert.target":     "stdout",
	"insert.document":   "",
	"insert.marker":     "{{cursor}}",
	"watch.enabled":     false,
	"watch.debounce_ms": 300,
	"output.color":      true,
	"log.level":         "info",
	"history.enabled":   true,
	"history.path":      "",
}

// Load reads the configuration. An explicit file must exist; the default
// file is optional.
func Load(file string) (*Config, error) {
	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
	}

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	viper.SetEnvPrefix("PHRASEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".phrasekit"
	}
	return filepath.Join(home, ".phrasekit")
}
