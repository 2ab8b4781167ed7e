package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".casebook"
	configType = "yaml"
	envPrefix  = "CASEBOOK"
)

// Config holds the settings shared by all subcommands.
type Config struct {
	// Override is the path of the grammar override fragment. Empty means
	// the well-known file name in the current directory.
	Override string `mapstructure:"override"`
	// Theme names a built-in theme or points at a yaml theme file.
	Theme string `mapstructure:"theme"`
}

// loadConfig reads configuration from file, environment, and defaults. When
// configPath is empty the config file is searched in CWD and $HOME; a
// missing file is not an error.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("override", "")
	v.SetDefault("theme", "default")

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
