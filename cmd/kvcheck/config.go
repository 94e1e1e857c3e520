package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type logConfig struct {
	Level string `mapstructure:"level"`
}

type config struct {
	Strict  bool      `mapstructure:"strict"`
	MaxLine int       `mapstructure:"max_line"`
	Log     logConfig `mapstructure:"log"`
}

var defaultCfg = config{
	MaxLine: 64 * 1024,
	Log:     logConfig{Level: "info"},
}

// loadConfig reads the optional config file and TRYNEXT_* environment
// variables on top of defaultCfg.
func loadConfig(path string) (config, error) {
	v := viper.New()
	v.SetDefault("strict", defaultCfg.Strict)
	v.SetDefault("max_line", defaultCfg.MaxLine)
	v.SetDefault("log.level", defaultCfg.Log.Level)

	v.SetEnvPrefix("trynext")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("unable to use config file: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	if cfg.MaxLine < 1 {
		return config{}, fmt.Errorf("max_line must be positive, got %d", cfg.MaxLine)
	}
	return cfg, nil
}
