// Package config loads stepdiff settings from disk and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config carries every tunable the CLI exposes. Flags override file values,
// file values override defaults.
type Config struct {
	Mode    string        `mapstructure:"mode"`
	Format  string        `mapstructure:"format"`
	Color   bool          `mapstructure:"color"`
	Summary SummaryConfig `mapstructure:"summary"`
}

// SummaryConfig configures the optional Gemini summary step.
type SummaryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api_key"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Mode:   "identifier",
		Format: "text",
		Color:  true,
		Summary: SummaryConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// Load reads settings on top of the defaults: an optional .stepdiff.yaml in
// the working directory or home directory (or the explicit path when given)
// plus STEPDIFF_* environment overrides. A missing implicit file is not an
// error; a missing explicit one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".stepdiff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix("stepdiff")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering defaults also makes the keys visible to AutomaticEnv.
	defaults := Default()
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("summary.enabled", defaults.Summary.Enabled)
	v.SetDefault("summary.model", defaults.Summary.Model)
	v.SetDefault("summary.api_key", defaults.Summary.APIKey)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return cfg, nil
}
