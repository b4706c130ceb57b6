// Package config loads application configuration from a config file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Practice PracticeConfig `mapstructure:"practice"`
	Log      LogConfig      `mapstructure:"log"`
}

// BackendConfig points at the learning backend.
type BackendConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// OpenAIConfig configures the reordering-explanation provider.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AudioConfig configures narration playback. An empty Player means
// auto-detect.
type AudioConfig struct {
	Player string `mapstructure:"player"`
}

// PracticeConfig holds session defaults. PureDisplay hides the
// disambiguator suffix some word entries carry (e.g. "bow2") everywhere
// a word is shown.
type PracticeConfig struct {
	Tier        string `mapstructure:"tier"`
	WordCount   int    `mapstructure:"word_count"`
	PureDisplay bool   `mapstructure:"pure_display"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load reads configuration from $XDG_CONFIG_HOME/vocadrill/config.yaml
// (or ~/.config/vocadrill/config.yaml) and VOCADRILL_* environment
// variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("VOCADRILL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", "http://localhost:8000")
	v.SetDefault("backend.token", "")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "")

	v.SetDefault("audio.player", "")

	v.SetDefault("practice.tier", "tier_3")
	v.SetDefault("practice.word_count", 10)
	v.SetDefault("practice.pure_display", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "vocadrill"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vocadrill"), nil
}
