// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by neocli.
	EnvPrefix = "NEOCLI"
	// APIKeyEnvVar is the preferred environment variable for the NeoWs API key.
	APIKeyEnvVar = EnvPrefix + "_API_KEY"
	// LegacyAPIKeyEnvVar is also accepted, as are API_KEY lines in a .env file.
	LegacyAPIKeyEnvVar = "API_KEY"

	DateFormat       = "2006-01-02"
	CacheFileName    = "neo-cache.db"
	FallbackFileName = "data.json"
	DotEnvFileName   = ".env"

	DefaultFeedURL = "https://api.nasa.gov/neo/rest/v1/feed"
	DefaultTimeout = 15 * time.Second
)

// Config holds runtime configuration. Values come from the config file,
// .env, NEOCLI_* environment variables and CLI flags, in increasing priority.
type Config struct {
	APIKey       string        `mapstructure:"api_key"`
	FeedURL      string        `mapstructure:"feed_url"`
	CachePath    string        `mapstructure:"cache_path"`
	FallbackFile string        `mapstructure:"fallback_file"`
	PlanetsFile  string        `mapstructure:"planets_file"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Verbose      bool          `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set elsewhere.
func Load() (Config, error) {
	viper.SetDefault("api_key", "")
	viper.SetDefault("feed_url", DefaultFeedURL)
	viper.SetDefault("cache_path", defaultCachePath())
	viper.SetDefault("fallback_file", FallbackFileName)
	viper.SetDefault("planets_file", "")
	viper.SetDefault("timeout", DefaultTimeout)
	viper.SetDefault("verbose", false)

	if err := viper.BindEnv("api_key", APIKeyEnvVar, LegacyAPIKeyEnvVar); err != nil {
		return Config{}, fmt.Errorf("failed to bind api key environment: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// MergeDotEnv merges KEY=VALUE pairs from a .env file into viper's config
// layer. The pairs override the config file but not environment variables or
// flags. A missing file is not an error.
func MergeDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := viper.MergeConfigMap(v.AllSettings()); err != nil {
		return fmt.Errorf("failed to merge %s: %w", path, err)
	}
	return nil
}

// defaultCachePath places the cache next to the executable, falling back to
// the working directory.
func defaultCachePath() string {
	exePath, err := os.Executable()
	if err != nil {
		return CacheFileName
	}
	return filepath.Join(filepath.Dir(exePath), CacheFileName)
}
