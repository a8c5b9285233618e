package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()
	t.Setenv(APIKeyEnvVar, "")
	t.Setenv(LegacyAPIKeyEnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"APIKey", cfg.APIKey, ""},
		{"FeedURL", cfg.FeedURL, DefaultFeedURL},
		{"FallbackFile", cfg.FallbackFile, FallbackFileName},
		{"PlanetsFile", cfg.PlanetsFile, ""},
		{"Timeout", cfg.Timeout, DefaultTimeout},
		{"Verbose", cfg.Verbose, false},
		{"CachePathBase", filepath.Base(cfg.CachePath), CacheFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "api key",
			envKey: "NEOCLI_API_KEY",
			envVal: "abc123",
			field:  func(c Config) any { return c.APIKey },
			want:   "abc123",
		},
		{
			name:   "legacy api key",
			envKey: "API_KEY",
			envVal: "legacy",
			field:  func(c Config) any { return c.APIKey },
			want:   "legacy",
		},
		{
			name:   "feed url",
			envKey: "NEOCLI_FEED_URL",
			envVal: "http://localhost:9000/feed",
			field:  func(c Config) any { return c.FeedURL },
			want:   "http://localhost:9000/feed",
		},
		{
			name:   "timeout",
			envKey: "NEOCLI_TIMEOUT",
			envVal: "3s",
			field:  func(c Config) any { return c.Timeout },
			want:   3 * time.Second,
		},
		{
			name:   "verbose",
			envKey: "NEOCLI_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(APIKeyEnvVar, "")
			t.Setenv(LegacyAPIKeyEnvVar, "")
			t.Setenv(tt.envKey, tt.envVal)
			viper.SetEnvPrefix(EnvPrefix)
			viper.AutomaticEnv()

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	resetViper()
	viper.Set("timeout", "0s")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted a zero timeout")
	}
}

func TestMergeDotEnv(t *testing.T) {
	tests := []struct {
		name         string
		dotenv       string
		env          map[string]string
		configured   map[string]any
		wantAPIKey   string
		wantFallback string
	}{
		{
			name:         "values from .env",
			dotenv:       "API_KEY=from-dotenv\nFALLBACK_FILE=cached.json\n",
			wantAPIKey:   "from-dotenv",
			wantFallback: "cached.json",
		},
		{
			name:         "legacy env var beats .env",
			dotenv:       "API_KEY=from-dotenv\n",
			env:          map[string]string{LegacyAPIKeyEnvVar: "from-env"},
			wantAPIKey:   "from-env",
			wantFallback: FallbackFileName,
		},
		{
			name:         "prefixed env var beats .env",
			dotenv:       "API_KEY=from-dotenv\nFALLBACK_FILE=cached.json\n",
			env:          map[string]string{APIKeyEnvVar: "from-env", "NEOCLI_FALLBACK_FILE": "env.json"},
			wantAPIKey:   "from-env",
			wantFallback: "env.json",
		},
		{
			name:         ".env beats config file",
			dotenv:       "FALLBACK_FILE=cached.json\n",
			configured:   map[string]any{"fallback_file": "config.json", "api_key": "from-config"},
			wantAPIKey:   "from-config",
			wantFallback: "cached.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(APIKeyEnvVar, "")
			t.Setenv(LegacyAPIKeyEnvVar, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			viper.SetEnvPrefix(EnvPrefix)
			viper.AutomaticEnv()
			if tt.configured != nil {
				if err := viper.MergeConfigMap(tt.configured); err != nil {
					t.Fatal(err)
				}
			}

			path := filepath.Join(t.TempDir(), ".env")
			if err := os.WriteFile(path, []byte(tt.dotenv), 0600); err != nil {
				t.Fatal(err)
			}
			if err := MergeDotEnv(path); err != nil {
				t.Fatalf("MergeDotEnv() error: %v", err)
			}
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.APIKey != tt.wantAPIKey {
				t.Errorf("APIKey = %q, want %q", cfg.APIKey, tt.wantAPIKey)
			}
			if cfg.FallbackFile != tt.wantFallback {
				t.Errorf("FallbackFile = %q, want %q", cfg.FallbackFile, tt.wantFallback)
			}
		})
	}
}

func TestMergeDotEnv_MissingFile(t *testing.T) {
	resetViper()
	if err := MergeDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("MergeDotEnv() on missing file: %v", err)
	}
}
