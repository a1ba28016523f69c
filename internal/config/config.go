// Package config loads service settings from flags, environment, an optional
// config file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	GeminiBaseURL     string `mapstructure:"gemini_base_url"`
	OpenRouterAPIKey  string `mapstructure:"openrouter_api_key"`
	OpenRouterBaseURL string `mapstructure:"openrouter_base_url"`
	OpenRouterReferer string `mapstructure:"openrouter_referer"`
	OpenRouterTitle   string `mapstructure:"openrouter_title"`

	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	ModelsFile      string        `mapstructure:"models_file"`

	DBPath         string `mapstructure:"db_path"`
	MonitorEnabled bool   `mapstructure:"monitor_enabled"`

	APIKey          string        `mapstructure:"api_key"`
	FrontendURL     string        `mapstructure:"frontend_url"`
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`

	RequireProviderKeys bool `mapstructure:"require_provider_keys"`
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type setting struct {
	key  string
	def  any
	envs []string
}

// settings lists keys with their defaults and environment variables. The
// QUILLCRAFT_ name wins over the bare one when both are set.
var settings = []setting{
	{"host", "127.0.0.1", []string{"QUILLCRAFT_HOST", "HOST"}},
	{"port", 3001, []string{"QUILLCRAFT_PORT", "PORT"}},
	{"gemini_api_key", "", []string{"QUILLCRAFT_GEMINI_API_KEY", "GEMINI_API_KEY"}},
	{"gemini_base_url", "", []string{"QUILLCRAFT_GEMINI_BASE_URL"}},
	{"openrouter_api_key", "", []string{"QUILLCRAFT_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"}},
	{"openrouter_base_url", "https://openrouter.ai/api/v1", []string{"QUILLCRAFT_OPENROUTER_BASE_URL"}},
	{"openrouter_referer", "https://quillcraft.app", []string{"QUILLCRAFT_OPENROUTER_REFERER"}},
	{"openrouter_title", "QuillCraft", []string{"QUILLCRAFT_OPENROUTER_TITLE"}},
	{"upstream_timeout", 2 * time.Minute, []string{"QUILLCRAFT_UPSTREAM_TIMEOUT"}},
	{"models_file", "", []string{"QUILLCRAFT_MODELS_FILE"}},
	{"db_path", "quillcraft.db", []string{"QUILLCRAFT_DB_PATH"}},
	{"monitor_enabled", true, []string{"QUILLCRAFT_MONITOR_ENABLED"}},
	{"api_key", "", []string{"QUILLCRAFT_API_KEY"}},
	{"frontend_url", "http://localhost:3000", []string{"QUILLCRAFT_FRONTEND_URL", "FRONTEND_URL"}},
	{"rate_limit_max", 100, []string{"QUILLCRAFT_RATE_LIMIT_MAX", "RATE_LIMIT_MAX_REQUESTS"}},
	{"rate_limit_window", 15 * time.Minute, []string{"QUILLCRAFT_RATE_LIMIT_WINDOW"}},
	{"require_provider_keys", false, []string{"QUILLCRAFT_REQUIRE_PROVIDER_KEYS"}},
}

// Load reads configuration into a Config. configFile may be empty, in which
// case quillcraft.{yaml,toml,json,...} is looked up in the working directory
// and ~/.config/quillcraft; a missing file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(append([]string{s.key}, s.envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind env for %s: %w", s.key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("quillcraft")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "quillcraft"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream_timeout must be positive, got %s", c.UpstreamTimeout)
	}
	if c.RateLimitMax < 0 || c.RateLimitWindow < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	return nil
}

// CheckProviderKeys fails when either provider key is missing.
func (c Config) CheckProviderKeys() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.OpenRouterAPIKey == "" {
		missing = append(missing, "OPENROUTER_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variable: %s", strings.Join(missing, ", "))
	}
	return nil
}
