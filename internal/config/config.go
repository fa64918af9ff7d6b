package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration, resolved from defaults, an
// optional .env file, and the process environment (GEMINI_API_KEY,
// PIPELINE_MAX_ATTEMPTS, ...).
type Config struct {
	Gemini   Gemini   `mapstructure:"gemini"`
	Pipeline Pipeline `mapstructure:"pipeline"`
	Assets   Assets   `mapstructure:"assets"`
}

// Gemini holds the generation service configuration.
type Gemini struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
}

// Pipeline holds the enrichment pacing and budget knobs.
type Pipeline struct {
	MaxAttempts      int           `mapstructure:"max_attempts"`
	RowPacing        time.Duration `mapstructure:"row_pacing"`
	RateLimitBackoff time.Duration `mapstructure:"rate_limit_backoff"`
	OverloadBackoff  time.Duration `mapstructure:"overload_backoff"`
	RejectionDelay   time.Duration `mapstructure:"rejection_delay"`
	WindowSize       int           `mapstructure:"window_size"`
	WindowPause      time.Duration `mapstructure:"window_pause"`
}

// Assets holds the logo lookup configuration.
type Assets struct {
	PrimaryBaseURL   string        `mapstructure:"primary_base_url"`
	SecondaryBaseURL string        `mapstructure:"secondary_base_url"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	MinBodySize      int           `mapstructure:"min_body_size"`
}

// Load resolves the configuration. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.temperature", 0.3)

	v.SetDefault("pipeline.max_attempts", 3)
	v.SetDefault("pipeline.row_pacing", 500*time.Millisecond)
	v.SetDefault("pipeline.rate_limit_backoff", 5*time.Second)
	v.SetDefault("pipeline.overload_backoff", 10*time.Second)
	v.SetDefault("pipeline.rejection_delay", 1*time.Second)
	v.SetDefault("pipeline.window_size", 5)
	v.SetDefault("pipeline.window_pause", 100*time.Millisecond)

	v.SetDefault("assets.primary_base_url", "")
	v.SetDefault("assets.secondary_base_url", "")
	v.SetDefault("assets.fetch_timeout", 2*time.Second)
	v.SetDefault("assets.min_body_size", 128)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields a run cannot proceed without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		return fmt.Errorf("GEMINI_MODEL is required")
	}
	return nil
}
