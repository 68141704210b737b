// Package config provides Viper-based configuration management for newsforge
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete newsforge configuration. It is built once
// during process start and passed explicitly into every component; nothing
// reads configuration ambiently after Load returns.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Trends   TrendsConfig   `mapstructure:"trends"`
	Hook     HookConfig     `mapstructure:"hook"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LLMConfig contains model-call settings shared by both pipelines
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MockMode    bool          `mapstructure:"mock_mode"`
}

// HTTPConfig contains article/aggregator fetch settings
type HTTPConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// PipelineConfig contains the watched-list pipeline settings
type PipelineConfig struct {
	InputDir      string        `mapstructure:"input_dir"`
	OutputDir     string        `mapstructure:"output_dir"`
	ArchiveDir    string        `mapstructure:"archive_dir"`
	TrendsDir     string        `mapstructure:"trends_dir"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	StableAge     time.Duration `mapstructure:"stable_age"`
	ExcerptLimit  int           `mapstructure:"excerpt_limit"`
	PromptLimit   int           `mapstructure:"prompt_limit"`
}

// TrendsConfig contains the trend-scraper pipeline settings
type TrendsConfig struct {
	URL  string `mapstructure:"url"`
	TopN int    `mapstructure:"top_n"`
}

// HookConfig contains the post-batch verification hook settings.
// The hook is enabled when Command is non-empty.
type HookConfig struct {
	Command string `mapstructure:"command"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HookEnabled reports whether a post-batch hook command is configured.
func (c *Config) HookEnabled() bool {
	return strings.TrimSpace(c.Hook.Command) != ""
}

// Load reads configuration from an optional file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".newsforge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/newsforge")
	}

	// Environment variables: NEWSFORGE_LLM_API_KEY, NEWSFORGE_PIPELINE_INPUT_DIR, ...
	v.SetEnvPrefix("NEWSFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Common provider variables are honored as fallbacks so the binary works
	// in environments configured for the OpenAI-compatible endpoint directly.
	_ = v.BindEnv("llm.api_key", "NEWSFORGE_LLM_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.base_url", "NEWSFORGE_LLM_BASE_URL", "OPENAI_BASE_URL")
	_ = v.BindEnv("llm.mock_mode", "NEWSFORGE_LLM_MOCK_MODE", "MOCK_MODE")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicitly named file must exist; search-path misses are fine.
			if cfgFile != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	// Every key needs a default (or an env binding) so Unmarshal sees it.
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", "240s")
	v.SetDefault("llm.mock_mode", false)

	v.SetDefault("http.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	v.SetDefault("http.fetch_timeout", "10s")

	v.SetDefault("pipeline.input_dir", "local_inputs")
	v.SetDefault("pipeline.output_dir", "outputs/posts")
	v.SetDefault("pipeline.archive_dir", "archive")
	v.SetDefault("pipeline.trends_dir", "outputs/trends")
	v.SetDefault("pipeline.max_concurrent", 2)
	v.SetDefault("pipeline.stable_age", "1s")
	v.SetDefault("pipeline.excerpt_limit", 15000)
	v.SetDefault("pipeline.prompt_limit", 8000)

	v.SetDefault("trends.url", "https://tophub.today")
	v.SetDefault("trends.top_n", 30)

	v.SetDefault("hook.command", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.Pipeline.MaxConcurrent < 1 {
		return fmt.Errorf("pipeline.max_concurrent must be at least 1, got %d", cfg.Pipeline.MaxConcurrent)
	}

	if cfg.Pipeline.ExcerptLimit <= 0 {
		return fmt.Errorf("pipeline.excerpt_limit must be positive, got %d", cfg.Pipeline.ExcerptLimit)
	}

	if cfg.Pipeline.PromptLimit <= 0 {
		return fmt.Errorf("pipeline.prompt_limit must be positive, got %d", cfg.Pipeline.PromptLimit)
	}

	if cfg.Pipeline.StableAge < 0 {
		return fmt.Errorf("pipeline.stable_age must not be negative, got %s", cfg.Pipeline.StableAge)
	}

	if cfg.HTTP.FetchTimeout <= 0 {
		return fmt.Errorf("http.fetch_timeout must be positive, got %s", cfg.HTTP.FetchTimeout)
	}

	if cfg.Trends.TopN < 1 {
		return fmt.Errorf("trends.top_n must be at least 1, got %d", cfg.Trends.TopN)
	}

	if cfg.Trends.URL == "" {
		return fmt.Errorf("trends.url must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	return nil
}

// EnsureDirs creates the working directories both pipelines rely on.
func (c *Config) EnsureDirs() error {
	dirs := []string{
		c.Pipeline.InputDir,
		c.Pipeline.OutputDir,
		c.Pipeline.ArchiveDir,
		c.Pipeline.TrendsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	return nil
}
