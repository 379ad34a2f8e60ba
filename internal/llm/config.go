package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all LLM provider configuration. Fields are populated from
// STUDYIZ_* environment variables by ConfigFromEnv.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string `env:"STUDYIZ_LLM_PROVIDER" envDefault:"anthropic"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single generation including retries.
	Timeout time.Duration `env:"STUDYIZ_LLM_TIMEOUT" envDefault:"60s"`

	// RequestsPerMinute caps outgoing requests. Zero means unlimited.
	RequestsPerMinute int `env:"STUDYIZ_LLM_RPM" envDefault:"0"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `env:"STUDYIZ_ANTHROPIC_API_KEY"`
	Model   string `env:"STUDYIZ_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
	BaseURL string `env:"STUDYIZ_ANTHROPIC_BASE_URL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"STUDYIZ_OPENAI_API_KEY"`
	Model   string `env:"STUDYIZ_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"STUDYIZ_OPENAI_BASE_URL"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"STUDYIZ_GEMINI_API_KEY"`
	Model  string `env:"STUDYIZ_GEMINI_MODEL" envDefault:"gemini-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"STUDYIZ_OPENROUTER_API_KEY"`
	Model   string `env:"STUDYIZ_OPENROUTER_MODEL" envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"STUDYIZ_OPENROUTER_BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"STUDYIZ_LLM_RETRY_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"STUDYIZ_LLM_RETRY_INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"STUDYIZ_LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"STUDYIZ_LLM_RETRY_MULTIPLIER" envDefault:"2.0"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from STUDYIZ_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse LLM environment: %w", err)
	}
	return cfg, nil
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the STUDYIZ_* configuration when it validates and
// otherwise falls back to DiscoverConfig.
func ResolveConfig() (Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return Config{}, err
	}
	vErr := cfg.Validate()
	if vErr == nil {
		return cfg, nil
	}
	if discovered, ok := DiscoverConfig(); ok {
		return discovered, nil
	}
	return Config{}, vErr
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("STUDYIZ_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("STUDYIZ_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("STUDYIZ_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("STUDYIZ_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ActiveModel returns the configured model name of the selected provider.
func (c Config) ActiveModel() string {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.Model
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "openrouter":
		return c.OpenRouter.Model
	default:
		return c.Provider
	}
}
