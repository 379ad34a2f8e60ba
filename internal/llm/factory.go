package llm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/store"
)

// NewProvider creates the configured Provider wrapped with retry, rate
// limiting and logging. events may be nil, in which case requests are only logged.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *log.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → rate limit → logging → base, so every attempt
	// waits for a token and is logged.
	logged := WithLogging(base, cfg.Provider, events, logger)
	limited := WithRateLimit(logged, cfg.RequestsPerMinute)
	return WithRetry(limited, cfg.Retry, logger), nil
}
