package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	openRouterReferer = "https://github.com/abhisek/studyiz"
	openRouterTitle   = "studyiz"
)

// NewOpenRouterProvider creates an OpenAIProvider for the OpenRouter
// gateway. Model names are sent verbatim ("vendor/model").
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}

	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	c.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
		compat: true,
	}, nil
}

// attribution adds the app headers OpenRouter uses to identify callers.
type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(r)
}
