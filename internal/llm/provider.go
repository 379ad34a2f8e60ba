// Package llm sends prompts to hosted language models and returns their
// output as schema-checked JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one response per request.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the
	// returned Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model requests are sent to.
	ModelID() string
}

// Request describes a single generation.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for JSON output through the provider's
	// native structured output mechanism.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Prompt returns a single-turn request.
func Prompt(system, user string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
	}
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is sent as the schema or tool name and keys the compiled
	// validator, so it must be unique per definition.
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the provider-independent reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output.
type Response struct {
	// Content is the JSON document when a schema was requested, else the
	// raw text.
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// complete turns raw provider output into a Response. Structured output
// cut off at the token limit cannot be whole JSON and is reported as
// ErrMaxTokensExceeded before validation.
func complete(req Request, raw []byte, usage Usage, model string, stop StopReason) (*Response, error) {
	content := json.RawMessage(raw)
	if req.Schema != nil {
		content = trimCodeFence(content)
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full model IDs can be configured directly.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
