// Package content generates study material for a chapter with an LLM.
package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studyiz/internal/llm"
)

// Provider produces the four artifact kinds for a chapter. Any call may
// fail; callers decide on fallbacks.
type Provider interface {
	Syllabus(ctx context.Context, req Request) ([]string, error)
	Explanation(ctx context.Context, req Request, topic string) (Explanation, error)
	Quiz(ctx context.Context, req Request) ([]Question, error)
	Glossary(ctx context.Context, req Request) ([]Term, error)
}

// Generator implements Provider over an llm.Provider.
type Generator struct {
	llm llm.Provider
	cfg Config
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{llm: provider, cfg: cfg}
}

func (g *Generator) Syllabus(ctx context.Context, req Request) ([]string, error) {
	var out struct {
		Topics []string `json:"topics"`
	}
	err := g.generate(llm.WithPurpose(ctx, "syllabus"), SyllabusSchema,
		buildSyllabusMessage(req), g.cfg.SyllabusMaxTokens, &out)
	if err != nil {
		return nil, err
	}
	return out.Topics, nil
}

func (g *Generator) Explanation(ctx context.Context, req Request, topic string) (Explanation, error) {
	var out Explanation
	err := g.generate(llm.WithPurpose(ctx, "explanation"), ExplanationSchema,
		buildExplanationMessage(req, topic), g.cfg.ExplanationMaxTokens, &out)
	if err != nil {
		return Explanation{}, err
	}
	out.Sources = DedupeSources(out.Sources)
	return out, nil
}

func (g *Generator) Quiz(ctx context.Context, req Request) ([]Question, error) {
	var out struct {
		Questions []Question `json:"questions"`
	}
	err := g.generate(llm.WithPurpose(ctx, "quiz"), QuizSchema,
		buildQuizMessage(req, g.cfg.QuizSize), g.cfg.QuizMaxTokens, &out)
	if err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (g *Generator) Glossary(ctx context.Context, req Request) ([]Term, error) {
	var out struct {
		Terms []Term `json:"terms"`
	}
	err := g.generate(llm.WithPurpose(ctx, "glossary"), GlossarySchema,
		buildGlossaryMessage(req, g.cfg.GlossarySize), g.cfg.GlossaryMaxTokens, &out)
	if err != nil {
		return nil, err
	}
	return out.Terms, nil
}

func (g *Generator) generate(ctx context.Context, schema *llm.Schema, userMsg string, maxTokens int, dst any) error {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      schema,
		MaxTokens:   maxTokens,
		Temperature: g.cfg.Temperature,
	}

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	resp, err := g.llm.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s generation: %w", schema.Name, err)
	}
	if err := json.Unmarshal(resp.Content, dst); err != nil {
		return &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse %s response: %w", schema.Name, err),
		}
	}
	return nil
}
