package llm

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "syllabus" or "quiz".
// The label groups usage and log lines.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// LoggingProvider logs every request and folds it into the usage record
// when an EventRepo is set.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *log.Logger
}

// WithLogging wraps p. provider names the backend in usage records.
// events and logger may be nil.
func WithLogging(p Provider, provider string, events store.EventRepo, logger *log.Logger) Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingProvider{inner: p, provider: provider, events: events, logger: logger.WithPrefix("llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := []any{
		"purpose", data.Purpose,
		"model", data.Model,
		"in", data.InputTokens,
		"out", data.OutputTokens,
		"latency", time.Duration(data.LatencyMs) * time.Millisecond,
	}
	if c := LookupCost(data.Model); c != nil {
		fields = append(fields, "cost_usd", c.Cost(data.InputTokens, data.OutputTokens))
	}
	if err != nil {
		l.logger.Warn("request failed", append(fields, "err", err)...)
	} else {
		l.logger.Debug("request", fields...)
	}

	if l.events != nil {
		// Usage bookkeeping never fails the request.
		if recErr := l.events.AppendLLMRequest(ctx, data); recErr != nil {
			l.logger.Warn("failed to record LLM usage", "err", recErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
