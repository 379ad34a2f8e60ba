package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/abhisek/studyiz/internal/kv"
)

// PurposeUsage aggregates LLM requests made for one purpose.
type PurposeUsage struct {
	Requests     int   `json:"requests"`
	Failures     int   `json:"failures"`
	InputTokens  int   `json:"inputTokens"`
	OutputTokens int   `json:"outputTokens"`
	LatencyMs    int64 `json:"latencyMs"`
}

// Usage is the persisted LLM usage summary keyed by purpose.
type Usage struct {
	Provider string                  `json:"provider,omitempty"`
	Model    string                  `json:"model"`
	Purposes map[string]PurposeUsage `json:"purposes"`
}

// PurposeNames returns the purposes in sorted order.
func (u *Usage) PurposeNames() []string {
	names := make([]string, 0, len(u.Purposes))
	for k := range u.Purposes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AppendLLMRequest folds one request into the usage summary.
func (r *Records) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, err := r.loadUsage(ctx)
	if err != nil {
		return err
	}
	purpose := data.Purpose
	if purpose == "" {
		purpose = "unknown"
	}
	pu := u.Purposes[purpose]
	pu.Requests++
	if !data.Success {
		pu.Failures++
	}
	pu.InputTokens += data.InputTokens
	pu.OutputTokens += data.OutputTokens
	pu.LatencyMs += data.LatencyMs
	u.Purposes[purpose] = pu
	if data.Model != "" {
		u.Model = data.Model
	}
	if data.Provider != "" {
		u.Provider = data.Provider
	}

	buf, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal usage: %w", err)
	}
	if err := r.kv.Put(ctx, UsageRecord, buf); err != nil {
		return fmt.Errorf("save usage: %w", err)
	}
	return nil
}

// Usage returns the LLM usage summary. It is empty when nothing was recorded.
func (r *Records) Usage(ctx context.Context) (*Usage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadUsage(ctx)
}

func (r *Records) loadUsage(ctx context.Context) (*Usage, error) {
	u := &Usage{Purposes: map[string]PurposeUsage{}}
	data, err := r.kv.Get(ctx, UsageRecord)
	if errors.Is(err, kv.ErrNotFound) {
		return u, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load usage: %w", err)
	}
	if err := json.Unmarshal(data, u); err != nil {
		r.logger.Warn("usage record unreadable, starting over", "err", err)
		return &Usage{Purposes: map[string]PurposeUsage{}}, nil
	}
	if u.Purposes == nil {
		u.Purposes = map[string]PurposeUsage{}
	}
	return u, nil
}
