package store

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Record names under which the two persisted families live in the KV store.
const (
	ProgressRecord = "progress"
	UsageRecord    = "llm-usage"
)

// QuizResult is the outcome of the latest quiz attempt for a chapter.
type QuizResult struct {
	Score int       `json:"score"`
	Total int       `json:"total"`
	Date  time.Time `json:"date"`
}

// Validate enforces 0 <= score <= total and total > 0.
func (r QuizResult) Validate() error {
	if r.Total <= 0 {
		return fmt.Errorf("quiz total must be positive, got %d", r.Total)
	}
	if r.Score < 0 || r.Score > r.Total {
		return fmt.Errorf("quiz score %d out of range [0, %d]", r.Score, r.Total)
	}
	return nil
}

// Percent returns the score as a percentage of the total.
func (r QuizResult) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// Progress is the single per-installation record of completed chapters and
// quiz scores. Keys are chapter key strings.
type Progress struct {
	CompletedChapters []string              `json:"completedChapters"`
	QuizScores        map[string]QuizResult `json:"quizScores"`
}

// NewProgress returns an empty Progress.
func NewProgress() *Progress {
	return &Progress{
		CompletedChapters: []string{},
		QuizScores:        map[string]QuizResult{},
	}
}

// IsComplete reports whether key is in CompletedChapters.
func (p *Progress) IsComplete(key string) bool {
	return slices.Contains(p.CompletedChapters, key)
}

// markComplete inserts key if absent. Returns false when it was already there.
func (p *Progress) markComplete(key string) bool {
	if p.IsComplete(key) {
		return false
	}
	p.CompletedChapters = append(p.CompletedChapters, key)
	return true
}

// normalize fills nil collections so the JSON layout is stable.
func (p *Progress) normalize() {
	if p.CompletedChapters == nil {
		p.CompletedChapters = []string{}
	}
	if p.QuizScores == nil {
		p.QuizScores = map[string]QuizResult{}
	}
}

// ProgressStore persists learner progress. Session controllers depend on
// this interface rather than on a concrete store.
type ProgressStore interface {
	// LoadProgress returns the stored progress, or nil if none exists or the
	// stored bytes are unreadable.
	LoadProgress(ctx context.Context) (*Progress, error)

	// SaveProgress overwrites the whole progress record.
	SaveProgress(ctx context.Context, p Progress) error

	// MarkChapterComplete adds key to the completed set if it is not
	// already present.
	MarkChapterComplete(ctx context.Context, key string) error

	// SaveQuizScore replaces any previous result for key.
	SaveQuizScore(ctx context.Context, key string, result QuizResult) error
}

// LLMRequestEventData captures the data for a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo records LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
