// Package store persists learner progress and LLM usage on top of a kv.Store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/kv"
)

// Records implements ProgressStore over a kv.Store. Every mutation reads the
// whole record, changes it and writes it back. The mutex serialises those
// cycles within the process; there is no cross-process locking.
type Records struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *log.Logger
}

// New returns a Records backed by store. A nil logger uses log.Default().
func New(store kv.Store, logger *log.Logger) *Records {
	if logger == nil {
		logger = log.Default()
	}
	return &Records{kv: store, logger: logger.WithPrefix("store")}
}

// KV returns the underlying key/value store.
func (r *Records) KV() kv.Store {
	return r.kv
}

// Close closes the underlying key/value store.
func (r *Records) Close() error {
	return r.kv.Close()
}

func (r *Records) LoadProgress(ctx context.Context) (*Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *Records) SaveProgress(ctx context.Context, p Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.normalize()
	return r.save(ctx, &p)
}

func (r *Records) MarkChapterComplete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("mark chapter complete: empty key")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.loadOrDefault(ctx)
	if err != nil {
		return err
	}
	if !p.markComplete(key) {
		return nil
	}
	r.logger.Debug("chapter completed", "chapter", key)
	return r.save(ctx, p)
}

func (r *Records) SaveQuizScore(ctx context.Context, key string, result QuizResult) error {
	if key == "" {
		return fmt.Errorf("save quiz score: empty key")
	}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("save quiz score: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.loadOrDefault(ctx)
	if err != nil {
		return err
	}
	p.QuizScores[key] = result
	r.logger.Debug("quiz score saved", "chapter", key, "score", result.Score, "total", result.Total)
	return r.save(ctx, p)
}

// IsChapterComplete reports whether key has been marked complete.
func (r *Records) IsChapterComplete(ctx context.Context, key string) (bool, error) {
	p, err := r.LoadProgress(ctx)
	if err != nil || p == nil {
		return false, err
	}
	return p.IsComplete(key), nil
}

// QuizScore returns the stored result for key, if any.
func (r *Records) QuizScore(ctx context.Context, key string) (QuizResult, bool, error) {
	p, err := r.LoadProgress(ctx)
	if err != nil || p == nil {
		return QuizResult{}, false, err
	}
	res, ok := p.QuizScores[key]
	return res, ok, nil
}

// Reset deletes the progress record.
func (r *Records) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.kv.Delete(ctx, ProgressRecord); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (r *Records) load(ctx context.Context) (*Progress, error) {
	data, err := r.kv.Get(ctx, ProgressRecord)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if errors.Is(err, kv.ErrCorrupt) {
		r.logger.Warn("progress record unreadable, treating as absent", "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		r.logger.Warn("progress record unreadable, treating as absent", "err", err)
		return nil, nil
	}
	p.normalize()
	return &p, nil
}

func (r *Records) loadOrDefault(ctx context.Context) (*Progress, error) {
	p, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = NewProgress()
	}
	return p, nil
}

func (r *Records) save(ctx context.Context, p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := r.kv.Put(ctx, ProgressRecord, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
