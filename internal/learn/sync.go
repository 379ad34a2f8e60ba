package learn

import (
	"context"
	"fmt"
)

// Load opens the session, runs the cold start and loads the first topic,
// blocking until done.
func (s *Session) Load(ctx context.Context) error {
	s.Open()
	if s.ApplySyllabus(s.ColdStart(ctx)) {
		return s.run(ctx, s.BeginContentLoad())
	}
	return nil
}

// Goto moves to topic index and loads it, blocking until done. Stepping
// goes through Next and Previous so the usual transitions apply.
func (s *Session) Goto(ctx context.Context, index int) error {
	if s.phase != PhaseReady {
		return fmt.Errorf("session not ready")
	}
	if index < 0 || index >= len(s.topics) {
		return fmt.Errorf("topic index %d out of range [0, %d)", index, len(s.topics))
	}
	for s.index != index {
		var (
			req ContentRequest
			ok  bool
		)
		if index > s.index {
			req, ok = s.Next()
		} else {
			req, ok = s.Previous()
		}
		if !ok {
			break
		}
		if s.index == index {
			return s.run(ctx, req)
		}
	}
	return nil
}

func (s *Session) run(ctx context.Context, req ContentRequest) error {
	if s.ApplyContent(s.FetchContent(ctx, req)) {
		return s.MarkComplete(ctx)
	}
	return nil
}
