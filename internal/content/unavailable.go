package content

import (
	"context"
	"fmt"
)

// Unavailable is a Provider for when no LLM is configured. Every call
// fails with Err, so callers show their offline fallbacks.
type Unavailable struct {
	Err error
}

func (u Unavailable) err() error {
	return fmt.Errorf("content provider unavailable: %w", u.Err)
}

func (u Unavailable) Syllabus(context.Context, Request) ([]string, error) {
	return nil, u.err()
}

func (u Unavailable) Explanation(context.Context, Request, string) (Explanation, error) {
	return Explanation{}, u.err()
}

func (u Unavailable) Quiz(context.Context, Request) ([]Question, error) {
	return nil, u.err()
}

func (u Unavailable) Glossary(context.Context, Request) ([]Term, error) {
	return nil, u.err()
}
