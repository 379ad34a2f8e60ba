package fetch

import (
	"errors"
	"fmt"

	"github.com/abhisek/studyiz/internal/llm"
)

var (
	// ErrProviderFailure means the content provider call failed.
	ErrProviderFailure = errors.New("provider failure")

	// ErrParseFailure means the provider answered with data of the wrong shape.
	ErrParseFailure = errors.New("parse failure")
)

// classify wraps a provider error with ErrParseFailure when the model
// returned malformed output and ErrProviderFailure otherwise.
func classify(err error) error {
	var inv *llm.ErrInvalidResponse
	if errors.As(err, &inv) {
		return fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	return fmt.Errorf("%w: %w", ErrProviderFailure, err)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrParseFailure, err)
}
