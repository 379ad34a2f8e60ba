package content

import "time"

// Config holds generation settings.
type Config struct {
	SyllabusMaxTokens    int
	ExplanationMaxTokens int
	QuizMaxTokens        int
	GlossaryMaxTokens    int
	Temperature          float64

	QuizSize     int
	GlossarySize int

	// Timeout bounds one generation including provider retries. Zero
	// means no limit beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for content generation.
func DefaultConfig() Config {
	return Config{
		SyllabusMaxTokens:    512,
		ExplanationMaxTokens: 4096,
		QuizMaxTokens:        2048,
		GlossaryMaxTokens:    2048,
		Temperature:          0.4,
		QuizSize:             5,
		GlossarySize:         10,
		Timeout:              60 * time.Second,
	}
}
