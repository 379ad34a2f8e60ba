package content

import (
	"errors"
	"fmt"
	"strings"
)

// Request identifies the chapter a generation is for. Names, not IDs, are
// sent to the model.
type Request struct {
	ClassLevel   int
	SubjectName  string
	ChapterTitle string
}

// Source is a cited reference for an explanation.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Explanation is the markdown body for one topic plus its sources.
type Explanation struct {
	Content string   `json:"content"`
	Sources []Source `json:"sources"`
}

// Question is a four-option multiple-choice question.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Term is a glossary entry.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// OptionCount is the number of options every question must have.
const OptionCount = 4

var errEmpty = errors.New("empty")

// ValidateSyllabus checks a topic list is non-empty with no blank titles.
func ValidateSyllabus(topics []string) error {
	if len(topics) == 0 {
		return fmt.Errorf("syllabus: %w", errEmpty)
	}
	for i, t := range topics {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("syllabus topic %d is blank", i)
		}
	}
	return nil
}

// Validate checks the explanation has a body and every source a URI.
func (e Explanation) Validate() error {
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("explanation content: %w", errEmpty)
	}
	for i, s := range e.Sources {
		if s.URI == "" {
			return fmt.Errorf("source %d has no uri", i)
		}
	}
	return nil
}

// Validate checks the question text, option count and answer index.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text: %w", errEmpty)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), OptionCount)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return fmt.Errorf("correct answer index %d out of range", q.CorrectAnswer)
	}
	return nil
}

// ValidateQuiz checks every question in the list.
func ValidateQuiz(qs []Question) error {
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// ValidateGlossary checks every term has a name and a definition.
func ValidateGlossary(terms []Term) error {
	for i, t := range terms {
		if strings.TrimSpace(t.Term) == "" || strings.TrimSpace(t.Definition) == "" {
			return fmt.Errorf("glossary term %d: %w", i, errEmpty)
		}
	}
	return nil
}

// DedupeSources drops sources whose URI was already seen, keeping the first.
func DedupeSources(in []Source) []Source {
	seen := make(map[string]bool, len(in))
	out := make([]Source, 0, len(in))
	for _, s := range in {
		if seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		out = append(out, s)
	}
	return out
}
