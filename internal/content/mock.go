package content

import (
	"context"
	"errors"
	"sync"
)

// ErrMockUnset is returned by MockProvider for artifacts it has no data for.
var ErrMockUnset = errors.New("mock: no response configured")

// MockProvider is a deterministic Provider for testing. Each artifact kind
// returns the configured value or error; Explanations are looked up by
// topic. Hooks, when set, run before the response is returned and may block.
type MockProvider struct {
	mu sync.Mutex

	Topics       []string
	TopicsErr    error
	Explanations map[string]Explanation
	ExplainErr   error
	Questions    []Question
	QuizErr      error
	Terms        []Term
	GlossaryErr  error

	OnSyllabus    func()
	OnExplanation func(topic string)

	calls map[string]int
}

// NewMockProvider returns an empty MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{Explanations: map[string]Explanation{}, calls: map[string]int{}}
}

func (m *MockProvider) record(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[kind]++
}

// Calls returns how many times the given kind ("syllabus", "explanation",
// "quiz", "glossary") was requested.
func (m *MockProvider) Calls(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[kind]
}

func (m *MockProvider) Syllabus(_ context.Context, _ Request) ([]string, error) {
	m.record("syllabus")
	if m.OnSyllabus != nil {
		m.OnSyllabus()
	}
	if m.TopicsErr != nil {
		return nil, m.TopicsErr
	}
	if m.Topics == nil {
		return nil, ErrMockUnset
	}
	return append([]string(nil), m.Topics...), nil
}

func (m *MockProvider) Explanation(_ context.Context, _ Request, topic string) (Explanation, error) {
	m.record("explanation")
	if m.OnExplanation != nil {
		m.OnExplanation(topic)
	}
	if m.ExplainErr != nil {
		return Explanation{}, m.ExplainErr
	}
	m.mu.Lock()
	exp, ok := m.Explanations[topic]
	m.mu.Unlock()
	if !ok {
		return Explanation{}, ErrMockUnset
	}
	return exp, nil
}

func (m *MockProvider) Quiz(_ context.Context, _ Request) ([]Question, error) {
	m.record("quiz")
	if m.QuizErr != nil {
		return nil, m.QuizErr
	}
	return append([]Question(nil), m.Questions...), nil
}

func (m *MockProvider) Glossary(_ context.Context, _ Request) ([]Term, error) {
	m.record("glossary")
	if m.GlossaryErr != nil {
		return nil, m.GlossaryErr
	}
	return append([]Term(nil), m.Terms...), nil
}

// SetExplanation configures the explanation for topic.
func (m *MockProvider) SetExplanation(topic string, exp Explanation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Explanations == nil {
		m.Explanations = map[string]Explanation{}
	}
	m.Explanations[topic] = exp
}
