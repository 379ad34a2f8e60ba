// Package quiz implements the quiz session for one chapter.
//
// As with the learning session, Load and Commit block on I/O without
// touching session state; every other method is a synchronous transition.
package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/store"
)

// Phase is the quiz lifecycle state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseInProgress
	PhaseNoQuestions
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseInProgress:
		return "in-progress"
	case PhaseNoQuestions:
		return "no-questions"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// NoSelection is the Selected value when no option is chosen.
const NoSelection = -1

// Fetcher supplies quiz questions. *fetch.Orchestrator implements it.
type Fetcher interface {
	Quiz(ctx context.Context, ch curriculum.ChapterInfo) ([]content.Question, error)
}

// QuestionsLoaded is the result of Load.
type QuestionsLoaded struct {
	SessionID string
	Attempt   int
	Questions []content.Question
	Err       error
}

// Session is the quiz state machine for one chapter.
type Session struct {
	id       string
	chapter  curriculum.ChapterInfo
	fetcher  Fetcher
	progress store.ProgressStore
	logger   *log.Logger
	now      func() time.Time

	phase     Phase
	attempt   int
	questions []content.Question
	current   int
	selected  int
	answered  bool
	score     int
	result    store.QuizResult
	loadErr   error
}

// NewSession creates a quiz session in PhaseLoading.
func NewSession(chapter curriculum.ChapterInfo, fetcher Fetcher, progress store.ProgressStore, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	s := &Session{
		id:       id,
		chapter:  chapter,
		fetcher:  fetcher,
		progress: progress,
		logger:   logger.With("quiz", id[:8], "chapter", chapter.Key.String()),
		now:      time.Now,
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.phase = PhaseLoading
	s.attempt++
	s.questions = nil
	s.current = 0
	s.selected = NoSelection
	s.answered = false
	s.score = 0
	s.result = store.QuizResult{}
	s.loadErr = nil
}

// Load fetches the questions for the current attempt. It does not modify
// the session.
func (s *Session) Load(ctx context.Context) QuestionsLoaded {
	qs, err := s.fetcher.Quiz(ctx, s.chapter)
	return QuestionsLoaded{SessionID: s.id, Attempt: s.attempt, Questions: qs, Err: err}
}

// ApplyQuestions starts the attempt at question 0, or enters
// PhaseNoQuestions when the list is empty. Results of an earlier attempt
// are ignored.
func (s *Session) ApplyQuestions(msg QuestionsLoaded) {
	if msg.SessionID != s.id || msg.Attempt != s.attempt || s.phase != PhaseLoading {
		return
	}
	s.loadErr = msg.Err
	if len(msg.Questions) == 0 {
		s.phase = PhaseNoQuestions
		s.logger.Info("no questions available", "err", msg.Err)
		return
	}
	s.questions = msg.Questions
	s.phase = PhaseInProgress
	s.current = 0
	s.score = 0
}

// SelectOption records a tentative choice. It is accepted only while the
// current question is unanswered.
func (s *Session) SelectOption(i int) bool {
	if s.phase != PhaseInProgress || s.answered {
		return false
	}
	if i < 0 || i >= len(s.questions[s.current].Options) {
		return false
	}
	s.selected = i
	return true
}

// SubmitAnswer locks in the selection and scores it. It is a no-op without
// a selection or when already answered.
func (s *Session) SubmitAnswer() bool {
	if s.phase != PhaseInProgress || s.answered || s.selected == NoSelection {
		return false
	}
	s.answered = true
	if s.selected == s.questions[s.current].CorrectAnswer {
		s.score++
	}
	return true
}

// Advance moves past an answered question. On the last question it
// completes the quiz and returns the result to commit with true. The
// committed score is the running score. Advancing an unanswered question
// is a no-op, so every question counts towards the total only once it
// has been answered.
func (s *Session) Advance() (store.QuizResult, bool) {
	if s.phase != PhaseInProgress || !s.answered {
		return store.QuizResult{}, false
	}
	if s.current < len(s.questions)-1 {
		s.current++
		s.selected = NoSelection
		s.answered = false
		return store.QuizResult{}, false
	}

	s.phase = PhaseCompleted
	s.result = store.QuizResult{Score: s.score, Total: len(s.questions), Date: s.now().UTC()}
	s.logger.Info("quiz completed", "score", s.score, "total", len(s.questions))
	return s.result, true
}

// Commit saves result as the chapter's latest quiz score. It does not
// modify the session.
func (s *Session) Commit(ctx context.Context, result store.QuizResult) error {
	if err := s.progress.SaveQuizScore(ctx, s.chapter.Key.String(), result); err != nil {
		return fmt.Errorf("save quiz score for %s: %w", s.chapter.Key, err)
	}
	return nil
}

// Retry discards the attempt and returns to PhaseLoading. Cached questions
// are reused by the next Load.
func (s *Session) Retry() {
	s.reset()
	s.logger.Debug("quiz retry", "attempt", s.attempt)
}

// ID returns the session identifier. It is stable across retries.
func (s *Session) ID() string { return s.id }

// Attempt returns the attempt number, starting at 1 and incremented by
// Retry.
func (s *Session) Attempt() int { return s.attempt }

// Chapter returns the chapter being quizzed.
func (s *Session) Chapter() curriculum.ChapterInfo { return s.chapter }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Questions returns the loaded questions.
func (s *Session) Questions() []content.Question { return s.questions }

// Index returns the current question index.
func (s *Session) Index() int { return s.current }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// Current returns the current question.
func (s *Session) Current() (content.Question, bool) {
	if s.phase != PhaseInProgress || s.current >= len(s.questions) {
		return content.Question{}, false
	}
	return s.questions[s.current], true
}

// Selected returns the tentative choice, or NoSelection.
func (s *Session) Selected() int { return s.selected }

// Answered reports whether the current question has been submitted.
func (s *Session) Answered() bool { return s.answered }

// Correct reports whether the submitted answer is right.
func (s *Session) Correct() bool {
	q, ok := s.Current()
	return ok && s.answered && s.selected == q.CorrectAnswer
}

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// Result returns the final result once completed.
func (s *Session) Result() (store.QuizResult, bool) {
	return s.result, s.phase == PhaseCompleted
}

// LoadErr returns the fetch error behind an empty question list, if any.
func (s *Session) LoadErr() error { return s.loadErr }

// Start loads questions synchronously.
func (s *Session) Start(ctx context.Context) {
	s.ApplyQuestions(s.Load(ctx))
}

// AdvanceAndCommit advances and, when that completes the quiz, commits the
// result synchronously.
func (s *Session) AdvanceAndCommit(ctx context.Context) error {
	if res, done := s.Advance(); done {
		return s.Commit(ctx, res)
	}
	return nil
}
