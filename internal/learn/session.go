// Package learn implements the learning session for one chapter: the topic
// sequence, the explanation shown for the current topic, read progress and
// the chapter completion signal.
//
// State changes happen only in the synchronous methods (Open, ApplySyllabus,
// BeginContentLoad, ApplyContent, Next, Previous, UpdateScroll). ColdStart,
// FetchContent and MarkComplete block on I/O and do not touch session state,
// so a UI can run them off the event loop and feed the results back in.
package learn

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/store"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseInitializingSyllabus Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializingSyllabus:
		return "initializing-syllabus"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Fetcher supplies the topic list and explanations. *fetch.Orchestrator
// implements it.
type Fetcher interface {
	ColdStart(ctx context.Context, ch curriculum.ChapterInfo) ([]string, error)
	Explanation(ctx context.Context, ch curriculum.ChapterInfo, index int, topic string) (content.Explanation, error)
}

// SyllabusLoaded is the result of ColdStart.
type SyllabusLoaded struct {
	SessionID string
	Topics    []string
	Err       error
}

// ContentRequest describes one explanation load.
type ContentRequest struct {
	SessionID string
	Seq       int
	Index     int
	Topic     string
}

// ContentLoaded is the result of FetchContent.
type ContentLoaded struct {
	ContentRequest
	Explanation content.Explanation
	Err         error
}

// Session is the learning state machine for one chapter.
type Session struct {
	id       string
	chapter  curriculum.ChapterInfo
	fetcher  Fetcher
	progress store.ProgressStore
	logger   *log.Logger

	phase          Phase
	loadingContent bool
	contentLoaded  bool
	topics         []string
	index          int
	content        string
	sources        []content.Source
	contentErr     error
	readProgress   float64
	loadSeq        int
	completed      bool
}

// NewSession creates a session for chapter. Call Open before use.
func NewSession(chapter curriculum.ChapterInfo, fetcher Fetcher, progress store.ProgressStore, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		chapter:  chapter,
		fetcher:  fetcher,
		progress: progress,
		logger:   logger.With("session", id[:8], "chapter", chapter.Key.String()),
	}
}

// Open resets the session to the start of the chapter and enters
// PhaseInitializingSyllabus.
func (s *Session) Open() {
	s.phase = PhaseInitializingSyllabus
	s.loadingContent = false
	s.contentLoaded = false
	s.topics = nil
	s.index = 0
	s.content = ""
	s.sources = nil
	s.contentErr = nil
	s.readProgress = 0
	s.logger.Debug("session opened")
}

// ColdStart runs the chapter entry fetch. It does not modify the session.
func (s *Session) ColdStart(ctx context.Context) SyllabusLoaded {
	topics, err := s.fetcher.ColdStart(ctx, s.chapter)
	return SyllabusLoaded{SessionID: s.id, Topics: topics, Err: err}
}

// ApplySyllabus installs the topic list and enters PhaseReady. It reports
// whether content for the current index should now be loaded.
func (s *Session) ApplySyllabus(msg SyllabusLoaded) bool {
	if msg.SessionID != s.id || s.phase != PhaseInitializingSyllabus {
		return false
	}
	topics := msg.Topics
	if len(topics) == 0 {
		topics = []string{"Introduction"}
	}
	s.topics = append([]string(nil), topics...)
	s.phase = PhaseReady
	if s.index > len(s.topics)-1 {
		s.index = len(s.topics) - 1
	}
	if msg.Err != nil {
		s.logger.Warn("syllabus fallback in use", "err", msg.Err)
	}
	return true
}

// BeginContentLoad marks content for the current index as loading and
// returns the request to pass to FetchContent.
func (s *Session) BeginContentLoad() ContentRequest {
	s.loadSeq++
	s.loadingContent = true
	s.contentLoaded = false
	return ContentRequest{
		SessionID: s.id,
		Seq:       s.loadSeq,
		Index:     s.index,
		Topic:     s.topicAt(s.index),
	}
}

// FetchContent loads the explanation for req. It does not modify the
// session. Fetcher fallbacks are returned as content with Err set.
func (s *Session) FetchContent(ctx context.Context, req ContentRequest) ContentLoaded {
	exp, err := s.fetcher.Explanation(ctx, s.chapter, req.Index, req.Topic)
	return ContentLoaded{ContentRequest: req, Explanation: exp, Err: err}
}

// ApplyContent displays a loaded explanation. Results for a superseded
// request are ignored. It reports whether the chapter has just become
// complete, in which case the caller should run MarkComplete.
func (s *Session) ApplyContent(msg ContentLoaded) bool {
	if msg.SessionID != s.id || msg.Seq != s.loadSeq || msg.Index != s.index {
		s.logger.Debug("stale content ignored", "index", msg.Index, "current", s.index)
		return false
	}

	s.content = msg.Explanation.Content
	s.sources = msg.Explanation.Sources
	s.contentErr = msg.Err
	if msg.Err != nil && s.content == "" {
		s.content = "Unable to load content. Please try again."
	}
	s.loadingContent = false
	s.contentLoaded = true

	if s.phase == PhaseReady && s.IsLast() && !s.completed {
		s.completed = true
		return true
	}
	return false
}

// MarkComplete records the chapter as completed. It does not modify the
// session.
func (s *Session) MarkComplete(ctx context.Context) error {
	if err := s.progress.MarkChapterComplete(ctx, s.chapter.Key.String()); err != nil {
		return fmt.Errorf("mark %s complete: %w", s.chapter.Key, err)
	}
	s.logger.Info("chapter completed")
	return nil
}

// Next moves to the following topic. It returns the content load to run,
// or false when already at the last topic.
func (s *Session) Next() (ContentRequest, bool) {
	if s.phase != PhaseReady || s.index >= len(s.topics)-1 {
		return ContentRequest{}, false
	}
	s.index++
	s.readProgress = 0
	return s.BeginContentLoad(), true
}

// Previous moves to the preceding topic. It returns the content load to
// run, or false when already at the first topic.
func (s *Session) Previous() (ContentRequest, bool) {
	if s.phase != PhaseReady || s.index <= 0 {
		return ContentRequest{}, false
	}
	s.index--
	s.readProgress = 0
	return s.BeginContentLoad(), true
}

// UpdateScroll sets read progress from a scroll position, the total content
// height and the viewport height. Content that fits the viewport counts as
// fully read.
func (s *Session) UpdateScroll(position, height, viewport int) float64 {
	s.readProgress = ReadProgress(position, height, viewport)
	return s.readProgress
}

// ReadProgress returns position / (height - viewport) as a percentage
// clamped to [0, 100], or 100 when there is nothing to scroll.
func ReadProgress(position, height, viewport int) float64 {
	scrollable := height - viewport
	if scrollable <= 0 {
		return 100
	}
	p := float64(position) / float64(scrollable) * 100
	return min(max(p, 0), 100)
}

func (s *Session) topicAt(i int) string {
	if i < 0 || i >= len(s.topics) {
		return ""
	}
	return s.topics[i]
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Chapter returns the chapter being studied.
func (s *Session) Chapter() curriculum.ChapterInfo { return s.chapter }

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// LoadingContent reports whether an explanation load is in flight.
func (s *Session) LoadingContent() bool { return s.loadingContent }

// Topics returns the topic list.
func (s *Session) Topics() []string { return s.topics }

// Index returns the current topic index.
func (s *Session) Index() int { return s.index }

// Topic returns the current topic title.
func (s *Session) Topic() string { return s.topicAt(s.index) }

// Content returns the markdown shown for the current topic.
func (s *Session) Content() string { return s.content }

// Sources returns the sources cited by the current explanation.
func (s *Session) Sources() []content.Source { return s.sources }

// ContentErr returns the error behind a fallback explanation, if any.
func (s *Session) ContentErr() error { return s.contentErr }

// ReadProgress returns the read percentage for the current topic.
func (s *Session) ReadProgress() float64 { return s.readProgress }

// IsFirst reports whether the current topic is the first.
func (s *Session) IsFirst() bool { return s.index == 0 }

// IsLast reports whether the current topic is the last.
func (s *Session) IsLast() bool { return len(s.topics) > 0 && s.index == len(s.topics)-1 }

// Completed reports whether completion was signalled in this session.
func (s *Session) Completed() bool { return s.completed }
