// Package learn is the reading screen for one chapter.
package learn

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/abhisek/studyiz/internal/curriculum"
	sess "github.com/abhisek/studyiz/internal/learn"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screen"
	"github.com/abhisek/studyiz/internal/store"
	"github.com/abhisek/studyiz/internal/ui/layout"
)

// completeMsg reports the outcome of recording chapter completion.
type completeMsg struct {
	sessionID string
	err       error
}

// LearnScreen shows one topic explanation at a time with manual scrolling.
type LearnScreen struct {
	session *sess.Session
	logger  *log.Logger

	// openQuiz and openGlossary build the follow-up screens. Nil hides
	// the key binding.
	openQuiz     func() screen.Screen
	openGlossary func() screen.Screen

	// copy puts text on the clipboard.
	copy func(string) error

	lines      []string
	renderedMD string
	width      int
	offset     int
	bodyHeight int
	saveErr    error
	notice     string
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a learn screen for chapter.
func New(chapter curriculum.ChapterInfo, fetcher sess.Fetcher, progress store.ProgressStore, logger *log.Logger) *LearnScreen {
	if logger == nil {
		logger = log.Default()
	}
	return &LearnScreen{
		session: sess.NewSession(chapter, fetcher, progress, logger),
		logger:  logger,
		copy:    copyToClipboard,
	}
}

// copyToClipboard writes text with OSC 52 and to the system clipboard.
// OSC 52 has no failure report, so only the native error is returned.
func copyToClipboard(text string) error {
	termenv.Copy(text)
	return clipboard.WriteAll(text)
}

// WithFollowUps sets the screens reachable from the reader.
func (s *LearnScreen) WithFollowUps(quiz, glossary func() screen.Screen) *LearnScreen {
	s.openQuiz = quiz
	s.openGlossary = glossary
	return s
}

// Session exposes the controller.
func (s *LearnScreen) Session() *sess.Session {
	return s.session
}

func (s *LearnScreen) Init() tea.Cmd {
	s.session.Open()
	ls := s.session
	return func() tea.Msg {
		return ls.ColdStart(context.Background())
	}
}

func (s *LearnScreen) Title() string {
	return s.session.Chapter().ChapterTitle
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "←→", Description: "Topic"},
		{Key: "c", Description: "Copy"},
	}
	if s.openQuiz != nil {
		hints = append(hints, layout.KeyHint{Key: "t", Description: "Quiz"})
	}
	if s.openGlossary != nil {
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Glossary"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sess.SyllabusLoaded:
		if s.session.ApplySyllabus(msg) {
			return s, s.fetch(s.session.BeginContentLoad())
		}
		return s, nil

	case sess.ContentLoaded:
		if s.session.ApplyContent(msg) {
			return s, s.markComplete()
		}
		return s, nil

	case completeMsg:
		if msg.sessionID == s.session.ID() && msg.err != nil {
			s.saveErr = msg.err
			s.logger.Error("record chapter completion", "err", msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	switch msg.String() {
	case "right", "n", "l":
		if req, ok := s.session.Next(); ok {
			s.resetBody()
			return s, s.fetch(req)
		}
	case "left", "p", "h":
		if req, ok := s.session.Previous(); ok {
			s.resetBody()
			return s, s.fetch(req)
		}
	case "down", "j":
		s.scrollTo(s.offset + 1)
	case "up", "k":
		s.scrollTo(s.offset - 1)
	case "pgdown", "space", "f":
		s.scrollTo(s.offset + s.page())
	case "pgup", "b":
		s.scrollTo(s.offset - s.page())
	case "home":
		s.scrollTo(0)
	case "end":
		s.scrollTo(len(s.lines))
	case "t":
		if s.openQuiz != nil {
			next := s.openQuiz()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "g":
		if s.openGlossary != nil {
			return s, router.Push(s.openGlossary())
		}
	case "c":
		if s.session.Phase() == sess.PhaseReady && !s.session.LoadingContent() {
			if err := s.copy(s.session.Content()); err != nil {
				s.logger.Debug("system clipboard unavailable", "err", err)
			}
			s.notice = "Copied " + s.session.Topic()
		}
	}
	return s, nil
}

// fetch runs the blocking content load off the event loop.
func (s *LearnScreen) fetch(req sess.ContentRequest) tea.Cmd {
	ls := s.session
	return func() tea.Msg {
		return ls.FetchContent(context.Background(), req)
	}
}

func (s *LearnScreen) markComplete() tea.Cmd {
	ls := s.session
	return func() tea.Msg {
		return completeMsg{sessionID: ls.ID(), err: ls.MarkComplete(context.Background())}
	}
}

func (s *LearnScreen) resetBody() {
	s.lines = nil
	s.renderedMD = ""
	s.offset = 0
}

func (s *LearnScreen) page() int {
	return max(s.bodyHeight-1, 1)
}

// scrollTo clamps the offset and reports the position to the session.
func (s *LearnScreen) scrollTo(offset int) {
	maxOffset := max(len(s.lines)-s.bodyHeight, 0)
	s.offset = min(max(offset, 0), maxOffset)
	if s.session.Phase() == sess.PhaseReady && !s.session.LoadingContent() && s.bodyHeight > 0 {
		s.session.UpdateScroll(s.offset, len(s.lines), s.bodyHeight)
	}
}

// render converts the current markdown to terminal lines for width. It
// reports whether the lines changed.
func (s *LearnScreen) render(width int) bool {
	md := s.session.Content()
	if md == s.renderedMD && width == s.width && s.lines != nil {
		return false
	}
	s.renderedMD = md
	s.width = width

	out, err := renderMarkdown(md, width)
	if err != nil {
		s.logger.Warn("render markdown", "err", err)
		out = md
	}
	s.lines = strings.Split(strings.TrimRight(out, "\n"), "\n")
	return true
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
