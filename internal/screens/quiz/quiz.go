// Package quiz is the multiple-choice quiz screen for one chapter.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/curriculum"
	qs "github.com/abhisek/studyiz/internal/quiz"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screen"
	"github.com/abhisek/studyiz/internal/store"
	"github.com/abhisek/studyiz/internal/ui/components"
	"github.com/abhisek/studyiz/internal/ui/layout"
	"github.com/abhisek/studyiz/internal/ui/theme"
)

// committedMsg reports the outcome of saving one attempt's score.
type committedMsg struct {
	sessionID string
	attempt   int
	err       error
}

// QuizScreen runs one quiz session.
type QuizScreen struct {
	session *qs.Session
	logger  *log.Logger
	saveErr error
	saved   bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for chapter.
func New(chapter curriculum.ChapterInfo, fetcher qs.Fetcher, progress store.ProgressStore, logger *log.Logger) *QuizScreen {
	if logger == nil {
		logger = log.Default()
	}
	return &QuizScreen{
		session: qs.NewSession(chapter, fetcher, progress, logger),
		logger:  logger,
	}
}

// Session exposes the controller.
func (s *QuizScreen) Session() *qs.Session {
	return s.session
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.load()
}

func (s *QuizScreen) Title() string {
	return "Quiz · " + s.session.Chapter().ChapterTitle
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case qs.PhaseInProgress:
		if s.session.Answered() {
			return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Leave"}}
		}
		return []layout.KeyHint{
			{Key: "↑↓/A-D", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	case qs.PhaseNoQuestions, qs.PhaseCompleted:
		return []layout.KeyHint{{Key: "r", Description: "Retry"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case qs.QuestionsLoaded:
		s.session.ApplyQuestions(msg)
		return s, nil

	case committedMsg:
		if msg.sessionID == s.session.ID() && msg.attempt == s.session.Attempt() {
			s.saveErr = msg.err
			s.saved = msg.err == nil
			if msg.err != nil {
				s.logger.Error("save quiz score", "err", msg.err)
			}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	k := msg.String()
	switch s.session.Phase() {
	case qs.PhaseInProgress:
		return s, s.handleAnswerKey(k)
	case qs.PhaseNoQuestions, qs.PhaseCompleted:
		switch k {
		case "r":
			s.session.Retry()
			s.saveErr, s.saved = nil, false
			return s, s.load()
		case "enter":
			return s, router.Pop
		}
	}
	return s, nil
}

func (s *QuizScreen) handleAnswerKey(k string) tea.Cmd {
	switch k {
	case "up", "k":
		cur := s.session.Selected()
		if cur == qs.NoSelection {
			cur = 1
		}
		s.session.SelectOption(cur - 1)
	case "down", "j":
		s.session.SelectOption(s.session.Selected() + 1)
	case "enter", "space":
		if !s.session.Answered() {
			s.session.SubmitAnswer()
			return nil
		}
		if res, done := s.session.Advance(); done {
			return s.commit(res)
		}
	default:
		if q, ok := s.session.Current(); ok {
			if i, ok := components.OptionIndex(k, len(q.Options)); ok {
				s.session.SelectOption(i)
			}
		}
	}
	return nil
}

func (s *QuizScreen) load() tea.Cmd {
	q := s.session
	return func() tea.Msg {
		return q.Load(context.Background())
	}
}

func (s *QuizScreen) commit(res store.QuizResult) tea.Cmd {
	q := s.session
	id, attempt := q.ID(), q.Attempt()
	return func() tea.Msg {
		return committedMsg{sessionID: id, attempt: attempt, err: q.Commit(context.Background(), res)}
	}
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 80)
	switch s.session.Phase() {
	case qs.PhaseLoading:
		return components.Notice("Preparing your quiz…", s.session.Chapter().ChapterTitle, width, height)
	case qs.PhaseNoQuestions:
		body := "No questions are available for this chapter right now."
		if err := s.session.LoadErr(); err != nil {
			body += "\n" + err.Error()
		}
		return components.Notice("No quiz yet", body+"\n\nPress r to try again.", width, height)
	case qs.PhaseCompleted:
		return components.Center(s.renderResult(cw), width, height)
	}
	return components.Center(s.renderQuestion(cw), width, height)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q, _ := s.session.Current()
	header := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.session.Index()+1, s.session.Total())) +
		"  " + theme.Warning.Render(fmt.Sprintf("score %d", s.session.Score()))

	mc := components.MultiChoice{
		Question:     q.Question,
		Options:      q.Options,
		CorrectIndex: q.CorrectAnswer,
		Selected:     s.session.Selected(),
		Answered:     s.session.Answered(),
		Width:        cw - 6,
	}

	answered := s.session.Index()
	if s.session.Answered() {
		answered++
	}
	bar := components.Bar(float64(answered)/float64(s.session.Total()), cw-6,
		components.Steps(answered, s.session.Total()))

	parts := []string{header, bar, "", mc.View()}
	if s.session.Answered() {
		verdict := theme.Incorrect.Render("Not quite.")
		if s.session.Correct() {
			verdict = theme.Correct.Render("Correct!")
		}
		parts = append(parts, verdict)
		if q.Explanation != "" {
			parts = append(parts, lipgloss.NewStyle().Width(cw-6).Foreground(theme.TextDim).Render(q.Explanation))
		}
	}
	return components.Card(strings.Join(parts, "\n"), cw)
}

func (s *QuizScreen) renderResult(cw int) string {
	res, _ := s.session.Result()
	lines := []string{
		theme.Title.Render("Quiz complete"),
		"",
		theme.Body.Render(fmt.Sprintf("You scored %d out of %d (%d%%)", res.Score, res.Total, int(res.Percent()+0.5))),
		components.Bar(res.Percent()/100, cw-6, ""),
	}
	switch {
	case s.saveErr != nil:
		lines = append(lines, theme.Incorrect.Render("Your score could not be saved."))
	case s.saved:
		lines = append(lines, theme.Done.Render("Score saved."))
	}
	lines = append(lines, "", theme.Hint.Render("r to retake · Enter to go back"))
	return components.Card(strings.Join(lines, "\n"), cw)
}
