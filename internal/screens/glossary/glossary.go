// Package glossary lists the key terms of a chapter.
package glossary

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/screen"
	"github.com/abhisek/studyiz/internal/ui/components"
	"github.com/abhisek/studyiz/internal/ui/layout"
	"github.com/abhisek/studyiz/internal/ui/theme"
)

// Fetcher supplies glossary terms. *fetch.Orchestrator implements it.
type Fetcher interface {
	Glossary(ctx context.Context, ch curriculum.ChapterInfo) ([]content.Term, error)
}

type termsLoadedMsg struct {
	terms []content.Term
	err   error
}

// GlossaryScreen shows a filterable term list.
type GlossaryScreen struct {
	chapter curriculum.ChapterInfo
	fetcher Fetcher
	logger  *log.Logger

	loading bool
	terms   []content.Term
	err     error
	filter  components.FilterInput
	offset  int
}

var _ screen.Screen = (*GlossaryScreen)(nil)
var _ screen.KeyHintProvider = (*GlossaryScreen)(nil)

// New creates a glossary screen for chapter.
func New(chapter curriculum.ChapterInfo, fetcher Fetcher, logger *log.Logger) *GlossaryScreen {
	if logger == nil {
		logger = log.Default()
	}
	return &GlossaryScreen{
		chapter: chapter,
		fetcher: fetcher,
		logger:  logger,
		loading: true,
		filter:  components.NewFilterInput("filter terms", 40),
	}
}

func (s *GlossaryScreen) Init() tea.Cmd {
	ch, f := s.chapter, s.fetcher
	return func() tea.Msg {
		terms, err := f.Glossary(context.Background(), ch)
		return termsLoadedMsg{terms: terms, err: err}
	}
}

func (s *GlossaryScreen) Title() string {
	return "Glossary · " + s.chapter.ChapterTitle
}

func (s *GlossaryScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{{Key: "Enter", Description: "Apply"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

// Visible returns the terms matching the current filter.
func (s *GlossaryScreen) Visible() []content.Term {
	var out []content.Term
	for _, t := range s.terms {
		if s.filter.Matches(t.Term + " " + t.Definition) {
			out = append(out, t)
		}
	}
	return out
}

func (s *GlossaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case termsLoadedMsg:
		s.loading = false
		s.terms = msg.terms
		s.err = msg.err
		if msg.err != nil {
			s.logger.Warn("glossary fallback", "chapter", s.chapter.Key, "err", msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		if s.filter.Focused() {
			if msg.String() == "enter" {
				s.filter.Blur()
				return s, nil
			}
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			s.offset = 0
			return s, cmd
		}
		switch msg.String() {
		case "/":
			return s, s.filter.Focus()
		case "down", "j":
			if s.offset < len(s.Visible())-1 {
				s.offset++
			}
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		}
	}
	return s, nil
}

func (s *GlossaryScreen) View(width, height int) string {
	if s.loading {
		return components.Notice("Collecting key terms…", s.chapter.ChapterTitle, width, height)
	}
	if len(s.terms) == 0 {
		return components.Notice("No glossary available", "Try again later.", width, height)
	}

	cw := components.ContentWidth(width, layout.ReadingWidth)
	termStyle := theme.Selected
	defStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).PaddingLeft(2)

	var blocks []string
	for _, t := range s.Visible()[min(s.offset, len(s.Visible())):] {
		blocks = append(blocks, termStyle.Render(t.Term)+"\n"+defStyle.Render(t.Definition))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, theme.Hint.Render("No terms match."))
	}

	list := lipgloss.NewStyle().
		Height(max(height-2, 1)).
		MaxHeight(max(height-2, 1)).
		Render(strings.Join(blocks, "\n\n"))
	content := lipgloss.JoinVertical(lipgloss.Left, s.filter.View(), "", list)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(content))
}
