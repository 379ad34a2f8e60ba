// Package chapter is the per-chapter menu: read, take the quiz or browse
// the glossary.
package chapter

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/curriculum"
	learnsess "github.com/abhisek/studyiz/internal/learn"
	quizsess "github.com/abhisek/studyiz/internal/quiz"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screen"
	"github.com/abhisek/studyiz/internal/screens/glossary"
	learnscreen "github.com/abhisek/studyiz/internal/screens/learn"
	quizscreen "github.com/abhisek/studyiz/internal/screens/quiz"
	"github.com/abhisek/studyiz/internal/store"
	"github.com/abhisek/studyiz/internal/ui/components"
	"github.com/abhisek/studyiz/internal/ui/theme"
)

// Fetcher supplies every chapter artifact. *fetch.Orchestrator implements it.
type Fetcher interface {
	learnsess.Fetcher
	quizsess.Fetcher
	glossary.Fetcher
}

type statusMsg struct {
	completed bool
	score     store.QuizResult
	hasScore  bool
}

// ChapterScreen offers the activities for one chapter.
type ChapterScreen struct {
	chapter  curriculum.ChapterInfo
	fetcher  Fetcher
	progress store.ProgressStore
	logger   *log.Logger
	menu     components.Menu
	status   statusMsg
}

var _ screen.Screen = (*ChapterScreen)(nil)
var _ screen.Resumer = (*ChapterScreen)(nil)

// New creates the menu for chapter.
func New(chapter curriculum.ChapterInfo, fetcher Fetcher, progress store.ProgressStore, logger *log.Logger) *ChapterScreen {
	s := &ChapterScreen{
		chapter:  chapter,
		fetcher:  fetcher,
		progress: progress,
		logger:   logger,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Learn", Detail: "read the chapter topic by topic", Action: func() tea.Cmd { return router.Push(s.Learn()) }},
		{Label: "Take quiz", Detail: "test yourself", Action: func() tea.Cmd { return router.Push(s.Quiz()) }},
		{Label: "Glossary", Detail: "key terms", Action: func() tea.Cmd { return router.Push(s.Glossary()) }},
	})
	return s
}

// Learn builds the reading screen, wired to hand over to the quiz.
func (s *ChapterScreen) Learn() screen.Screen {
	return learnscreen.New(s.chapter, s.fetcher, s.progress, s.logger).
		WithFollowUps(s.Quiz, s.Glossary)
}

// Quiz builds the quiz screen.
func (s *ChapterScreen) Quiz() screen.Screen {
	return quizscreen.New(s.chapter, s.fetcher, s.progress, s.logger)
}

// Glossary builds the glossary screen.
func (s *ChapterScreen) Glossary() screen.Screen {
	return glossary.New(s.chapter, s.fetcher, s.logger)
}

func (s *ChapterScreen) Init() tea.Cmd {
	return s.loadStatus()
}

// Resume refreshes the completion mark and score after an activity closes.
func (s *ChapterScreen) Resume() tea.Cmd {
	return s.loadStatus()
}

func (s *ChapterScreen) loadStatus() tea.Cmd {
	key, progress := s.chapter.Key.String(), s.progress
	return func() tea.Msg {
		p, err := progress.LoadProgress(context.Background())
		if err != nil || p == nil {
			return statusMsg{}
		}
		res, ok := p.QuizScores[key]
		return statusMsg{completed: p.IsComplete(key), score: res, hasScore: ok}
	}
}

func (s *ChapterScreen) Title() string {
	return s.chapter.ChapterTitle
}

func (s *ChapterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statusMsg); ok {
		s.status = m
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ChapterScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 64)
	lines := []string{
		theme.Title.Render(s.chapter.ChapterTitle),
		theme.Subtitle.Render(fmt.Sprintf("Class %d · %s", s.chapter.Key.ClassLevel, s.chapter.SubjectName)),
		"",
	}
	var st []string
	if s.status.completed {
		st = append(st, theme.Done.Render("✓ completed"))
	}
	if s.status.hasScore {
		st = append(st, theme.Warning.Render(fmt.Sprintf("last quiz %d/%d", s.status.score.Score, s.status.score.Total)))
	}
	if len(st) > 0 {
		lines = append(lines, strings.Join(st, "   "), "")
	}
	lines = append(lines, s.menu.View(0))
	return components.Center(components.Card(strings.Join(lines, "\n"), cw), width, height)
}
