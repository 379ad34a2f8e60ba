// Package home is the chapter picker shown at startup.
package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screen"
	"github.com/abhisek/studyiz/internal/screens/chapter"
	"github.com/abhisek/studyiz/internal/store"
	"github.com/abhisek/studyiz/internal/ui/components"
	"github.com/abhisek/studyiz/internal/ui/layout"
	"github.com/abhisek/studyiz/internal/ui/theme"
)

// ProgressLoadedMsg carries a fresh progress snapshot. The app also reads
// it to update the header.
type ProgressLoadedMsg struct {
	Progress *store.Progress
	Stats    layout.HeaderStats
}

// HomeScreen lists every chapter of the catalog grouped by class and
// subject.
type HomeScreen struct {
	catalog  *curriculum.Catalog
	fetcher  chapter.Fetcher
	progress store.ProgressStore
	logger   *log.Logger

	snapshot *store.Progress
	filter   components.FilterInput
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(catalog *curriculum.Catalog, fetcher chapter.Fetcher, progress store.ProgressStore, logger *log.Logger) *HomeScreen {
	if logger == nil {
		logger = log.Default()
	}
	h := &HomeScreen{
		catalog:  catalog,
		fetcher:  fetcher,
		progress: progress,
		logger:   logger,
		filter:   components.NewFilterInput("filter chapters", 40),
	}
	h.rebuild()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadProgress()
}

// Resume reloads progress so completion marks stay current.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadProgress()
}

func (h *HomeScreen) loadProgress() tea.Cmd {
	catalog, progress, logger := h.catalog, h.progress, h.logger
	return func() tea.Msg {
		p, err := progress.LoadProgress(context.Background())
		if err != nil {
			logger.Warn("load progress", "err", err)
		}
		return ProgressLoadedMsg{Progress: p, Stats: Summarize(catalog, p)}
	}
}

func (h *HomeScreen) Title() string {
	return "Chapters"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.filter.Focused() {
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Filter"},
		{Key: "q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressLoadedMsg:
		h.snapshot = msg.Progress
		h.rebuild()
		return h, nil

	case tea.KeyMsg:
		if h.filter.Focused() {
			switch msg.String() {
			case "enter":
				h.filter.Blur()
				return h, nil
			case "up", "down":
				// navigate while filtering
			default:
				var cmd tea.Cmd
				h.filter, cmd = h.filter.Update(msg)
				h.rebuild()
				return h, cmd
			}
		} else {
			switch msg.String() {
			case "/":
				return h, h.filter.Focus()
			case "q":
				return h, tea.Quit
			case "esc":
				if h.filter.Value() != "" {
					h.filter.Reset()
					h.rebuild()
				}
				return h, nil
			}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// rebuild regenerates the menu rows from the catalog, filter and progress.
func (h *HomeScreen) rebuild() {
	var items []components.MenuItem
	lastGroup := ""
	for _, ch := range h.catalog.Chapters() {
		label := fmt.Sprintf("Class %d %s %s", ch.Key.ClassLevel, ch.SubjectName, ch.ChapterTitle)
		if !h.filter.Matches(label) {
			continue
		}
		group := fmt.Sprintf("Class %d · %s", ch.Key.ClassLevel, ch.SubjectName)
		if group != lastGroup {
			items = append(items, components.MenuItem{Label: group, Disabled: true})
			lastGroup = group
		}
		items = append(items, components.MenuItem{
			Label:  ch.ChapterTitle,
			Detail: h.detail(ch.Key.String()),
			Action: func() tea.Cmd {
				return router.Push(chapter.New(ch, h.fetcher, h.progress, h.logger))
			},
		})
	}
	h.menu.SetItems(items)
}

func (h *HomeScreen) detail(key string) string {
	if h.snapshot == nil {
		return ""
	}
	var d string
	if h.snapshot.IsComplete(key) {
		d = "✓"
	}
	if res, ok := h.snapshot.QuizScores[key]; ok {
		if d != "" {
			d += " "
		}
		d += fmt.Sprintf("quiz %d/%d", res.Score, res.Total)
	}
	return d
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 90)
	rows := max(height-4, 1)

	list := h.menu.View(rows)
	if len(h.menu.Items) == 0 {
		list = theme.Hint.Render("No chapters match.")
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		h.filter.View(),
		"",
		lipgloss.NewStyle().Height(rows).Render(list),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(content))
}

// Summarize computes the header summary: chapters completed out of the
// catalog and the mean quiz percentage.
func Summarize(catalog *curriculum.Catalog, p *store.Progress) layout.HeaderStats {
	chapters := catalog.Chapters()
	stats := layout.HeaderStats{Chapters: len(chapters)}
	if p == nil {
		return stats
	}
	var sum float64
	for _, ch := range chapters {
		key := ch.Key.String()
		if p.IsComplete(key) {
			stats.Completed++
		}
		if res, ok := p.QuizScores[key]; ok {
			stats.Quizzes++
			sum += res.Percent() / 100
		}
	}
	if stats.Quizzes > 0 {
		stats.QuizAverage = sum / float64(stats.Quizzes)
	}
	return stats
}
