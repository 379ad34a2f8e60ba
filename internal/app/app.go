// Package app wires the screens into the root Bubble Tea program.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screen"
	"github.com/abhisek/studyiz/internal/screens/chapter"
	"github.com/abhisek/studyiz/internal/screens/home"
	"github.com/abhisek/studyiz/internal/store"
	"github.com/abhisek/studyiz/internal/ui/layout"
)

// Options holds the services the screens depend on.
type Options struct {
	Catalog  *curriculum.Catalog
	Fetcher  chapter.Fetcher
	Progress store.ProgressStore
	Logger   *log.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	stats  layout.HeaderStats
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Catalog, opts.Fetcher, opts.Progress, opts.Logger)),
		stats:  home.Summarize(opts.Catalog, nil),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case home.ProgressLoadedMsg:
		m.stats = msg.Stats

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
