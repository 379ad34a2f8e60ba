package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyiz/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns the command to run when the screen opens.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them closes.
type Resumer interface {
	Resume() tea.Cmd
}
