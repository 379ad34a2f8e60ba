package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyiz/internal/ui/theme"
)

// ContentWidth returns the inner width for screen panels: the frame width
// minus margins, clamped to [20, limit].
func ContentWidth(frameWidth, limit int) int {
	w := frameWidth - 6
	if w > limit {
		w = limit
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded border at content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Notice renders a centered single message, used for loading and empty
// states.
func Notice(title, body string, width, height int) string {
	s := theme.Title.Render(title)
	if body != "" {
		s += "\n\n" + theme.Subtitle.Render(body)
	}
	return Center(s, width, height)
}
