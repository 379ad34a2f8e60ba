package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyiz/internal/ui/theme"
)

// MultiChoice renders one question with lettered options. It only draws;
// selection and scoring belong to the quiz session.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int // -1 for none
	Answered     bool
	Width        int
}

// OptionLabel returns the letter shown for option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// OptionIndex maps a pressed key ("a".."d" or "1".."4") to an option index.
func OptionIndex(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	var i int
	switch {
	case c >= 'a' && c <= 'z':
		i = int(c - 'a')
	case c >= 'A' && c <= 'Z':
		i = int(c - 'A')
	case c >= '1' && c <= '9':
		i = int(c - '1')
	default:
		return 0, false
	}
	return i, i < n
}

// View renders the question and options.
func (m MultiChoice) View() string {
	q := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if m.Width > 0 {
		q = q.Width(m.Width)
	}

	var b strings.Builder
	b.WriteString(q.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Answered {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case m.Answered && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Answered && i == m.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case m.Answered:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}
	return b.String()
}
