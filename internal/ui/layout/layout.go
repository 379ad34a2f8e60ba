package layout

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/studyiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// ReadingWidth caps the width of rendered explanations.
	ReadingWidth = 100
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// HeaderStats is the learner summary shown on the right of the header.
type HeaderStats struct {
	Completed   int
	Chapters    int
	Quizzes     int
	QuizAverage float64 // 0..1, meaningful when Quizzes > 0
}

func (s HeaderStats) String() string {
	out := fmt.Sprintf("✓ %d/%d chapters", s.Completed, s.Chapters)
	if s.Quizzes > 0 {
		out += fmt.Sprintf("   ★ %d%% avg", int(s.QuizAverage*100+0.5))
	}
	return out
}

var (
	barStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)

	brandStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	statsStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	keyStyle   = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle  = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// RenderHeader renders the top bar: brand on the left, the screen title
// centred and learner stats on the right. The stats are dropped first
// when the bar is too narrow.
func RenderHeader(title string, stats HeaderStats, width int) string {
	inner := max(width-barStyle.GetHorizontalFrameSize(), 0)

	brand := brandStyle.Render("Studyiz")
	right := statsStyle.Render(stats.String())
	if lipgloss.Width(brand)+lipgloss.Width(title)+lipgloss.Width(right)+4 > inner {
		right = ""
	}

	line := lipgloss.PlaceHorizontal(inner, lipgloss.Center, theme.Body.Render(title))
	line = overlay(line, brand, 0)
	if right != "" {
		line = overlay(line, right, inner-lipgloss.Width(right))
	}
	return barStyle.Width(width).Render(line)
}

// overlay writes s over the plain-space padding of line at column col.
func overlay(line, s string, col int) string {
	w := lipgloss.Width(s)
	left := ansi.Truncate(line, col, "")
	right := ansi.TruncateLeft(line, col+w, "")
	return left + s + right
}

// RenderFooter renders key hints separated by dots. Hints that do not fit
// are dropped from the end.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-barStyle.GetHorizontalFrameSize(), 0)
	sep := descStyle.Render(" · ")

	var line string
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if i > 0 {
			part = sep + part
		}
		if lipgloss.Width(line)+lipgloss.Width(part) > inner {
			break
		}
		line += part
	}
	return barStyle.Width(width).Render(line)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
