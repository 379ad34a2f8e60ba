package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyiz/internal/ui/theme"
)

const minBarWidth = 4

// Bar renders fraction (clamped to [0, 1]) as a bar exactly width cells
// wide. A non-empty suffix is drawn after the bar inside that width.
func Bar(fraction float64, width int, suffix string) string {
	fraction = min(max(fraction, 0), 1)
	suffixWidth := lipgloss.Width(suffix)
	barWidth := max(width-suffixWidth, minBarWidth)

	filled := int(float64(barWidth)*fraction + 0.5)
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Subtitle.Render(suffix)
}

// Percent formats fraction as a right-aligned percentage suffix.
func Percent(fraction float64) string {
	return fmt.Sprintf("  %3d%%", int(min(max(fraction, 0), 1)*100+0.5))
}

// Steps formats "done/total" as a suffix, e.g. for quiz questions.
func Steps(done, total int) string {
	return fmt.Sprintf("  %d/%d", done, total)
}
