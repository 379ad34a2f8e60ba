package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestHeaderStatsString(t *testing.T) {
	tests := []struct {
		name  string
		stats HeaderStats
		want  string
	}{
		{"no quizzes", HeaderStats{Completed: 2, Chapters: 10}, "✓ 2/10 chapters"},
		{"with quizzes", HeaderStats{Completed: 1, Chapters: 4, Quizzes: 2, QuizAverage: 0.7}, "✓ 1/4 chapters   ★ 70% avg"},
		{"rounds", HeaderStats{Chapters: 1, Quizzes: 1, QuizAverage: 2.0 / 3}, "✓ 0/1 chapters   ★ 67% avg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.String())
		})
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Learn", HeaderStats{Completed: 3, Chapters: 12}, 100)
	assert.Contains(t, h, "Studyiz")
	assert.Contains(t, h, "Learn")
	assert.Contains(t, h, "3/12 chapters")
	assert.Equal(t, 3, lipgloss.Height(h))
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "n", Description: "Next"}, {Key: "p", Description: "Previous"}}, 80)
	assert.Contains(t, f, "Next")
	assert.Contains(t, f, "Previous")
	assert.Equal(t, 3, lipgloss.Height(f))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(100, 23))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderHeader_NarrowDropsStats(t *testing.T) {
	h := RenderHeader("A rather long chapter title for the header", HeaderStats{Completed: 3, Chapters: 12}, 60)
	assert.Contains(t, h, "Studyiz")
	assert.NotContains(t, h, "chapters")
}

func TestRenderFooter_DropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
	f := RenderFooter(hints, 30)
	assert.Contains(t, f, "Select")
	assert.NotContains(t, f, "Back")
}
