package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMenuSkipsDisabled(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Class 9", Disabled: true},
		{Label: "Matter", Action: pick("Matter")},
		{Label: "Class 10", Disabled: true},
		{Label: "Light", Action: pick("Light")},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(key("enter"))
	assert.Equal(t, "Light", chosen)

	m, _ = m.Update(key("up"))
	assert.Equal(t, 1, m.Selected)
}

func TestMenuViewWindow(t *testing.T) {
	var items []MenuItem
	for _, l := range []string{"a", "b", "c", "d", "e", "f"} {
		items = append(items, MenuItem{Label: l})
	}
	m := NewMenu(items)
	m.Selected = 5

	v := m.View(3)
	assert.Contains(t, v, "▸ f")
	assert.Contains(t, v, "d")
	assert.NotContains(t, v, "c")
}

func TestMenuSetItemsClampsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2
	m.SetItems([]MenuItem{{Label: "a"}})
	assert.Equal(t, 0, m.Selected)
}

func TestOptionIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{"D", 3, true},
		{"2", 1, true},
		{"e", 4, false},
		{"5", 4, false},
		{"enter", 0, false},
		{"?", 0, false},
	}
	for _, tt := range tests {
		got, ok := OptionIndex(tt.key, 4)
		require.Equal(t, tt.ok, ok, tt.key)
		if ok {
			assert.Equal(t, tt.want, got, tt.key)
		}
	}
}

func TestMultiChoiceMarksAnswer(t *testing.T) {
	mc := MultiChoice{
		Question:     "What is the pH of pure water?",
		Options:      []string{"5", "7", "9", "14"},
		CorrectIndex: 1,
		Selected:     2,
		Answered:     true,
	}
	v := mc.View()
	assert.Contains(t, v, "B)  7  ✓")
	assert.Contains(t, v, "C)  9  ✗")
}

func TestMatchesFilter(t *testing.T) {
	assert.True(t, MatchesFilter("", "Light"))
	assert.True(t, MatchesFilter("sci light", "10 Science Light: Reflection"))
	assert.False(t, MatchesFilter("maths light", "10 Science Light: Reflection"))
	assert.True(t, MatchesFilter("LGT refl", "10 Science Light: Reflection"), "subsequence match")
	assert.False(t, MatchesFilter("thgil", "Light"))
}

func TestBar(t *testing.T) {
	assert.Equal(t, 30, lipgloss.Width(Bar(0.5, 30, Percent(0.5))))
	assert.Equal(t, 20, lipgloss.Width(Bar(2, 20, "")))
	assert.Equal(t, minBarWidth+len(Steps(3, 5)), lipgloss.Width(Bar(0.6, 2, Steps(3, 5))))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "  100%", Percent(1.7))
	assert.Equal(t, "    0%", Percent(-1))
	assert.Equal(t, "   42%", Percent(0.42))
}
