package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyiz/internal/ui/theme"
)

// MenuItem is one selectable row.
type MenuItem struct {
	Label    string
	Detail   string // dim annotation after the label
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor. Only the rows around the cursor
// are drawn when the list is taller than the view.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.firstEnabled()
	return m
}

func (m Menu) firstEnabled() int {
	for i, item := range m.Items {
		if !item.Disabled {
			return i
		}
	}
	return 0
}

// SetItems replaces the rows, keeping the cursor in range.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	if m.Selected >= len(items) || (m.Selected < len(items) && items[m.Selected].Disabled) {
		m.Selected = m.firstEnabled()
	}
}

// Update handles cursor keys and enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders at most height rows (all rows when height <= 0).
func (m Menu) View(height int) string {
	start, end := 0, len(m.Items)
	if height > 0 && len(m.Items) > height {
		start = m.Selected - height/2
		if start < 0 {
			start = 0
		}
		end = start + height
		if end > len(m.Items) {
			end = len(m.Items)
			start = end - height
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		item := m.Items[i]
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("  " + item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + item.Label)
		default:
			line = theme.Unselected.Render("    " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + theme.Subtitle.Render(item.Detail)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
