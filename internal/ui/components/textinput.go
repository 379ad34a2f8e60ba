package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"
)

// FilterInput wraps bubbles/textinput as a case-insensitive list filter.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates a blurred filter input.
func NewFilterInput(placeholder string, maxLen int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return FilterInput{Model: ti}
}

// Focus starts capturing keys.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops capturing keys and keeps the current text.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether keys go to the input.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Reset clears the text.
func (f *FilterInput) Reset() {
	f.Model.SetValue("")
}

// Update forwards msg to the text input.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Value returns the trimmed filter text.
func (f FilterInput) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// Matches reports whether every word of the filter fuzzy-matches text.
func (f FilterInput) Matches(text string) bool {
	return MatchesFilter(f.Value(), text)
}

// MatchesFilter reports whether every whitespace-separated word of filter
// fuzzy-matches text. Matching ignores case.
func MatchesFilter(filter, text string) bool {
	target := []string{text}
	for _, w := range strings.Fields(filter) {
		if len(fuzzy.Find(w, target)) == 0 {
			return false
		}
	}
	return true
}
