package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	resumes int
	msgs    []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type resumingScreen struct {
	stubScreen
}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumes++
	return nil
}

func TestPushRunsInit(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	learn := &stubScreen{title: "learn"}

	r.Push(learn)

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "learn", r.Active().Title())
	assert.Equal(t, 1, learn.inits)
}

func TestPopNoopAtRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.Active().Title())
}

func TestPopResumesRevealedScreen(t *testing.T) {
	home := &resumingScreen{stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "quiz"})

	r.Update(PopScreenMsg{})

	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, home.resumes)
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "learn"})

	quiz := &stubScreen{title: "quiz"}
	r.Update(ReplaceScreenMsg{Screen: quiz})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "quiz", r.Active().Title())
	assert.Equal(t, 1, quiz.inits)
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	learn := &stubScreen{title: "learn"}
	r.Push(learn)

	r.Update("tick")

	require.Len(t, learn.msgs, 1)
	assert.Empty(t, home.msgs)
	assert.Equal(t, "learn", r.View(80, 24))
}

func TestPushCommand(t *testing.T) {
	s := &stubScreen{title: "glossary"}
	msg := Push(s)()
	assert.Equal(t, PushScreenMsg{Screen: s}, msg)
	assert.Equal(t, PopScreenMsg{}, Pop())
}
