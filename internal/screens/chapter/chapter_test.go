package chapter

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/fetch"
	"github.com/abhisek/studyiz/internal/kv"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screens/glossary"
	learnscreen "github.com/abhisek/studyiz/internal/screens/learn"
	quizscreen "github.com/abhisek/studyiz/internal/screens/quiz"
	"github.com/abhisek/studyiz/internal/store"
)

var info = curriculum.ChapterInfo{
	Key:          curriculum.ChapterKey{ClassLevel: 10, SubjectID: "science", ChapterID: "ch1"},
	SubjectName:  "Science",
	ChapterTitle: "Chemical Reactions and Equations",
}

func newChapter(t *testing.T) (*ChapterScreen, *store.Records) {
	t.Helper()
	records := store.New(kv.NewMemory(), nil)
	orch := fetch.New(content.NewMockProvider(), contentcache.New(kv.NewMemory()), nil)
	return New(info, orch, records, nil), records
}

func TestMenuOpensActivities(t *testing.T) {
	s, _ := newChapter(t)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push := cmd().(router.PushScreenMsg)
	assert.IsType(t, &learnscreen.LearnScreen{}, push.Screen)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push = cmd().(router.PushScreenMsg)
	assert.IsType(t, &quizscreen.QuizScreen{}, push.Screen)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push = cmd().(router.PushScreenMsg)
	assert.IsType(t, &glossary.GlossaryScreen{}, push.Screen)
}

func TestResumeShowsStatus(t *testing.T) {
	s, records := newChapter(t)
	ctx := context.Background()
	require.NoError(t, records.MarkChapterComplete(ctx, info.Key.String()))
	require.NoError(t, records.SaveQuizScore(ctx, info.Key.String(), store.QuizResult{Score: 3, Total: 5, Date: time.Now()}))

	s.Update(s.Resume()())

	v := s.View(100, 30)
	assert.Contains(t, v, "completed")
	assert.Contains(t, v, "last quiz 3/5")
}
