package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/fetch"
	"github.com/abhisek/studyiz/internal/kv"
	"github.com/abhisek/studyiz/internal/store"
)

var chapter = curriculum.ChapterInfo{
	Key:          curriculum.ChapterKey{ClassLevel: 10, SubjectID: "science", ChapterID: "ch1"},
	SubjectName:  "Science",
	ChapterTitle: "Chemical Reactions and Equations",
}

func questions(n int) []content.Question {
	qs := make([]content.Question, n)
	for i := range qs {
		qs[i] = content.Question{
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % 4,
			Explanation:   "because",
		}
	}
	return qs
}

func newTestSession(t *testing.T, qs []content.Question) (*Session, *content.MockProvider, *store.Records) {
	t.Helper()
	mock := content.NewMockProvider()
	mock.Questions = qs
	orch := fetch.New(mock, contentcache.New(kv.NewMemory()), nil)
	records := store.New(kv.NewMemory(), nil)
	s := NewSession(chapter, orch, records, nil)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s, mock, records
}

func TestQuizFlow_AllCorrect(t *testing.T) {
	ctx := context.Background()
	s, _, records := newTestSession(t, questions(5))

	assert.Equal(t, PhaseLoading, s.Phase())
	s.Start(ctx)
	require.Equal(t, PhaseInProgress, s.Phase())
	require.Equal(t, 5, s.Total())

	for i := 0; i < 5; i++ {
		q, ok := s.Current()
		require.True(t, ok)
		require.True(t, s.SelectOption(q.CorrectAnswer))
		require.True(t, s.SubmitAnswer())
		assert.True(t, s.Correct())
		assert.Equal(t, i+1, s.Score())
		if i < 4 {
			require.NoError(t, s.AdvanceAndCommit(ctx))
		}
	}
	assert.Equal(t, 5, s.Score(), "running score reaches 5 before the final advance")

	require.NoError(t, s.AdvanceAndCommit(ctx))
	assert.Equal(t, PhaseCompleted, s.Phase())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 5, res.Score, "last answer is not counted twice")
	assert.Equal(t, 5, res.Total)

	saved, ok, err := records.QuizScore(ctx, chapter.Key.String())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, saved.Score)
	assert.Equal(t, 5, saved.Total)
	assert.True(t, saved.Date.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func TestQuizFlow_MixedAnswers(t *testing.T) {
	ctx := context.Background()
	s, _, records := newTestSession(t, questions(3))
	s.Start(ctx)

	for i := 0; i < 3; i++ {
		q, _ := s.Current()
		choice := q.CorrectAnswer
		if i == 1 {
			choice = (q.CorrectAnswer + 1) % 4
		}
		s.SelectOption(choice)
		s.SubmitAnswer()
		require.NoError(t, s.AdvanceAndCommit(ctx))
	}

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, store.QuizResult{Score: 2, Total: 3, Date: res.Date}, res)

	saved, _, err := records.QuizScore(ctx, chapter.Key.String())
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Score)
}

func TestSelectOption_OnlyWhileUnanswered(t *testing.T) {
	s, _, _ := newTestSession(t, questions(2))
	s.Start(context.Background())

	assert.False(t, s.SelectOption(4), "out of range")
	assert.False(t, s.SelectOption(-1))
	assert.Equal(t, NoSelection, s.Selected())

	require.True(t, s.SelectOption(1))
	require.True(t, s.SelectOption(2), "can change mind before submitting")
	require.True(t, s.SubmitAnswer())

	assert.False(t, s.SelectOption(0))
	assert.Equal(t, 2, s.Selected())
	assert.False(t, s.SubmitAnswer(), "second submit is a no-op")
}

func TestSubmitAnswer_NoSelectionIsNoop(t *testing.T) {
	s, _, _ := newTestSession(t, questions(1))
	s.Start(context.Background())

	assert.False(t, s.SubmitAnswer())
	assert.False(t, s.Answered())
	assert.Zero(t, s.Score())
}

func TestAdvance_RequiresAnswer(t *testing.T) {
	s, _, _ := newTestSession(t, questions(2))
	s.Start(context.Background())

	_, done := s.Advance()
	assert.False(t, done)
	assert.Equal(t, 0, s.Index())

	s.SelectOption(0)
	s.SubmitAnswer()
	_, done = s.Advance()
	assert.False(t, done)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, NoSelection, s.Selected())
	assert.False(t, s.Answered())
}

func TestNoQuestions(t *testing.T) {
	ctx := context.Background()
	s, mock, _ := newTestSession(t, nil)
	mock.QuizErr = errors.New("offline")

	s.Start(ctx)
	assert.Equal(t, PhaseNoQuestions, s.Phase())
	assert.ErrorIs(t, s.LoadErr(), fetch.ErrProviderFailure)
	assert.False(t, s.SelectOption(0))
	_, ok := s.Result()
	assert.False(t, ok)

	// Retry is the only way forward.
	mock.QuizErr = nil
	mock.Questions = questions(2)
	s.Retry()
	assert.Equal(t, PhaseLoading, s.Phase())
	s.Start(ctx)
	assert.Equal(t, PhaseInProgress, s.Phase())
}

func TestRetry_ReusesCachedQuestions(t *testing.T) {
	ctx := context.Background()
	s, mock, _ := newTestSession(t, questions(2))
	s.Start(ctx)
	s.SelectOption(0)
	s.SubmitAnswer()
	require.NoError(t, s.AdvanceAndCommit(ctx))

	id := s.ID()
	s.Retry()
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.Equal(t, id, s.ID())
	assert.Equal(t, 2, s.Attempt())
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Index())
	assert.Equal(t, NoSelection, s.Selected())

	s.Start(ctx)
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, 1, mock.Calls("quiz"), "second attempt is served from the cache")
}

func TestApplyQuestions_StaleAttemptIgnored(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSession(t, questions(2))
	stale := s.Load(ctx)
	s.Retry()

	s.ApplyQuestions(stale)
	assert.Equal(t, PhaseLoading, s.Phase())

	s.ApplyQuestions(s.Load(ctx))
	assert.Equal(t, PhaseInProgress, s.Phase())
}

func TestRetake_OverwritesScore(t *testing.T) {
	ctx := context.Background()
	s, _, records := newTestSession(t, questions(1))

	s.Start(ctx)
	s.SelectOption(1) // wrong: correct is 0
	s.SubmitAnswer()
	require.NoError(t, s.AdvanceAndCommit(ctx))

	s.Retry()
	s.Start(ctx)
	s.SelectOption(0)
	s.SubmitAnswer()
	require.NoError(t, s.AdvanceAndCommit(ctx))

	saved, _, err := records.QuizScore(ctx, chapter.Key.String())
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Score)
}
