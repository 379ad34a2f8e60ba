package glossary

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/curriculum"
)

var chapter = curriculum.ChapterInfo{
	Key:          curriculum.ChapterKey{ClassLevel: 10, SubjectID: "science", ChapterID: "ch1"},
	SubjectName:  "Science",
	ChapterTitle: "Chemical Reactions and Equations",
}

type fakeFetcher struct {
	terms []content.Term
	err   error
}

func (f fakeFetcher) Glossary(context.Context, curriculum.ChapterInfo) ([]content.Term, error) {
	return f.terms, f.err
}

func load(t *testing.T, f Fetcher) *GlossaryScreen {
	t.Helper()
	s := New(chapter, f, nil)
	msg := s.Init()()
	s.Update(msg)
	require.False(t, s.loading)
	return s
}

func TestListsTerms(t *testing.T) {
	s := load(t, fakeFetcher{terms: []content.Term{
		{Term: "Oxidation", Definition: "Gain of oxygen"},
		{Term: "Reduction", Definition: "Loss of oxygen"},
	}})
	v := s.View(100, 30)
	assert.Contains(t, v, "Oxidation")
	assert.Contains(t, v, "Reduction")
}

func TestFilter(t *testing.T) {
	s := load(t, fakeFetcher{terms: []content.Term{
		{Term: "Oxidation", Definition: "Gain of oxygen"},
		{Term: "Precipitate", Definition: "Insoluble solid formed in a reaction"},
	}})

	s.Update(tea.KeyPressMsg{Code: '/', Text: "/"})
	require.True(t, s.filter.Focused())
	for _, r := range "solid" {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	assert.False(t, s.filter.Focused())
	vis := s.Visible()
	require.Len(t, vis, 1)
	assert.Equal(t, "Precipitate", vis[0].Term)
}

func TestEmptyGlossary(t *testing.T) {
	s := load(t, fakeFetcher{terms: []content.Term{}, err: errors.New("offline")})
	assert.Contains(t, s.View(100, 30), "No glossary available")
}
