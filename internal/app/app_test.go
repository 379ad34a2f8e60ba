package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/content"
	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/curriculum"
	"github.com/abhisek/studyiz/internal/fetch"
	"github.com/abhisek/studyiz/internal/kv"
	"github.com/abhisek/studyiz/internal/router"
	"github.com/abhisek/studyiz/internal/screens/home"
	"github.com/abhisek/studyiz/internal/store"
	"github.com/abhisek/studyiz/internal/ui/layout"
)

func newModel(t *testing.T) AppModel {
	t.Helper()
	cat, err := curriculum.Default()
	require.NoError(t, err)
	return newAppModel(Options{
		Catalog:  cat,
		Fetcher:  fetch.New(content.NewMockProvider(), contentcache.New(kv.NewMemory()), nil),
		Progress: store.New(kv.NewMemory(), nil),
	})
}

func TestHeaderStatsFollowProgress(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(home.ProgressLoadedMsg{Stats: layout.HeaderStats{Completed: 2, Chapters: 9}})
	m = next.(AppModel)
	assert.Equal(t, 2, m.stats.Completed)

	next, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(AppModel)
	assert.Contains(t, m.render(), "2/9 chapters")
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)

	m.router.Push(home.New(mustCatalog(t), nil, store.New(kv.NewMemory(), nil), nil))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestTooSmall(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, next.(AppModel).render(), "Terminal too small")
}

func mustCatalog(t *testing.T) *curriculum.Catalog {
	t.Helper()
	cat, err := curriculum.Default()
	require.NoError(t, err)
	return cat
}
