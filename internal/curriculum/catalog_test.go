package curriculum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Classes)
	assert.NotEmpty(t, c.Chapters())
}

func TestChapterKeyString(t *testing.T) {
	k := ChapterKey{ClassLevel: 10, SubjectID: "science", ChapterID: "ch1"}
	assert.Equal(t, "10-science-ch1", k.String())
	assert.True(t, k.Valid())
	assert.False(t, ChapterKey{SubjectID: "science"}.Valid())
}

func TestResolve(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	info, err := c.Resolve(ChapterKey{ClassLevel: 10, SubjectID: "science", ChapterID: "ch1"})
	require.NoError(t, err)
	assert.Equal(t, "Science", info.SubjectName)
	assert.Equal(t, "Chemical Reactions and Equations", info.ChapterTitle)

	tests := []struct {
		name string
		key  ChapterKey
	}{
		{"unknown class", ChapterKey{ClassLevel: 3, SubjectID: "science", ChapterID: "ch1"}},
		{"unknown subject", ChapterKey{ClassLevel: 10, SubjectID: "history", ChapterID: "ch1"}},
		{"unknown chapter", ChapterKey{ClassLevel: 10, SubjectID: "science", ChapterID: "ch99"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Resolve(tt.key)
			assert.Error(t, err)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "classes: []"},
		{"bad level", "classes:\n  - level: 0\n"},
		{"missing subject name", "classes:\n  - level: 9\n    subjects:\n      - id: sci\n"},
		{"missing chapter title", "classes:\n  - level: 9\n    subjects:\n      - id: sci\n        name: Science\n        chapters:\n          - id: ch1\n"},
		{"duplicate chapter", "classes:\n  - level: 9\n    subjects:\n      - id: sci\n        name: Science\n        chapters:\n          - {id: ch1, title: A}\n          - {id: ch1, title: B}\n"},
		{"underscore in subject id", "classes:\n  - level: 10\n    subjects:\n      - id: earth_science\n        name: Earth Science\n        chapters:\n          - {id: rocks, title: Rocks}\n"},
		{"underscore in chapter id", "classes:\n  - level: 10\n    subjects:\n      - id: earth\n        name: Earth\n        chapters:\n          - {id: science_rocks, title: Rocks}\n"},
		{"dash in chapter id", "classes:\n  - level: 10\n    subjects:\n      - id: earth\n        name: Earth\n        chapters:\n          - {id: science-rocks, title: Rocks}\n"},
		{"uppercase id", "classes:\n  - level: 10\n    subjects:\n      - id: Earth\n        name: Earth\n        chapters:\n          - {id: ch1, title: Rocks}\n"},
		{"malformed", "classes: [::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curriculum.yaml")
	data := "classes:\n  - level: 6\n    subjects:\n      - id: sci\n        name: Science\n        chapters:\n          - {id: ch1, title: Food}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Chapters(), 1)
	assert.Equal(t, "Food", c.Chapters()[0].ChapterTitle)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
