package contentcache

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/studyiz/internal/curriculum"
)

// Kind is the artifact family of a cache entry.
type Kind string

const (
	KindSyllabus Kind = "syllabus"
	KindContent  Kind = "content"
	KindQuiz     Kind = "quiz"
	KindGlossary Kind = "glossary"
)

// Key is the composite cache key for one artifact.
type Key struct {
	Kind       Kind
	Chapter    curriculum.ChapterKey
	TopicIndex int // only meaningful for KindContent
}

// SyllabusKey returns the key for a chapter's topic list.
func SyllabusKey(ch curriculum.ChapterKey) Key {
	return Key{Kind: KindSyllabus, Chapter: ch}
}

// ContentKey returns the key for the explanation of topic index.
func ContentKey(ch curriculum.ChapterKey, index int) Key {
	return Key{Kind: KindContent, Chapter: ch, TopicIndex: index}
}

// QuizKey returns the key for a chapter's quiz questions.
func QuizKey(ch curriculum.ChapterKey) Key {
	return Key{Kind: KindQuiz, Chapter: ch}
}

// GlossaryKey returns the key for a chapter's glossary.
func GlossaryKey(ch curriculum.ChapterKey) Key {
	return Key{Kind: KindGlossary, Chapter: ch}
}

// String renders the deterministic container key, e.g.
// "content_10_science_ch1_2" or "quiz_10_science_ch1".
func (k Key) String() string {
	base := fmt.Sprintf("%s_%d_%s_%s", k.Kind, k.Chapter.ClassLevel, k.Chapter.SubjectID, k.Chapter.ChapterID)
	if k.Kind == KindContent {
		return base + "_" + strconv.Itoa(k.TopicIndex)
	}
	return base
}

// KindOf returns the kind prefix of a rendered key.
func KindOf(key string) Kind {
	kind, _, _ := strings.Cut(key, "_")
	return Kind(kind)
}
