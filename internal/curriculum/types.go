package curriculum

import "fmt"

// ChapterKey identifies one chapter of the curriculum. It is a comparable
// value type; construct it once and pass it by value.
type ChapterKey struct {
	ClassLevel int
	SubjectID  string
	ChapterID  string
}

// String returns the progress key for the chapter, e.g. "10-science-ch1".
func (k ChapterKey) String() string {
	return fmt.Sprintf("%d-%s-%s", k.ClassLevel, k.SubjectID, k.ChapterID)
}

// Valid reports whether every component of the key is set.
func (k ChapterKey) Valid() bool {
	return k.ClassLevel > 0 && k.SubjectID != "" && k.ChapterID != ""
}

// Catalog is the full curriculum: class levels, their subjects and chapters.
type Catalog struct {
	Classes []Class `yaml:"classes"`
}

// Class is one class level (grade).
type Class struct {
	Level    int       `yaml:"level"`
	Subjects []Subject `yaml:"subjects"`
}

// Subject is a subject taught at a class level.
type Subject struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Chapters []Chapter `yaml:"chapters"`
}

// Chapter is a single unit of study within a subject.
type Chapter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// ChapterInfo is a resolved chapter with the human-readable names the
// content provider needs.
type ChapterInfo struct {
	Key          ChapterKey
	SubjectName  string
	ChapterTitle string
}
