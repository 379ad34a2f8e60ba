// Package curriculum loads the class/subject/chapter catalog and resolves
// chapter keys to display names.
package curriculum

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path returns the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// idPattern keeps subject and chapter IDs free of the "-" and "_"
// separators used by progress and cache keys.
var idPattern = regexp.MustCompile(`^[a-z0-9]+$`)

func (c *Catalog) validate() error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("curriculum has no classes")
	}
	seen := make(map[string]bool)
	for _, cl := range c.Classes {
		if cl.Level <= 0 {
			return fmt.Errorf("class level must be positive, got %d", cl.Level)
		}
		for _, s := range cl.Subjects {
			if s.ID == "" || s.Name == "" {
				return fmt.Errorf("class %d: subject missing id or name", cl.Level)
			}
			if !idPattern.MatchString(s.ID) {
				return fmt.Errorf("class %d: subject id %q must be lowercase letters and digits", cl.Level, s.ID)
			}
			for _, ch := range s.Chapters {
				if ch.ID == "" || ch.Title == "" {
					return fmt.Errorf("class %d/%s: chapter missing id or title", cl.Level, s.ID)
				}
				if !idPattern.MatchString(ch.ID) {
					return fmt.Errorf("class %d/%s: chapter id %q must be lowercase letters and digits", cl.Level, s.ID, ch.ID)
				}
				k := ChapterKey{ClassLevel: cl.Level, SubjectID: s.ID, ChapterID: ch.ID}.String()
				if seen[k] {
					return fmt.Errorf("duplicate chapter %s", k)
				}
				seen[k] = true
			}
		}
	}
	return nil
}

// Class returns the class with the given level.
func (c *Catalog) Class(level int) (Class, bool) {
	for _, cl := range c.Classes {
		if cl.Level == level {
			return cl, true
		}
	}
	return Class{}, false
}

// Resolve looks up the subject name and chapter title for key.
func (c *Catalog) Resolve(key ChapterKey) (ChapterInfo, error) {
	cl, ok := c.Class(key.ClassLevel)
	if !ok {
		return ChapterInfo{}, fmt.Errorf("unknown class %d", key.ClassLevel)
	}
	for _, s := range cl.Subjects {
		if s.ID != key.SubjectID {
			continue
		}
		for _, ch := range s.Chapters {
			if ch.ID == key.ChapterID {
				return ChapterInfo{Key: key, SubjectName: s.Name, ChapterTitle: ch.Title}, nil
			}
		}
		return ChapterInfo{}, fmt.Errorf("unknown chapter %q in class %d %s", key.ChapterID, key.ClassLevel, s.Name)
	}
	return ChapterInfo{}, fmt.Errorf("unknown subject %q in class %d", key.SubjectID, key.ClassLevel)
}

// Chapters returns every chapter in catalog order.
func (c *Catalog) Chapters() []ChapterInfo {
	var out []ChapterInfo
	for _, cl := range c.Classes {
		for _, s := range cl.Subjects {
			for _, ch := range s.Chapters {
				out = append(out, ChapterInfo{
					Key:          ChapterKey{ClassLevel: cl.Level, SubjectID: s.ID, ChapterID: ch.ID},
					SubjectName:  s.Name,
					ChapterTitle: ch.Title,
				})
			}
		}
	}
	return out
}
