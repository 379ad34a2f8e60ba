package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/curriculum"
)

// chapterArgs accepts either "<class> <subject> <chapter>" or a single
// progress key "<class>-<subject>-<chapter>".
var chapterArgs = cobra.MatchAll(cobra.RangeArgs(1, 3), func(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return fmt.Errorf("expected <class> <subject> <chapter> or <class>-<subject>-<chapter>")
	}
	return nil
})

func parseChapterKey(args []string) (curriculum.ChapterKey, error) {
	if len(args) == 1 {
		args = strings.SplitN(args[0], "-", 3)
	}
	if len(args) != 3 {
		return curriculum.ChapterKey{}, fmt.Errorf("chapter must be <class> <subject> <chapter>")
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return curriculum.ChapterKey{}, fmt.Errorf("invalid class %q: %w", args[0], err)
	}
	return curriculum.ChapterKey{
		ClassLevel: level,
		SubjectID:  strings.ToLower(args[1]),
		ChapterID:  strings.ToLower(args[2]),
	}, nil
}

// resolveChapter parses args and looks the chapter up in the catalog.
func (s *services) resolveChapter(args []string) (curriculum.ChapterInfo, error) {
	key, err := parseChapterKey(args)
	if err != nil {
		return curriculum.ChapterInfo{}, err
	}
	return s.catalog.Resolve(key)
}
