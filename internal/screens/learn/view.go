package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/studyiz/internal/learn"
	"github.com/abhisek/studyiz/internal/ui/components"
	"github.com/abhisek/studyiz/internal/ui/layout"
	"github.com/abhisek/studyiz/internal/ui/theme"
)

// Rows used by the topic line, progress bar, separators and sources line.
const chromeHeight = 5

func (s *LearnScreen) View(width, height int) string {
	if s.session.Phase() == sess.PhaseInitializingSyllabus {
		ch := s.session.Chapter()
		return components.Notice("Preparing "+ch.ChapterTitle,
			fmt.Sprintf("Class %d · %s", ch.Key.ClassLevel, ch.SubjectName), width, height)
	}

	cw := components.ContentWidth(width, layout.ReadingWidth)
	s.bodyHeight = max(height-chromeHeight, 1)

	var body string
	if s.session.LoadingContent() {
		body = components.Center(theme.Hint.Render("Loading "+s.session.Topic()+"…"), cw, s.bodyHeight)
	} else {
		if s.render(cw) {
			s.offset = 0
		}
		s.scrollTo(s.offset)
		end := min(s.offset+s.bodyHeight, len(s.lines))
		body = lipgloss.NewStyle().Height(s.bodyHeight).Render(strings.Join(s.lines[s.offset:end], "\n"))
	}

	sections := []string{
		s.renderTopicLine(cw),
		theme.Subtitle.Render("read  ")+components.Bar(s.session.ReadProgress()/100, cw-6, components.Percent(s.session.ReadProgress()/100)),
		body,
		s.renderStatusLine(cw),
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (s *LearnScreen) renderTopicLine(cw int) string {
	topics := s.session.Topics()
	pos := theme.Subtitle.Render(fmt.Sprintf("Topic %d/%d", s.session.Index()+1, len(topics)))
	title := theme.Title.Render(s.session.Topic())
	line := pos + "  " + title
	if s.session.Completed() {
		line += "  " + theme.Done.Render("✓ chapter complete")
	}
	return lipgloss.NewStyle().MaxWidth(cw).Render(line)
}

func (s *LearnScreen) renderStatusLine(cw int) string {
	var parts []string
	if s.notice != "" {
		parts = append(parts, theme.Done.Render(s.notice))
	}
	if s.saveErr != nil {
		parts = append(parts, theme.Incorrect.Render("progress not saved"))
	}
	if err := s.session.ContentErr(); err != nil && !s.session.LoadingContent() {
		parts = append(parts, theme.Warning.Render("offline content"))
	}
	if src := s.session.Sources(); len(src) > 0 && !s.session.LoadingContent() {
		names := make([]string, 0, len(src))
		for _, x := range src {
			if x.Title != "" {
				names = append(names, x.Title)
			} else {
				names = append(names, x.URI)
			}
		}
		parts = append(parts, theme.Hint.Render("Sources: "+strings.Join(names, ", ")))
	}
	return lipgloss.NewStyle().MaxWidth(cw).Render(strings.Join(parts, "  "))
}
