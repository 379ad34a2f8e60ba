package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/learn"
)

var learnCmd = &cobra.Command{
	Use:   "learn <class> <subject> <chapter>",
	Short: "Print a chapter's topics and one topic's explanation",
	Long: "Runs the learning session without the TUI: prints the topic list and the\n" +
		"explanation of --topic (1-based). Reaching the last topic marks the chapter complete.",
	Example: "  studyiz learn 10 science ch1 --topic 2\n  studyiz learn 10-science-ch1",
	Args:    chapterArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetInt("topic")
		raw, _ := cmd.Flags().GetBool("raw")
		width, _ := cmd.Flags().GetInt("width")

		s, err := setup(cmd, setupOpts{content: true})
		if err != nil {
			return err
		}
		defer s.Close()

		ch, err := s.resolveChapter(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		sess := learn.NewSession(ch, s.orch, s.records, s.logger)
		if err := sess.Load(ctx); err != nil {
			return err
		}
		if topic > 1 {
			if err := sess.Goto(ctx, topic-1); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (Class %d · %s)\n\n", ch.ChapterTitle, ch.Key.ClassLevel, ch.SubjectName)
		for i, t := range sess.Topics() {
			marker := "  "
			if i == sess.Index() {
				marker = "▸ "
			}
			fmt.Fprintf(out, "%s%2d. %s\n", marker, i+1, t)
		}
		fmt.Fprintln(out)

		body := sess.Content()
		if !raw {
			style := glamour.WithAutoStyle()
			if !isTerminal(out) {
				style = glamour.WithStandardStyle("notty")
			}
			if !cmd.Flags().Changed("width") {
				width = outputWidth(out)
			}
			r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
			if err != nil {
				return fmt.Errorf("create markdown renderer: %w", err)
			}
			if body, err = r.Render(body); err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
		}
		fmt.Fprintln(out, body)

		for _, src := range sess.Sources() {
			fmt.Fprintf(out, "  source: %s <%s>\n", src.Title, src.URI)
		}
		if err := sess.ContentErr(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: showing offline content:", err)
		}
		if sess.Completed() {
			fmt.Fprintf(out, "\n✓ %s marked complete\n", ch.Key)
		}
		return nil
	},
}

func init() {
	learnCmd.Flags().IntP("topic", "t", 1, "Topic number to show (1-based)")
	learnCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	learnCmd.Flags().Int("width", defaultWidth, "Wrap rendered text at this width (default: terminal width)")
}
