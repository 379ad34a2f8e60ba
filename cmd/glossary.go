package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary <class> <subject> <chapter>",
	Short: "Print a chapter's key terms",
	Args:  chapterArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, setupOpts{content: true})
		if err != nil {
			return err
		}
		defer s.Close()

		ch, err := s.resolveChapter(args)
		if err != nil {
			return err
		}

		terms, err := s.orch.Glossary(cmd.Context(), ch)
		out := cmd.OutOrStdout()
		if len(terms) == 0 {
			fmt.Fprintln(out, "No glossary available for", ch.ChapterTitle)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "reason:", err)
			}
			return nil
		}

		width := outputWidth(out)
		fmt.Fprintf(out, "Glossary: %s\n\n", ch.ChapterTitle)
		for _, t := range terms {
			fmt.Fprintf(out, "%s\n%s\n", t.Term, wrapIndented(t.Definition, width, 4))
		}
		return nil
	},
}
