package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the chapters in the curriculum",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		class, _ := cmd.Flags().GetInt("class")

		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.records.LoadProgress(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		group := ""
		for _, ch := range s.catalog.Chapters() {
			if class != 0 && ch.Key.ClassLevel != class {
				continue
			}
			if g := fmt.Sprintf("Class %d · %s", ch.Key.ClassLevel, ch.SubjectName); g != group {
				if group != "" {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, g)
				group = g
			}
			mark := " "
			if p != nil && p.IsComplete(ch.Key.String()) {
				mark = "✓"
			}
			fmt.Fprintf(out, "  %s %-22s %s\n", mark, ch.Key, ch.ChapterTitle)
		}
		return nil
	},
}

func init() {
	chaptersCmd.Flags().Int("class", 0, "Only list chapters of this class level")
}
