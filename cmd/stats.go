package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/screens/home"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learning and usage summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		p, err := s.records.LoadProgress(ctx)
		if err != nil {
			return err
		}
		sum := home.Summarize(s.catalog, p)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Chapters completed:  %d of %d\n", sum.Completed, sum.Chapters)
		if sum.Quizzes > 0 {
			fmt.Fprintf(out, "Quizzes taken:       %d (average %.0f%%)\n", sum.Quizzes, sum.QuizAverage*100)
		} else {
			fmt.Fprintln(out, "Quizzes taken:       0")
		}

		cs := s.cache.Stats(ctx)
		fmt.Fprintf(out, "Cached artifacts:    %d (%s)\n", cs.Entries, humanize.IBytes(uint64(cs.Bytes)))

		u, err := s.records.Usage(ctx)
		if err != nil {
			return err
		}
		var reqs, tokens int
		for _, pu := range u.Purposes {
			reqs += pu.Requests
			tokens += pu.InputTokens + pu.OutputTokens
		}
		fmt.Fprintf(out, "LLM requests:        %s (%s tokens)\n", humanize.Comma(int64(reqs)), humanize.Comma(int64(tokens)))
		if cfg := s.cfg.File; cfg != "" {
			fmt.Fprintf(out, "Config:              %s\n", cfg)
		}
		return nil
	},
}
