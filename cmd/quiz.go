package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/quiz"
	"github.com/abhisek/studyiz/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:     "quiz <class> <subject> <chapter>",
	Short:   "Print a chapter's quiz questions",
	Long:    "Prints the chapter quiz. Scores are only recorded when the quiz is taken in the TUI.",
	Example: "  studyiz quiz 10 science ch1 --answers",
	Args:    chapterArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		s, err := setup(cmd, setupOpts{content: true})
		if err != nil {
			return err
		}
		defer s.Close()

		ch, err := s.resolveChapter(args)
		if err != nil {
			return err
		}

		sess := quiz.NewSession(ch, s.orch, s.records, s.logger)
		sess.Start(cmd.Context())

		out := cmd.OutOrStdout()
		if sess.Phase() == quiz.PhaseNoQuestions {
			fmt.Fprintln(out, "No questions available for", ch.ChapterTitle)
			if err := sess.LoadErr(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "reason:", err)
			}
			return nil
		}

		width := outputWidth(out)
		fmt.Fprintf(out, "Quiz: %s (%d questions)\n", ch.ChapterTitle, sess.Total())
		for i, q := range sess.Questions() {
			fmt.Fprintf(out, "\n%d. %s\n", i+1, strings.TrimLeft(wrapIndented(q.Question, width, 3), " "))
			for j, opt := range q.Options {
				mark := " "
				if answers && j == q.CorrectAnswer {
					mark = "*"
				}
				fmt.Fprintf(out, "  %s %s) %s\n", mark, components.OptionLabel(j), opt)
			}
			if answers && q.Explanation != "" {
				fmt.Fprintln(out, wrapIndented(q.Explanation, width, 5))
			}
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().BoolP("answers", "a", false, "Mark correct answers and show explanations")
}
