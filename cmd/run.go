package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/app"
)

// runApp builds the services and launches the TUI. Logs go to the log
// file while the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	s, err := setup(cmd, setupOpts{logToFile: true, content: true})
	if err != nil {
		return err
	}
	defer s.Close()

	if s.llmErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", s.llmErr)
		fmt.Fprintln(os.Stderr, "Chapters will show offline placeholders.")
	}

	return app.Run(app.Options{
		Catalog:  s.catalog,
		Fetcher:  s.orch,
		Progress: s.records,
		Logger:   s.logger,
	})
}
