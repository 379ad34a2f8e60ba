package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyiz",
	Short: "AI study companion for school chapters",
	Long: "Studyiz walks through a school chapter topic by topic with AI-written explanations,\n" +
		"then checks understanding with a short quiz. Progress is kept locally.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides STUDYIZ_DB and config)")
	pf.String("config", "", "Path to config file (default: studyiz.yaml in the config dir)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(glossaryCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(manCmd)
}
