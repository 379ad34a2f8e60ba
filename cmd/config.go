package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the studyiz config file",
	Long: "Opens the config file in $EDITOR. If the file doesn't exist it is created\n" +
		"with the default settings first.",
	Example: "  studyiz config\n  studyiz config --config path/to/studyiz.yaml\n  studyiz config --path",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		onlyPath, _ := cmd.Flags().GetBool("path")

		file, _ := cmd.Flags().GetString("config")
		if file == "" {
			var err error
			if file, err = config.DefaultFile(); err != nil {
				return err
			}
		}
		created, err := config.EnsureFile(file)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if onlyPath {
			fmt.Fprintln(out, file)
			return nil
		}

		c, err := editor.Cmd("Studyiz", file)
		if err != nil {
			return fmt.Errorf("unable to open config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run editor: %w", err)
		}

		if created {
			fmt.Fprintln(out, "Wrote config file to:", file)
		}
		if _, err := config.Load(file); err != nil {
			return fmt.Errorf("config file is invalid: %w", err)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().Bool("path", false, "Create the file if needed and print its path instead of editing")
}
