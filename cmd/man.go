package cmd

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:                   "man",
	Short:                 "Generate the studyiz man page",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Hidden:                true,
	Args:                  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := mcobra.NewManPage(1, cmd.Root())
		if err != nil {
			return err
		}
		page = page.WithSection("Files",
			"Settings are read from studyiz.yaml in the user config directory.\n"+
				"Progress and cached content live in studyiz.db in the user data directory.")
		_, err = fmt.Fprint(cmd.OutOrStdout(), page.Build(roff.NewDocument()))
		return err
	},
}
