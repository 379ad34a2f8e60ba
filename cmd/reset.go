package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase learner progress",
	Long:  "Deletes completed chapters and quiz scores. Pass --cache to also drop cached content.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		withCache, _ := cmd.Flags().GetBool("cache")
		if !yes {
			return fmt.Errorf("refusing to erase progress without --yes")
		}

		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		if err := s.records.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress erased.")

		if withCache {
			if err := s.cache.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Content cache cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm erasing progress")
	resetCmd.Flags().Bool("cache", false, "Also clear the content cache")
}
