package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/contentcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the content cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content cache size and entries by kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		st := s.cache.Stats(ctx)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Entries:   %d\n", st.Entries)
		fmt.Fprintf(out, "Size:      %s of %s (%.0f%%)\n",
			humanize.IBytes(uint64(st.Bytes)), humanize.IBytes(uint64(st.MaxBytes)),
			float64(st.Bytes)/float64(st.MaxBytes)*100)

		byKind := map[contentcache.Kind]int{}
		for _, k := range s.cache.Keys(ctx) {
			byKind[contentcache.KindOf(k)]++
		}
		for _, kind := range []contentcache.Kind{
			contentcache.KindSyllabus, contentcache.KindContent, contentcache.KindQuiz, contentcache.KindGlossary,
		} {
			fmt.Fprintf(out, "  %-10s %d\n", kind, byKind[kind])
		}
		return nil
	},
}

var cacheKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List cached entry keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		for _, k := range s.cache.Keys(cmd.Context()) {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.cache.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Content cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheKeysCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
