package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyiz/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM configuration and usage",
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved LLM provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg, err := llm.ResolveConfig()
		if err != nil {
			fmt.Fprintln(out, "No LLM provider configured:", err)
			fmt.Fprintln(out, "Set STUDYIZ_LLM_PROVIDER and its API key, or one of GEMINI_API_KEY,")
			fmt.Fprintln(out, "OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY.")
			return nil
		}
		fmt.Fprintf(out, "Provider:  %s\n", cfg.Provider)
		fmt.Fprintf(out, "Model:     %s\n", cfg.ActiveModel())
		fmt.Fprintf(out, "API key:   %s\n", maskKey(apiKey(cfg)))
		fmt.Fprintf(out, "Timeout:   %s\n", cfg.Timeout)
		fmt.Fprintf(out, "Retries:   %d (backoff %s to %s)\n", cfg.Retry.MaxAttempts, cfg.Retry.InitialWait, cfg.Retry.MaxWait)
		if c := llm.LookupCost(cfg.ActiveModel()); c != nil {
			fmt.Fprintf(out, "Pricing:   $%.2f in / $%.2f out per 1M tokens\n", c.InputPerMTok, c.OutputPerMTok)
		}
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show aggregated LLM token usage and estimated cost",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := setup(cmd, setupOpts{})
		if err != nil {
			return err
		}
		defer s.Close()

		u, err := s.records.Usage(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(u.Purposes) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		if u.Provider != "" {
			fmt.Fprintf(out, "Last provider: %s (%s)\n\n", u.Provider, u.Model)
		}
		fmt.Fprintln(out, "Usage by Purpose")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-14s  %6s  %6s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		var calls, in, outTok int
		for _, name := range u.PurposeNames() {
			pu := u.Purposes[name]
			avg := int64(0)
			if pu.Requests > 0 {
				avg = pu.LatencyMs / int64(pu.Requests)
			}
			fmt.Fprintf(out, "%-14s  %6d  %6d  %10d  %10d  %8d\n",
				name, pu.Requests, pu.Failures, pu.InputTokens, pu.OutputTokens, avg)
			calls += pu.Requests
			in += pu.InputTokens
			outTok += pu.OutputTokens
		}
		fmt.Fprintln(out, strings.Repeat("─", 72))
		fmt.Fprintf(out, "%-14s  %6d  %6s  %10d  %10d\n", "TOTAL", calls, "", in, outTok)

		if c := llm.LookupCost(u.Model); c != nil {
			fmt.Fprintf(out, "\nEstimated cost (%s): %s\n", u.Model, formatCost(c.Cost(in, outTok)))
		} else if u.Model != "" {
			fmt.Fprintf(out, "\nPricing unavailable for: %s\n", u.Model)
		}
		return nil
	},
}

func apiKey(cfg llm.Config) string {
	switch cfg.Provider {
	case "anthropic":
		return cfg.Anthropic.APIKey
	case "openai":
		return cfg.OpenAI.APIKey
	case "gemini":
		return cfg.Gemini.APIKey
	case "openrouter":
		return cfg.OpenRouter.APIKey
	}
	return ""
}

func maskKey(k string) string {
	if k == "" {
		return "(none)"
	}
	if len(k) <= 8 {
		return strings.Repeat("*", len(k))
	}
	return k[:4] + strings.Repeat("*", 8) + k[len(k)-4:]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmConfigCmd)
	llmCmd.AddCommand(llmUsageCmd)
}
