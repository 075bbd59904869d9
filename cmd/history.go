package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptlab/internal/history"
	"github.com/abhisek/promptlab/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		level, _ := cmd.Flags().GetInt("level")

		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		records, err := env.store.EventRepo().QueryAttempts(cmd.Context(), store.QueryOpts{Limit: limit, LevelID: level})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %-5s  %-2s  %-50s  %-5s  %-18s  %s\n",
			"Time", "Level", "OK", "Prompt", "Creat", "Style", "Mode")
		fmt.Fprintln(out, strings.Repeat("─", 118))
		for _, r := range records {
			ok := "✗"
			if r.Passed {
				ok = "✓"
			}
			entry := history.Entry{Style: r.Style, StyleWeight: r.StyleWeight}
			fmt.Fprintf(out, "%-16s  %-5d  %-2s  %-50s  %4d%%  %-18s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.LevelID,
				ok,
				history.TruncatePrompt(r.Prompt),
				r.Creativity,
				entry.StyleInfo(),
				r.Mode,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().IntP("level", "l", 0, "Only show attempts on this level")
}
