package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt statistics per level",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		stats, err := env.store.EventRepo().AttemptStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-36s  %8s  %6s  %5s\n", "Level", "Problem", "Attempts", "Solved", "Rate")
		fmt.Fprintln(out, strings.Repeat("─", 68))
		var attempts, passed int
		for _, st := range stats {
			title := ""
			if l, ok := env.catalog.Get(st.LevelID); ok {
				title = l.Title()
			}
			fmt.Fprintf(out, "%-5d  %-36s  %8d  %6d  %4d%%\n",
				st.LevelID, title, st.Attempts, st.Passed, rate(st.Passed, st.Attempts))
			attempts += st.Attempts
			passed += st.Passed
		}
		fmt.Fprintln(out, strings.Repeat("─", 68))
		fmt.Fprintf(out, "%-5s  %-36s  %8d  %6d  %4d%%\n", "TOTAL", "", attempts, passed, rate(passed, attempts))
		return nil
	},
}

func rate(passed, attempts int) int {
	if attempts == 0 {
		return 0
	}
	return passed * 100 / attempts
}
