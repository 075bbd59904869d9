package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List and inspect levels",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels with their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, env.tracker.Summary())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-3s  %-12s  %-10s  %-7s  %s\n", "ID", "Difficulty", "Status", "Sliders", "Problem")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, l := range env.catalog.All() {
			status := env.tracker.Status(l.ID)
			sliders := ""
			if l.UnlockParameters {
				sliders = "yes"
			}
			fmt.Fprintf(out, "%-3d  %-12s  %s %-8s  %-7s  %s\n",
				l.ID, l.Difficulty, status.Icon(), status, sliders, l.Title())
		}
		return nil
	},
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one level in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level %q: %w", args[0], err)
		}

		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		l, ok := env.catalog.Get(id)
		if !ok {
			return fmt.Errorf("level %d not found", id)
		}

		out := cmd.OutOrStdout()
		status := env.tracker.Status(id)
		fmt.Fprintf(out, "Level %d  %s %s\n", l.ID, status.Icon(), status)
		fmt.Fprintf(out, "Problem:     %s\n", l.Problem)
		fmt.Fprintf(out, "Focus:       %s\n", l.EducationalFocus)
		fmt.Fprintf(out, "Difficulty:  %s\n", l.Difficulty)
		if c, ok := env.tracker.Completion(id); ok {
			fmt.Fprintf(out, "Solved:      %s after %d attempt(s)\n",
				c.CompletedAt.Local().Format("2006-01-02 15:04"), c.Attempts)
		}
		if l.Why != "" {
			fmt.Fprintf(out, "Why:         %s\n", l.Why)
		}
		if l.UnlockParameters {
			if v := l.CreativityTarget(); v != nil {
				fmt.Fprintf(out, "Creativity:  %d%% or higher\n", *v)
			}
			if v := l.StyleWeightTarget(); v != nil {
				fmt.Fprintf(out, "Style weight: %d%% or higher\n", *v)
			}
			if len(l.AvailableStyles) > 0 {
				fmt.Fprintf(out, "Styles:      %s\n", strings.Join(l.AvailableStyles, ", "))
			}
		}

		if hints, _ := cmd.Flags().GetBool("hints"); hints && len(l.Hints) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Hints:")
			for _, h := range l.Hints {
				fmt.Fprintf(out, "  💡 %s\n", h)
			}
		}
		return nil
	},
}

func init() {
	levelsShowCmd.Flags().Bool("hints", false, "Also print the level's hints")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsShowCmd)
}
