package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which levels are solved",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()
		t := env.tracker
		fmt.Fprintf(out, "Solved %d of %d levels\n", t.CompletedCount(), t.Total())
		mode := t.Mode()
		if mode == "" {
			mode = env.cfg.Explanation.Mode + " (default)"
		}
		fmt.Fprintf(out, "Explanation mode: %s\n\n", mode)

		for _, l := range env.catalog.All() {
			status := t.Status(l.ID)
			line := fmt.Sprintf("%s Level %-2d %-10s", status.Icon(), l.ID, status)
			if c, ok := t.Completion(l.ID); ok {
				line += fmt.Sprintf(" %s, %d attempt(s)", c.CompletedAt.Local().Format("2006-01-02 15:04"), c.Attempts)
			}
			fmt.Fprintln(out, line)
		}
		if t.AllComplete() {
			fmt.Fprintln(out)
			fmt.Fprintln(out, t.Summary())
		}
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget all progress and start again at level 1",
	RunE:  runReset,
}

// resetCmd is a shortcut for "progress reset".
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset saved progress (same as progress reset)",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return fmt.Errorf("this erases all level progress; pass --yes to confirm")
	}

	env, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.tracker.Reset(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. Level 1 awaits!")
	return nil
}

func init() {
	for _, c := range []*cobra.Command{progressResetCmd, resetCmd} {
		c.Flags().BoolP("yes", "y", false, "Confirm the reset")
	}

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}
