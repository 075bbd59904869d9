package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptlab/internal/game"
)

var checkCmd = &cobra.Command{
	Use:   "check <prompt...>",
	Short: "Submit a prompt for a level without opening the game",
	Long: `Submit a prompt for the current level (or --level) and print the verdict,
hint and explanation. Progress is saved exactly as in the game.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		engine, _ := env.engine(ctx)

		var opts []game.Option
		if m, _ := cmd.Flags().GetString("mode"); m != "" {
			opts = append(opts, game.WithMode(strings.ToLower(m)))
		}
		sess := env.session(engine, opts...)

		if id, _ := cmd.Flags().GetInt("level"); id != 0 {
			if _, err := sess.SetLevel(id); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("creativity") {
			v, _ := cmd.Flags().GetInt("creativity")
			sess.SetCreativity(v)
		}
		if cmd.Flags().Changed("style-weight") {
			v, _ := cmd.Flags().GetInt("style-weight")
			sess.SetStyleWeight(v)
		}
		if s, _ := cmd.Flags().GetString("style"); s != "" {
			if err := sess.SetStyle(s); err != nil {
				return err
			}
		}

		outcome, err := sess.Submit(ctx, strings.Join(args, " "))
		if outcome.Level.ID == 0 {
			return err
		}
		printOutcome(cmd, outcome)
		if err != nil {
			env.logger.Warn("progress not saved", "err", err)
		}
		return nil
	},
}

func printOutcome(cmd *cobra.Command, o game.Outcome) {
	out := cmd.OutOrStdout()
	showExplain, _ := cmd.Flags().GetBool("explain")

	fmt.Fprintf(out, "Level %d: %s\n", o.Level.ID, o.Level.Problem)
	fmt.Fprintf(out, "Prompt:      %s\n", o.StyledPrompt)
	fmt.Fprintf(out, "Randomness:  %s (%d%%)  Temperature: %.1f\n", o.Meter.Label, o.Meter.Fill, o.Temperature)
	if len(o.Result.MatchedKeywords) > 0 {
		fmt.Fprintf(out, "Matched:     %s\n", strings.Join(o.Result.MatchedKeywords, ", "))
	}
	fmt.Fprintln(out)

	if o.Completed {
		fmt.Fprintf(out, "✓ %s %s\n", o.Title, o.Message)
		if o.GameComplete {
			fmt.Fprintln(out, game.GameCompleteBanner)
		}
	} else {
		fmt.Fprintln(out, "✗ Not quite!")
		if o.Result.HasKeywordMatch && o.Parameters.Message != "" {
			fmt.Fprintf(out, "  %s\n", o.Parameters.Message)
		}
		if o.Hint != "" {
			fmt.Fprintf(out, "  💡 %s\n", o.Hint)
		}
	}

	if !showExplain || len(o.Fragments) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "How the AI saw it (%s mode):\n", o.Mode)
	for _, f := range o.Fragments {
		fmt.Fprintf(out, "  %s %s: %s\n", f.Category.Icon(), f.Category.DisplayName(), f.Text)
	}
}

func init() {
	checkCmd.Flags().IntP("level", "l", 0, "Level to play (default: the current level)")
	checkCmd.Flags().IntP("creativity", "c", 50, "Creativity slider, 0-100")
	checkCmd.Flags().StringP("style", "s", "", "Art style, when the level offers styles")
	checkCmd.Flags().IntP("style-weight", "w", 50, "Style weight slider, 0-100")
	checkCmd.Flags().StringP("mode", "m", "", "Explanation mode: auto, basic, analytical, oracle")
	checkCmd.Flags().BoolP("explain", "e", false, "Print the explanation")
}
