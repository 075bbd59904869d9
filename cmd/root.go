package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptlab",
	Short: "Learn how AI image parameters shape pictures",
	Long: `PromptLab is a terminal puzzle game about image-generation prompts.
Each level poses a problem, your prompt solves it, and later levels add
creativity and style sliders. After every attempt PromptLab explains how
the AI read your prompt.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides PROMPTLAB_DB env var)")
	flags.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/promptlab/config.yaml)")
	flags.String("levels", "", "Path to a custom levels YAML file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Uint64("seed", 0, "Seed for hints and explanations (0 picks a random seed)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
