package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-intro")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("skip-intro", false, "Open straight on the home menu")
}
