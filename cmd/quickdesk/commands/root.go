package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quickdesk",
	Short: "QuickDesk - help-desk ticketing API",
	Long: `QuickDesk serves the help-desk API: ticket filing and triage, replies and
internal messages, live ticket lists over WebSocket and dashboard counters.

Configuration is read from the environment and from a .env file when present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. Cobra's own error printing is silenced;
// commands report failures through printError.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
