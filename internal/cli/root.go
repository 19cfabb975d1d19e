// Package cli wires the rdash commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/render"
)

// configFlag is the --config override, empty for the default search order.
var configFlag string

// rootCmd is the base command. Bare 'rdash' opens the live dashboard;
// 'rdash <token> [action]' is shorthand for status and open.
var rootCmd = &cobra.Command{
	Use:   "rdash [service] [action]",
	Short: "Terminal dashboard for Render services",
	Long: `rdash tracks the live status of your Render services from the terminal.

Run with no arguments to open the interactive dashboard. Pass a service
token for a one-shot status check, or a token plus an action to jump to a
dashboard page in the browser.

Examples:
  rdash                  # live dashboard for all configured services
  rdash chat             # one-shot status for the service matching "chat"
  rdash chat logs        # open the chat service's logs in the browser
  rdash service add      # register a service from your Render account`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			return dashboardCommand()
		case 1:
			return statusCommand(args[0], false)
		default:
			if !render.IsValidAction(args[1]) {
				return errors.New(errors.ErrExec,
					fmt.Sprintf("Unknown action '%s'", args[1]),
					"Valid actions: logs, events, deploys, settings")
			}
			return openCommand(args[0], args[1])
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
