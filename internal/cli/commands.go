package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/render"
)

// Command-specific flags
var (
	statusJSONFlag bool
	addIDFlag      string
	addSearchFlag  string
)

// dashboardCmd starts the live TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live status dashboard for all configured services",
	Long: `Start an interactive TUI dashboard showing the live status of every
configured Render service.

Each service card shows its current state, public URL, and latest deploy.
Data refreshes automatically at the configured interval; a failed fetch
annotates the card but never hides the last known good data.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh now
  up/k        Select previous service
  down/j      Select next service
  l           Open logs in browser
  e           Open events in browser
  d           Open deploys in browser
  s           Open service settings in browser
  ?           Show help

Examples:
  rdash dashboard
  rdash`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand()
	},
}

// statusCmd prints a one-shot status for one service
var statusCmd = &cobra.Command{
	Use:   "status <service>",
	Short: "Show current status for one service",
	Long: `Fetch and print the current status of a single service.

The service argument is matched against configured aliases first, then
service names. A token matching several services prompts for a choice on a
terminal, or lists the candidates otherwise.

Examples:
  rdash status chat
  rdash status chat --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(args[0], statusJSONFlag)
	},
}

// openCmd opens a service's dashboard page in the browser
var openCmd = &cobra.Command{
	Use:   "open <service> [action]",
	Short: "Open a service's dashboard page in the browser",
	Long: `Open the Render web dashboard page for a service.

Without an action the service overview page opens. Actions: logs, events,
deploys, settings.

Examples:
  rdash open chat
  rdash open chat logs`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := ""
		if len(args) == 2 {
			action = args[1]
		}
		if action != "" && !render.IsValidAction(action) {
			return errors.New(errors.ErrExec,
				"Unknown action '"+action+"'",
				"Valid actions: logs, events, deploys, settings")
		}
		return openCommand(args[0], action)
	},
}

// serviceCmd groups the service store subcommands
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the configured service list",
}

var serviceAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Register a Render service in the config",
	Long: `Add a service from your Render account to the local config.

With a name argument the account is searched for matching services;
otherwise all services are listed for selection. Prompts for aliases and
priority, then rewrites the config file preserving comments.

Examples:
  rdash service add
  rdash service add chat
  rdash service add --id srv-abc123`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		search := addSearchFlag
		if len(args) == 1 {
			search = args[0]
		}
		return serviceAddCommand(search, addIDFlag)
	},
}

var serviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serviceListCommand()
	},
}

var serviceRemoveCmd = &cobra.Command{
	Use:   "remove <service>",
	Short: "Remove a service from the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return serviceRemoveCommand(args[0])
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for rdash.

Examples:
  # Bash
  rdash completion bash > /etc/bash_completion.d/rdash

  # Zsh
  rdash completion zsh > "${fpath[1]}/_rdash"

  # Fish
  rdash completion fish > ~/.config/fish/completions/rdash.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSONFlag, "json", false, "machine-readable JSON output")

	serviceAddCmd.Flags().StringVar(&addIDFlag, "id", "", "add by service id, skipping the account search")
	serviceAddCmd.Flags().StringVar(&addSearchFlag, "search", "", "filter the account service list by name")

	serviceCmd.AddCommand(serviceAddCmd)
	serviceCmd.AddCommand(serviceListCmd)
	serviceCmd.AddCommand(serviceRemoveCmd)

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(completionCmd)
}
