// Package cli implements the rdash command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small command function for the actual work. The heavy
// lifting lives in other internal packages:
//
//   - config   - config file discovery, loading, validation, rewriting
//   - resolve  - token to service matching
//   - render   - Render API client and dashboard URLs
//   - status   - snapshot cache and refresh engine
//   - dashboard - the Bubble Tea TUI
//
// # Command Structure
//
// The root command is "rdash". Bare invocation opens the live dashboard;
// a token argument is shorthand for status and open:
//
//	rdash                      - live dashboard
//	rdash chat                 - one-shot status for "chat"
//	rdash chat logs            - open logs page in the browser
//	rdash status <service>     - one-shot status (explicit form)
//	rdash open <service> [act] - open a dashboard page
//	rdash service [add|list|remove] - manage the configured services
//
// # Token Resolution
//
// Service arguments are resolved through the resolve package. A token that
// matches several services prompts for a choice on an interactive terminal
// and fails with the candidate list otherwise, so scripted use stays
// deterministic.
package cli
