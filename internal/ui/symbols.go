package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rdash/internal/render"
)

// Unicode symbols for status indicators.
const (
	SymbolRunning   = "●" // Service is up and serving
	SymbolDeploying = "◐" // Deploy in progress
	SymbolSuspended = "⊘" // Service suspended
	SymbolFailed    = "✗" // Service down or deploy failed
	SymbolUnknown   = "○" // No data yet
	SymbolWarning   = "!" // Annotation for a failed fetch
)

// StateSymbol returns the indicator glyph for a service state.
func StateSymbol(state render.ServiceState) string {
	switch state {
	case render.StateRunning:
		return SymbolRunning
	case render.StateDeploying:
		return SymbolDeploying
	case render.StateSuspended:
		return SymbolSuspended
	case render.StateFailed:
		return SymbolFailed
	default:
		return SymbolUnknown
	}
}

// StateColor returns the color for a service state.
func StateColor(state render.ServiceState) lipgloss.Color {
	switch state {
	case render.StateRunning:
		return ColorSuccess
	case render.StateDeploying:
		return ColorWarning
	case render.StateSuspended:
		return ColorMuted
	case render.StateFailed:
		return ColorError
	default:
		return ColorMuted
	}
}

// DeployColor returns the color for a deploy state.
func DeployColor(state render.DeployState) lipgloss.Color {
	switch state {
	case render.DeployLive:
		return ColorSuccess
	case render.DeployBuilding, render.DeployCreated:
		return ColorWarning
	case render.DeployFailed:
		return ColorError
	default:
		return ColorMuted
	}
}
