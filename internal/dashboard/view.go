package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/status"
	"github.com/rileyhilliard/rdash/internal/ui"
)

// renderDashboard assembles the full frame: header, one card per service,
// footer.
func (m Model) renderDashboard() string {
	width := m.width
	if width <= 0 {
		width = BreakpointCompact
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
		return b.String()
	}

	if len(m.services) == 0 {
		b.WriteString(MutedStyle.Render("  No services configured. Run 'rdash service add' to get started."))
		b.WriteString("\n")
	}

	cardWidth := width - 4
	if cardWidth > BreakpointWide {
		cardWidth = BreakpointWide
	}
	for i, svc := range m.services {
		snap := m.cache.Get(svc.ID)
		b.WriteString(m.renderCard(svc, snap, cardWidth, i == m.selected))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := "rdash"
	counts := m.stateCounts()
	return HeaderStyle.Render(title) + " " + MutedStyle.Render(counts) + "\n" +
		MutedStyle.Render(strings.Repeat("─", min(width, BreakpointWide)))
}

// stateCounts summarizes the fleet, e.g. "3 running · 1 deploying · 1 failed".
func (m Model) stateCounts() string {
	counts := make(map[string]int)
	for _, svc := range m.services {
		counts[string(m.cache.Get(svc.ID).State)]++
	}

	var parts []string
	for _, state := range []string{"running", "deploying", "suspended", "failed", "unknown"} {
		if n := counts[state]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, state))
		}
	}
	if len(parts) == 0 {
		return "no services"
	}
	return strings.Join(parts, " · ")
}

// renderCard renders one service card.
func (m Model) renderCard(svc config.Service, snap status.Snapshot, width int, selected bool) string {
	style := CardStyle.Width(width)
	if selected {
		style = CardSelectedStyle.Width(width)
	}

	var lines []string

	// Title line: state dot, name, type, in-flight spinner.
	dot := lipgloss.NewStyle().Foreground(ui.StateColor(snap.State)).Render(ui.StateSymbol(snap.State))
	title := dot + " " + ServiceNameStyle.Render(snap.Name)
	if snap.Type != "" {
		title += " " + MutedStyle.Render(snap.Type)
	}
	title += " " + lipgloss.NewStyle().Foreground(ui.StateColor(snap.State)).Render(string(snap.State))
	if snap.InFlight {
		title += " " + m.spinner.View()
	}
	lines = append(lines, title)

	if snap.ServiceURL != "" {
		lines = append(lines, LabelStyle.Render(snap.ServiceURL))
	}

	lines = append(lines, m.renderDeployLine(snap, width-4))

	// A failed fetch annotates the card; the data above stays the last
	// known good values.
	if snap.LastError != nil {
		msg := fmt.Sprintf("%s fetch failed %s: %s",
			ui.SymbolWarning, ui.TimeAgo(snap.LastFetchedAt, m.now), snap.LastError.Error())
		lines = append(lines, ErrorStyle.Render(ui.Truncate(msg, width-4)))
	} else if snap.HasData() {
		lines = append(lines, MutedStyle.Render("updated "+ui.TimeAgo(snap.LastSuccessAt, m.now)))
	} else {
		lines = append(lines, MutedStyle.Render("waiting for first fetch"))
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDeployLine(snap status.Snapshot, maxWidth int) string {
	deploy := snap.LatestDeploy
	if deploy == nil {
		return MutedStyle.Render("no deploys yet")
	}

	state := lipgloss.NewStyle().Foreground(ui.DeployColor(deploy.State)).Render(string(deploy.State))
	line := "deploy " + state + " " + MutedStyle.Render(ui.TimeAgo(deploy.StartedAt, m.now))
	if deploy.CommitRef != "" {
		ref := deploy.CommitRef
		if len(ref) > 7 {
			ref = ref[:7]
		}
		line += " " + LabelStyle.Render(ref)
	}
	if deploy.CommitMessage != "" {
		line += " " + MutedStyle.Render(ui.Truncate(firstLine(deploy.CommitMessage), maxWidth-lipgloss.Width(line)-1))
	}
	return line
}

func (m Model) renderFooter() string {
	var cycle string
	if since, ok := m.engine.TimeSinceLastCycleStart(); ok {
		cycle = fmt.Sprintf("refreshed %ds ago · every %s", int(since.Seconds()), m.engine.Interval())
	} else {
		cycle = "starting..."
	}

	footer := cycle + "  " + "r refresh · l logs · e events · d deploys · s settings · ? help · q quit"
	if m.openErr != nil {
		footer += "  " + ErrorStyle.Render("open failed: "+m.openErr.Error())
	}
	return FooterStyle.Render(footer)
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"↑/k ↓/j", "select service"},
		{"r", "refresh now"},
		{"l", "open logs in browser"},
		{"e", "open events in browser"},
		{"d", "open deploys in browser"},
		{"s", "open service settings in browser"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("  " + HelpKeyStyle.Render(fmt.Sprintf("%-10s", row.key)) + HelpDescStyle.Render(row.desc) + "\n")
	}
	return b.String()
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
