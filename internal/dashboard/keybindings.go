package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyRefresh      = "r"
	KeySelectPrev   = "up"
	KeySelectPrevK  = "k"
	KeySelectNext   = "down"
	KeySelectNextJ  = "j"
	KeySelectFirst  = "home"
	KeySelectLast   = "end"
	KeyOpenLogs     = "l"
	KeyOpenEvents   = "e"
	KeyOpenDeploys  = "d"
	KeyOpenSettings = "s"
	KeyToggleHelp   = "?"
	KeyCloseHelp    = "esc"
)

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCloseHelp {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		m.engine.TriggerRefresh()
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		if m.selected < len(m.services)-1 {
			m.selected++
		}
		return true, nil

	case KeySelectFirst:
		m.selected = 0
		return true, nil

	case KeySelectLast:
		if len(m.services) > 0 {
			m.selected = len(m.services) - 1
		}
		return true, nil

	case KeyOpenLogs:
		return true, m.openCmd("logs")
	case KeyOpenEvents:
		return true, m.openCmd("events")
	case KeyOpenDeploys:
		return true, m.openCmd("deploys")
	case KeyOpenSettings:
		return true, m.openCmd("settings")
	}

	return false, nil
}
