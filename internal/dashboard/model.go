// Package dashboard is the live terminal view over the status cache.
//
// The refresh engine runs on its own goroutine outside the Bubble Tea
// program; the model only reads snapshots from the cache on a display tick
// and forwards manual refresh requests to the engine.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/render"
	"github.com/rileyhilliard/rdash/internal/status"
	"github.com/rileyhilliard/rdash/internal/ui"
)

// displayInterval is how often the view re-reads the cache. Fetch cadence
// is the engine's concern, not the view's.
const displayInterval = time.Second

// displayTickMsg signals a periodic re-read of the cache.
type displayTickMsg time.Time

// openResultMsg carries the outcome of opening a dashboard page.
type openResultMsg struct{ err error }

// Model is the Bubble Tea model for the service dashboard.
type Model struct {
	cache    *status.Cache
	engine   *status.Engine
	services []config.Service // display order: ascending priority, then name

	selected int
	width    int
	height   int
	now      time.Time
	spinner  spinner.Model
	showHelp bool
	quitting bool
	openErr  error

	// openURL is swapped out in tests so key handling never launches a browser.
	openURL func(url string) error
}

// NewModel creates a dashboard model over the given cache and engine.
func NewModel(cfg *config.Config, cache *status.Cache, engine *status.Engine) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ui.ColorWarning)),
	)
	return Model{
		cache:    cache,
		engine:   engine,
		services: cfg.SortedServices(),
		now:      time.Now(),
		spinner:  s,
		openURL:  browser.OpenURL,
	}
}

// Init starts the display tick loop and the spinner animation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.displayTickCmd(), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case displayTickMsg:
		m.now = time.Time(msg)
		return m, m.displayTickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case openResultMsg:
		m.openErr = msg.err
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// SelectedService returns the currently selected service, or nil when the
// store is empty.
func (m Model) SelectedService() *config.Service {
	if m.selected < 0 || m.selected >= len(m.services) {
		return nil
	}
	svc := m.services[m.selected]
	return &svc
}

func (m Model) displayTickCmd() tea.Cmd {
	return tea.Tick(displayInterval, func(t time.Time) tea.Msg {
		return displayTickMsg(t)
	})
}

// openCmd opens the dashboard page for the selected service in the browser.
func (m Model) openCmd(action string) tea.Cmd {
	svc := m.SelectedService()
	if svc == nil {
		return nil
	}
	url, err := render.DashboardURL(svc.ID, action)
	if err != nil {
		return func() tea.Msg { return openResultMsg{err: err} }
	}
	open := m.openURL
	return func() tea.Msg {
		return openResultMsg{err: open(url)}
	}
}
