package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/dashboard"
	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/logger"
	"github.com/rileyhilliard/rdash/internal/render"
	"github.com/rileyhilliard/rdash/internal/status"
)

// dashboardCommand starts the live TUI dashboard.
func dashboardCommand() error {
	cfg, _, err := config.LoadResolved(configFlag)
	if err != nil {
		return err
	}
	if len(cfg.Services) == 0 {
		return errors.New(errors.ErrConfig,
			"No services configured",
			"Add a service with 'rdash service add' first.")
	}

	log := logger.Default()
	client := render.NewClient(cfg.Render.APIKey, render.WithLogger(log))
	defer client.Close()

	cache := status.NewCache(cfg.Services)
	engine := status.NewEngine(cache, client, cfg.Services, cfg.Render.RefreshInterval, log)

	// The engine refreshes on its own goroutine; the TUI only reads the
	// cache. Canceling the context stops the engine when the TUI exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Start(ctx)

	model := dashboard.NewModel(cfg, cache, engine)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
