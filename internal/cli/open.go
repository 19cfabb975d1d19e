package cli

import (
	"fmt"

	"github.com/pkg/browser"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/logger"
	"github.com/rileyhilliard/rdash/internal/render"
)

// openCommand opens a service's dashboard page in the default browser.
func openCommand(token, action string) error {
	cfg, _, err := config.LoadResolved(configFlag)
	if err != nil {
		return err
	}

	svc, err := resolveToken(cfg, token)
	if err != nil {
		return err
	}

	url, err := render.DashboardURL(svc.ID, action)
	if err != nil {
		return err
	}

	if err := browser.OpenURL(url); err != nil {
		// No browser available (SSH session, container). The URL is still
		// useful, so print it instead of failing.
		logger.Default().Debug("browser open failed: %v", err)
		fmt.Println(url)
		return nil
	}

	fmt.Printf("Opened %s\n", url)
	return nil
}
