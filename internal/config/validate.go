package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/rdash/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
// Any validation failure is fatal at startup: the dashboard and the CLI must
// never run against a partially-configured service list.
func Validate(cfg *Config) error {
	if cfg.Render.APIKey == "" {
		return errors.New(errors.ErrConfig,
			"Missing render.api_key in config",
			"Set it to ${RENDER_API_KEY} and export RENDER_API_KEY=your-key")
	}

	if cfg.Render.RefreshInterval < MinRefreshInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("render.refresh_interval %s is too short", cfg.Render.RefreshInterval),
			fmt.Sprintf("Use at least %s to avoid hitting Render API rate limits", MinRefreshInterval))
	}

	if len(cfg.Services) == 0 {
		return errors.New(errors.ErrConfig,
			"No services configured",
			"Add at least one service with 'rdash service add <name>'")
	}

	seenIDs := make(map[string]bool)
	seenAliases := make(map[string]string) // lowercased alias -> service id
	for i, svc := range cfg.Services {
		if err := validateService(i, svc); err != nil {
			return err
		}

		if seenIDs[svc.ID] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Service id '%s' appears more than once", svc.ID),
				"Remove the duplicate entry from the services list")
		}
		seenIDs[svc.ID] = true

		for _, alias := range svc.Aliases {
			lower := strings.ToLower(alias)
			if other, ok := seenAliases[lower]; ok {
				return errors.New(errors.ErrConfig,
					fmt.Sprintf("Alias '%s' is used by both '%s' and '%s'", alias, other, svc.ID),
					"Aliases must be unique - pick a different alias for one of them")
			}
			seenAliases[lower] = svc.ID
		}
	}

	return nil
}

// validateService checks a single service entry.
func validateService(index int, svc Service) error {
	if svc.ID == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Service at index %d is missing the 'id' field", index),
			"Every service needs a Render service id (srv-xxxx)")
	}

	if len(svc.Aliases) == 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Service '%s' has no aliases", svc.ID),
			"Add at least one alias so the service can be addressed from the command line")
	}

	for _, alias := range svc.Aliases {
		if strings.TrimSpace(alias) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Service '%s' has an empty alias", svc.ID),
				"Remove the empty entry or give it a value")
		}
	}

	if svc.Priority < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Service '%s' has a negative priority", svc.ID),
			"Priority must be 1 or higher (lower sorts first)")
	}

	return nil
}
