package doctor

import (
	"fmt"

	"github.com/rileyhilliard/rdash/internal/config"
)

// ConfigFoundCheck verifies a config file exists in the search path.
type ConfigFoundCheck struct {
	// Explicit is the --config override, empty for the default search.
	Explicit string

	// path is recorded by Run for downstream checks.
	path string
}

func (c *ConfigFoundCheck) Name() string     { return "config file" }
func (c *ConfigFoundCheck) Category() string { return "CONFIG" }

func (c *ConfigFoundCheck) Run() CheckResult {
	path, err := config.Find(c.Explicit)
	if err != nil {
		return CheckResult{
			Name: c.Name(), Category: c.Category(), Status: StatusFail,
			Message:    err.Error(),
			Suggestion: "Check the --config path.",
		}
	}
	if path == "" {
		return CheckResult{
			Name: c.Name(), Category: c.Category(), Status: StatusFail,
			Message:    "no config file found",
			Suggestion: "Create .rdash.yaml with 'rdash service add'.",
		}
	}
	c.path = path
	return CheckResult{
		Name: c.Name(), Category: c.Category(), Status: StatusPass,
		Message: path,
	}
}

// ConfigValidCheck loads and validates the config.
type ConfigValidCheck struct {
	Explicit string
}

func (c *ConfigValidCheck) Name() string     { return "config valid" }
func (c *ConfigValidCheck) Category() string { return "CONFIG" }

func (c *ConfigValidCheck) Run() CheckResult {
	cfg, path, err := config.LoadResolved(c.Explicit)
	if err != nil {
		return CheckResult{
			Name: c.Name(), Category: c.Category(), Status: StatusFail,
			Message:    err.Error(),
			Suggestion: "Fix the reported field and run doctor again.",
		}
	}
	if len(cfg.Services) == 0 {
		return CheckResult{
			Name: c.Name(), Category: c.Category(), Status: StatusWarn,
			Message:    path + " has no services",
			Suggestion: "Add one with 'rdash service add'.",
		}
	}
	return CheckResult{
		Name: c.Name(), Category: c.Category(), Status: StatusPass,
		Message: fmt.Sprintf("%d service(s), refresh every %s", len(cfg.Services), cfg.Render.RefreshInterval),
	}
}
