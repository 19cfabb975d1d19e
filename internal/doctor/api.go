package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/render"
)

// checkTimeout bounds each API probe.
const checkTimeout = 15 * time.Second

// CredentialCheck verifies the API key can list services.
type CredentialCheck struct {
	Client *render.Client
}

func (c *CredentialCheck) Name() string     { return "api credential" }
func (c *CredentialCheck) Category() string { return "API" }

func (c *CredentialCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	if _, err := c.Client.ListServices(ctx, 1); err != nil {
		suggestion := "Check your network connection."
		if render.IsKind(err, render.KindAuthFailure) {
			suggestion = "Check the render.api_key value; generate a new key in the Render dashboard if needed."
		}
		return CheckResult{
			Name: c.Name(), Category: c.Category(), Status: StatusFail,
			Message:    err.Error(),
			Suggestion: suggestion,
		}
	}
	return CheckResult{
		Name: c.Name(), Category: c.Category(), Status: StatusPass,
		Message: "API key accepted",
	}
}

// ServiceCheck verifies one configured service id still resolves on Render.
type ServiceCheck struct {
	Client  *render.Client
	Service config.Service
}

func (c *ServiceCheck) Name() string     { return c.Service.Name }
func (c *ServiceCheck) Category() string { return "SERVICES" }

func (c *ServiceCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	svc, err := c.Client.GetService(ctx, c.Service.ID)
	if err != nil {
		if render.IsKind(err, render.KindNotFound) {
			return CheckResult{
				Name: c.Name(), Category: c.Category(), Status: StatusFail,
				Message:    fmt.Sprintf("id %s not found on Render", c.Service.ID),
				Suggestion: "The service was deleted or the id is stale; remove and re-add it.",
			}
		}
		return CheckResult{
			Name: c.Name(), Category: c.Category(), Status: StatusWarn,
			Message:    err.Error(),
			Suggestion: "Transient failures clear on their own; re-run doctor to confirm.",
		}
	}
	return CheckResult{
		Name: c.Name(), Category: c.Category(), Status: StatusPass,
		Message: fmt.Sprintf("%s (%s)", svc.State, c.Service.ID),
	}
}

// BuildChecks assembles the full check list for a loaded config. Config
// checks re-run the load so their failures describe the real path taken.
func BuildChecks(explicit string, cfg *config.Config, client *render.Client) []Check {
	checks := []Check{
		&ConfigFoundCheck{Explicit: explicit},
		&ConfigValidCheck{Explicit: explicit},
		&CredentialCheck{Client: client},
	}
	for _, svc := range cfg.SortedServices() {
		checks = append(checks, &ServiceCheck{Client: client, Service: svc})
	}
	return checks
}
