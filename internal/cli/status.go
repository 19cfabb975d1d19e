package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/logger"
	"github.com/rileyhilliard/rdash/internal/render"
	"github.com/rileyhilliard/rdash/internal/status"
	"github.com/rileyhilliard/rdash/internal/ui"
)

// statusTimeout bounds a one-shot status fetch.
const statusTimeout = 30 * time.Second

// statusJSON is the machine-readable shape of a one-shot status result.
type statusJSON struct {
	ServiceID string            `json:"service_id"`
	Name      string            `json:"name"`
	Type      string            `json:"type,omitempty"`
	State     string            `json:"state"`
	URL       string            `json:"url,omitempty"`
	Deploy    *statusDeployJSON `json:"latest_deploy,omitempty"`
	FetchedAt time.Time         `json:"fetched_at"`
}

type statusDeployJSON struct {
	ID            string     `json:"id"`
	State         string     `json:"state"`
	CommitRef     string     `json:"commit_ref,omitempty"`
	CommitMessage string     `json:"commit_message,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// statusCommand fetches and prints the current status of one service.
// The fetch goes through the same cache contract the dashboard uses, so
// both paths share the duplicate-fetch gate and completion semantics.
func statusCommand(token string, jsonOut bool) error {
	cfg, _, err := config.LoadResolved(configFlag)
	if err != nil {
		return err
	}

	svc, err := resolveToken(cfg, token)
	if err != nil {
		return err
	}

	client := render.NewClient(cfg.Render.APIKey, render.WithLogger(logger.Default()))
	defer client.Close()

	services := []config.Service{*svc}
	cache := status.NewCache(services)
	engine := status.NewEngine(cache, client, services, cfg.Render.RefreshInterval, logger.Default())

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	snap := engine.FetchOne(ctx, svc.ID)
	if snap.LastError != nil {
		return errors.WrapWithCode(snap.LastError, errors.ErrAPI,
			fmt.Sprintf("Couldn't fetch status for '%s'", svc.Name),
			statusSuggestion(snap.LastError))
	}

	if jsonOut {
		return printStatusJSON(snap)
	}
	printStatus(snap)
	return nil
}

// statusSuggestion picks a next step matching the failure kind.
func statusSuggestion(err error) string {
	apiErr, ok := render.AsAPIError(err)
	if !ok {
		return "Try again in a moment."
	}
	switch apiErr.Kind {
	case render.KindAuthFailure:
		return "Check the render.api_key value in your config (see 'rdash service list' for the config path)."
	case render.KindNotFound:
		return "The service id may be stale. Remove and re-add it with 'rdash service add'."
	case render.KindRateLimited:
		return "The Render API is rate limiting; wait a minute and retry."
	default:
		return "Check your network connection and try again."
	}
}

func printStatus(snap status.Snapshot) {
	stateStyle := lipgloss.NewStyle().Foreground(ui.StateColor(snap.State))
	dot := stateStyle.Render(ui.StateSymbol(snap.State))

	fmt.Printf("%s %s  %s\n", dot, snap.Name, stateStyle.Render(string(snap.State)))
	if snap.Type != "" {
		fmt.Printf("  type:   %s\n", snap.Type)
	}
	if snap.ServiceURL != "" {
		fmt.Printf("  url:    %s\n", snap.ServiceURL)
	}
	fmt.Printf("  id:     %s\n", snap.ServiceID)

	if deploy := snap.LatestDeploy; deploy != nil {
		deployStyle := lipgloss.NewStyle().Foreground(ui.DeployColor(deploy.State))
		line := fmt.Sprintf("  deploy: %s %s", deployStyle.Render(string(deploy.State)), ui.RelativeTime(deploy.StartedAt))
		if deploy.CommitRef != "" {
			ref := deploy.CommitRef
			if len(ref) > 7 {
				ref = ref[:7]
			}
			line += " (" + ref + ")"
		}
		fmt.Println(line)
	} else {
		fmt.Println("  deploy: none yet")
	}
}

func printStatusJSON(snap status.Snapshot) error {
	out := statusJSON{
		ServiceID: snap.ServiceID,
		Name:      snap.Name,
		Type:      snap.Type,
		State:     string(snap.State),
		URL:       snap.ServiceURL,
		FetchedAt: snap.LastFetchedAt.UTC(),
	}
	if deploy := snap.LatestDeploy; deploy != nil {
		out.Deploy = &statusDeployJSON{
			ID:            deploy.ID,
			State:         string(deploy.State),
			CommitRef:     deploy.CommitRef,
			CommitMessage: deploy.CommitMessage,
			StartedAt:     deploy.StartedAt,
			FinishedAt:    deploy.FinishedAt,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
