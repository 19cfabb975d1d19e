package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/logger"
	"github.com/rileyhilliard/rdash/internal/render"
	"github.com/rileyhilliard/rdash/internal/ui"
)

// listTimeout bounds the account service listing during add.
const listTimeout = 30 * time.Second

// accountListLimit caps how many services we pull from the account.
const accountListLimit = 100

// loadForEdit finds and loads the config without validating it, so service
// management works on a config that is still being set up. Bootstraps a new
// config file when none exists.
func loadForEdit() (*config.Config, string, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		path, err = filepath.Abs(config.ConfigFileName)
		if err != nil {
			return nil, "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot determine current directory", "Check directory permissions.")
		}
		if err := config.WriteDefault(path); err != nil {
			return nil, "", err
		}
		fmt.Printf("Created %s\n", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// serviceAddCommand registers a Render service in the config. With an id it
// fetches that service directly; otherwise it searches the account by name.
func serviceAddCommand(search, id string) error {
	cfg, path, err := loadForEdit()
	if err != nil {
		return err
	}
	if cfg.Render.APIKey == "" {
		return errors.New(errors.ErrConfig,
			"No Render API key configured",
			"Set RENDER_API_KEY or edit render.api_key in "+path)
	}

	client := render.NewClient(cfg.Render.APIKey, render.WithLogger(logger.Default()))
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	var chosen render.Service
	if id != "" {
		svc, err := client.GetService(ctx, id)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrAPI,
				fmt.Sprintf("Couldn't fetch service '%s'", id),
				"Check the id is correct and your API key has access to it.")
		}
		chosen = *svc
	} else {
		chosen, err = pickAccountService(ctx, client, cfg, search)
		if err != nil {
			return err
		}
	}

	if cfg.ServiceByID(chosen.ID) != nil {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Service '%s' is already configured", chosen.Name),
			"Run 'rdash service list' to see it.")
	}

	svc, err := promptServiceDetails(cfg, chosen)
	if err != nil {
		return err
	}

	if err := config.AddService(path, svc); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't update the config file", "Check "+path+" is writable.")
	}

	fmt.Printf("Added %s (%s) to %s\n", svc.Name, svc.ID, path)
	return nil
}

// pickAccountService lists the account's services and asks the user to pick
// one. Already-configured services are filtered out.
func pickAccountService(ctx context.Context, client *render.Client, cfg *config.Config, search string) (render.Service, error) {
	services, err := client.ListServices(ctx, accountListLimit)
	if err != nil {
		return render.Service{}, errors.WrapWithCode(err, errors.ErrAPI,
			"Couldn't list services from your Render account",
			"Check your API key and network connection.")
	}

	lower := strings.ToLower(search)
	var candidates []render.Service
	for _, svc := range services {
		if cfg.ServiceByID(svc.ID) != nil {
			continue
		}
		if lower != "" && !strings.Contains(strings.ToLower(svc.Name), lower) {
			continue
		}
		candidates = append(candidates, svc)
	}
	if len(candidates) == 0 {
		if search != "" {
			return render.Service{}, errors.New(errors.ErrAPI,
				fmt.Sprintf("No unconfigured service matches '%s'", search),
				"Try a different search, or 'rdash service add' to list everything.")
		}
		return render.Service{}, errors.New(errors.ErrAPI,
			"Every service in the account is already configured", "")
	}
	sort.Slice(candidates, func(i, j int) bool {
		return strings.ToLower(candidates[i].Name) < strings.ToLower(candidates[j].Name)
	})

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	options := make([]huh.Option[string], len(candidates))
	for i, svc := range candidates {
		label := svc.Name
		if svc.Type != "" {
			label += " (" + svc.Type + ")"
		}
		options[i] = huh.NewOption(label, svc.ID)
	}

	var chosenID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select service to add").
				Options(options...).
				Value(&chosenID),
		),
	)
	if err := form.Run(); err != nil {
		return render.Service{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't get your selection",
			"Try again or use: rdash service add --id <service-id>")
	}

	for _, svc := range candidates {
		if svc.ID == chosenID {
			return svc, nil
		}
	}
	return render.Service{}, errors.New(errors.ErrConfig, "Selection did not match a service", "")
}

// promptServiceDetails asks for aliases and priority for a new entry.
func promptServiceDetails(cfg *config.Config, remote render.Service) (config.Service, error) {
	defaultAlias := strings.ToLower(strings.ReplaceAll(remote.Name, " ", "-"))
	aliases := defaultAlias
	priority := strconv.Itoa(config.DefaultPriority)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Aliases (comma-separated)").
				Description("Short tokens for commands like 'rdash chat logs'").
				Value(&aliases).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("at least one alias is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Priority").
				Description("Lower sorts first in the dashboard").
				Value(&priority).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("priority must be a non-negative integer")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return config.Service{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't get your input", "Try again or edit the config manually.")
	}

	svc := config.Service{
		ID:   remote.ID,
		Name: remote.Name,
	}
	for _, alias := range strings.Split(aliases, ",") {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			continue
		}
		if existing := findAliasOwner(cfg, alias); existing != "" {
			return config.Service{}, errors.New(errors.ErrConfig,
				fmt.Sprintf("Alias '%s' is already used by '%s'", alias, existing),
				"Pick a different alias.")
		}
		svc.Aliases = append(svc.Aliases, alias)
	}
	svc.Priority, _ = strconv.Atoi(strings.TrimSpace(priority))

	return svc, nil
}

// findAliasOwner returns the name of the service already using alias, if any.
func findAliasOwner(cfg *config.Config, alias string) string {
	lower := strings.ToLower(alias)
	for _, svc := range cfg.Services {
		for _, a := range svc.Aliases {
			if strings.ToLower(a) == lower {
				return svc.Name
			}
		}
	}
	return ""
}

// serviceListCommand prints the configured services in display order.
func serviceListCommand() error {
	cfg, path, err := loadForEdit()
	if err != nil {
		return err
	}

	fmt.Printf("Config: %s\n\n", path)
	if len(cfg.Services) == 0 {
		fmt.Println("No services configured. Run 'rdash service add' to get started.")
		return nil
	}

	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	for _, svc := range cfg.SortedServices() {
		fmt.Printf("  %s %s\n", svc.Name, muted.Render("("+svc.ID+")"))
		fmt.Printf("    aliases: %s  priority: %d\n", strings.Join(svc.Aliases, ", "), svc.Priority)
	}
	return nil
}

// serviceRemoveCommand deletes a service entry from the config.
func serviceRemoveCommand(token string) error {
	cfg, path, err := loadForEdit()
	if err != nil {
		return err
	}

	svc, err := resolveToken(cfg, token)
	if err != nil {
		return err
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove '%s' from the config?", svc.Name)).
				Description("The service on Render is not touched").
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't get your input", "Try again or edit "+path+" manually.")
	}
	if !confirm {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := config.RemoveService(path, svc.ID); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't update the config file", "Check "+path+" is writable.")
	}

	fmt.Printf("Removed %s (%s)\n", svc.Name, svc.ID)
	return nil
}
