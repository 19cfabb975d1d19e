package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/rileyhilliard/rdash/internal/config"
	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/rileyhilliard/rdash/internal/resolve"
)

// resolveToken maps a user token to exactly one configured service.
// An ambiguous token prompts for a choice when stdin is a terminal;
// otherwise the candidates are listed in the error so scripts stay
// deterministic.
func resolveToken(cfg *config.Config, token string) (*config.Service, error) {
	result := resolve.Resolve(token, cfg.Services)

	switch result.Outcome {
	case resolve.MatchUnique:
		return result.Service, nil

	case resolve.MatchNone:
		return nil, errors.New(errors.ErrResolve,
			fmt.Sprintf("No service matches '%s'", token),
			"Run 'rdash service list' to see configured services and their aliases.")

	case resolve.MatchAmbiguous:
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New(errors.ErrResolve,
				fmt.Sprintf("'%s' matches multiple services: %s", token, candidateSummary(result.Candidates)),
				"Use a more specific token or an exact alias.")
		}
		return pickCandidate(token, result.Candidates)
	}

	return nil, errors.New(errors.ErrResolve, "Resolution failed", "")
}

// pickCandidate asks the user to choose between ambiguous matches.
// Candidates arrive pre-sorted by priority then name.
func pickCandidate(token string, candidates []config.Service) (*config.Service, error) {
	options := make([]huh.Option[string], len(candidates))
	for i, svc := range candidates {
		label := svc.Name
		if len(svc.Aliases) > 0 {
			label += " (" + strings.Join(svc.Aliases, ", ") + ")"
		}
		options[i] = huh.NewOption(label, svc.ID)
	}

	var chosen string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("'%s' matches multiple services", token)).
				Options(options...).
				Value(&chosen),
		),
	)
	if err := form.Run(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrResolve,
			"Couldn't get your selection",
			"Try again with a more specific token.")
	}

	for i := range candidates {
		if candidates[i].ID == chosen {
			return &candidates[i], nil
		}
	}
	return nil, errors.New(errors.ErrResolve, "Selection did not match a candidate", "")
}

func candidateSummary(candidates []config.Service) string {
	names := make([]string, len(candidates))
	for i, svc := range candidates {
		names[i] = svc.Name
	}
	return strings.Join(names, ", ")
}
