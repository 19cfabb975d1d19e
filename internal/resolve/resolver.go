// Package resolve maps a user-typed token to exactly one configured service.
//
// Matching is case-insensitive and evaluated in strict tiers; the first tier
// that produces at least one candidate decides the outcome:
//
//  1. Exact alias match
//  2. Alias prefix match
//  3. Name prefix match
//
// Partial matching is prefix-only. This is a deliberate contract: "ch"
// matches the alias "chat" but "at" does not, so disambiguation outcomes
// stay predictable as aliases grow.
//
// Resolution is a pure function of its inputs. Ambiguous candidates are
// always ordered by ascending priority, then case-insensitive name, so
// disambiguation prompts are reproducible across runs.
package resolve

import (
	"sort"
	"strings"

	"github.com/rileyhilliard/rdash/internal/config"
)

// Outcome classifies the result of resolving a token.
type Outcome int

const (
	// MatchNone means no tier produced a candidate.
	MatchNone Outcome = iota
	// MatchUnique means exactly one service matched.
	MatchUnique
	// MatchAmbiguous means two or more distinct services matched in the
	// deciding tier.
	MatchAmbiguous
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case MatchUnique:
		return "unique"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return "none"
	}
}

// Result is the outcome of a single resolution.
type Result struct {
	Outcome Outcome

	// Service is set when Outcome is MatchUnique.
	Service *config.Service

	// Candidates is set when Outcome is MatchAmbiguous, ordered by
	// ascending priority then case-insensitive name.
	Candidates []config.Service
}

// Resolve matches token against the configured services.
func Resolve(token string, services []config.Service) Result {
	lower := strings.ToLower(strings.TrimSpace(token))
	if lower == "" {
		return Result{Outcome: MatchNone}
	}

	// Tier 1: exact alias. More than one record sharing the exact alias is
	// a configuration defect, reported as ambiguity rather than picking a
	// winner silently.
	if candidates := collect(services, func(svc config.Service) bool {
		for _, alias := range svc.Aliases {
			if strings.ToLower(alias) == lower {
				return true
			}
		}
		return false
	}); len(candidates) > 0 {
		return toResult(candidates)
	}

	// Tier 2: alias prefix.
	if candidates := collect(services, func(svc config.Service) bool {
		for _, alias := range svc.Aliases {
			if strings.HasPrefix(strings.ToLower(alias), lower) {
				return true
			}
		}
		return false
	}); len(candidates) > 0 {
		return toResult(candidates)
	}

	// Tier 3: name prefix.
	if candidates := collect(services, func(svc config.Service) bool {
		return strings.HasPrefix(strings.ToLower(svc.Name), lower)
	}); len(candidates) > 0 {
		return toResult(candidates)
	}

	return Result{Outcome: MatchNone}
}

// collect gathers the distinct services satisfying the predicate, in store order.
func collect(services []config.Service, match func(config.Service) bool) []config.Service {
	var out []config.Service
	for _, svc := range services {
		if match(svc) {
			out = append(out, svc)
		}
	}
	return out
}

// toResult converts a non-empty candidate set into a Result.
func toResult(candidates []config.Service) Result {
	if len(candidates) == 1 {
		svc := candidates[0]
		return Result{Outcome: MatchUnique, Service: &svc}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority < candidates[j].Priority
		}
		return strings.ToLower(candidates[i].Name) < strings.ToLower(candidates[j].Name)
	})

	return Result{Outcome: MatchAmbiguous, Candidates: candidates}
}
