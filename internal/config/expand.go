package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/rileyhilliard/rdash/internal/errors"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv substitutes ${VAR} environment references in a string.
// Every referenced variable must be set; an unset variable is an error so
// that a missing credential fails at load time rather than as a confusing
// 401 later.
func ExpandEnv(s string) (string, error) {
	var missing string
	out := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		value, ok := os.LookupEnv(name)
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})

	if missing != "" {
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Environment variable %s is not set", missing),
			fmt.Sprintf("Export it first: export %s=your-value", missing))
	}

	return out, nil
}
