package config

import (
	"os"

	"github.com/rileyhilliard/rdash/internal/errors"
)

// defaultConfigTemplate is written when a config is bootstrapped. The API
// key stays an env reference so the file is safe to commit.
const defaultConfigTemplate = `# rdash configuration
render:
  api_key: ${RENDER_API_KEY}
  refresh_interval: 30s

services: []
`

// WriteDefault creates a fresh config file at path. Refuses to overwrite an
// existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Edit it directly or remove it first.")
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create config file at "+path,
			"Check directory permissions.")
	}
	return nil
}
