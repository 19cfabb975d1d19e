package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/rdash/internal/errors"
	"github.com/spf13/viper"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'rdash service add' to create a config, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .rdash.yaml in current directory
// 3. .rdash.yaml in parent directories (stops at git root or home)
// 4. ~/.config/rdash/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadResolved finds and loads the config, then validates it. This is the
// single entry point used by commands: a config that fails validation never
// reaches the engine.
func LoadResolved(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", errors.New(errors.ErrConfig,
			"No config file found",
			"Create .rdash.yaml in this directory or ~/.config/rdash/config.yaml. Run 'rdash service add <name>' to get started.")
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}

	if err := Validate(cfg); err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetDefault("render.refresh_interval", DefaultRefreshInterval.String())

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	// Substitute ${VAR} in the API key. A missing environment variable is a
	// load failure: the client must never start with an empty credential.
	key, err := ExpandEnv(cfg.Render.APIKey)
	if err != nil {
		return nil, err
	}
	cfg.Render.APIKey = key

	applyServiceDefaults(cfg)

	return cfg, nil
}

// applyServiceDefaults fills in the optional per-service fields.
func applyServiceDefaults(cfg *Config) {
	if cfg.Render.RefreshInterval == 0 {
		cfg.Render.RefreshInterval = DefaultRefreshInterval
	}
	for i := range cfg.Services {
		if cfg.Services[i].Name == "" {
			cfg.Services[i].Name = cfg.Services[i].ID
		}
		if cfg.Services[i].Priority == 0 {
			cfg.Services[i].Priority = DefaultPriority
		}
	}
}
