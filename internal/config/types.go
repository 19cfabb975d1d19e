package config

import (
	"sort"
	"strings"
	"time"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".rdash.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/rdash"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

const (
	// DefaultRefreshInterval is how often the dashboard refreshes service status.
	DefaultRefreshInterval = 30 * time.Second
	// MinRefreshInterval is the floor for the refresh interval, protecting
	// the Render API from being hammered.
	MinRefreshInterval = 5 * time.Second
	// DefaultPriority is used when a service omits the priority field.
	// Lower priority sorts first.
	DefaultPriority = 1
)

// Config represents the complete .rdash.yaml configuration file.
type Config struct {
	Render   RenderConfig `yaml:"render" mapstructure:"render"`
	Services []Service    `yaml:"services" mapstructure:"services"`
}

// RenderConfig holds Render API settings.
type RenderConfig struct {
	// APIKey is the bearer credential for the Render API.
	// Supports environment substitution: ${RENDER_API_KEY}.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// RefreshInterval is the time between dashboard refresh cycles.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
}

// Service is one configured Render service. The service list is loaded once
// at startup and never mutated afterwards.
type Service struct {
	// ID is the Render service identifier (srv-xxxx), unique across the config.
	ID string `yaml:"id" mapstructure:"id"`

	// Name is the human display name. Defaults to the ID.
	Name string `yaml:"name" mapstructure:"name"`

	// Aliases are short tokens for fast lookup. Each alias must be unique
	// across the whole config.
	Aliases []string `yaml:"aliases" mapstructure:"aliases"`

	// Priority controls display and disambiguation order; lower sorts first.
	Priority int `yaml:"priority" mapstructure:"priority"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			RefreshInterval: DefaultRefreshInterval,
		},
		Services: []Service{},
	}
}

// SortedServices returns the services ordered by ascending priority, then
// case-insensitive name. This ordering is the display contract for the
// dashboard and for disambiguation listings.
func (c *Config) SortedServices() []Service {
	out := make([]Service, len(c.Services))
	copy(out, c.Services)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// ServiceByID returns the service with the given id, or nil.
func (c *Config) ServiceByID(id string) *Service {
	for i := range c.Services {
		if c.Services[i].ID == id {
			return &c.Services[i]
		}
	}
	return nil
}
