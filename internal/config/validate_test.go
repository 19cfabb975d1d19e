package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rdash/internal/errors"
)

func validConfig() *Config {
	return &Config{
		Render: RenderConfig{
			APIKey:          "rnd_test",
			RefreshInterval: 30 * time.Second,
		},
		Services: []Service{
			{ID: "srv-1", Name: "Chat", Aliases: []string{"chat", "chat-api"}, Priority: 1},
			{ID: "srv-2", Name: "Web", Aliases: []string{"web"}, Priority: 2},
		},
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Render.APIKey = "" },
			wantMsg: "api_key",
		},
		{
			name:    "refresh interval too short",
			mutate:  func(c *Config) { c.Render.RefreshInterval = time.Second },
			wantMsg: "too short",
		},
		{
			name:    "empty service list",
			mutate:  func(c *Config) { c.Services = nil },
			wantMsg: "No services configured",
		},
		{
			name:    "missing id",
			mutate:  func(c *Config) { c.Services[0].ID = "" },
			wantMsg: "missing the 'id'",
		},
		{
			name:    "duplicate id",
			mutate:  func(c *Config) { c.Services[1].ID = "srv-1"; c.Services[1].Aliases = []string{"other"} },
			wantMsg: "more than once",
		},
		{
			name:    "no aliases",
			mutate:  func(c *Config) { c.Services[1].Aliases = nil },
			wantMsg: "no aliases",
		},
		{
			name:    "empty alias",
			mutate:  func(c *Config) { c.Services[1].Aliases = []string{" "} },
			wantMsg: "empty alias",
		},
		{
			name:    "duplicate alias across services",
			mutate:  func(c *Config) { c.Services[1].Aliases = []string{"CHAT"} },
			wantMsg: "used by both",
		},
		{
			name:    "negative priority",
			mutate:  func(c *Config) { c.Services[0].Priority = -1 },
			wantMsg: "negative priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig), "expected CONFIG error, got: %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateAliasUniquenessIsCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Services[0].Aliases = []string{"Chat"}
	cfg.Services[1].Aliases = []string{"chat"}

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "used by both")
}
