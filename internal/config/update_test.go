package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const updateFixture = `# rdash configuration
render:
  api_key: ${RENDER_API_KEY}
  refresh_interval: 30s
services:
  - id: srv-existing
    name: Existing
    aliases: [ex]
    priority: 1
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(updateFixture), 0644))
	return path
}

func TestAddService(t *testing.T) {
	path := writeFixture(t)

	err := AddService(path, Service{
		ID:      "srv-new",
		Name:    "New Service",
		Aliases: []string{"new", "svc"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "srv-new")
	assert.Contains(t, content, "New Service")
	// Structure edits preserve the comment header
	assert.Contains(t, content, "# rdash configuration")
	// Env reference must not get expanded by a rewrite
	assert.Contains(t, content, "${RENDER_API_KEY}")

	t.Setenv("RENDER_API_KEY", "rnd_test")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Services, 2)
	assert.Equal(t, []string{"new", "svc"}, cfg.Services[1].Aliases)
	assert.Equal(t, DefaultPriority, cfg.Services[1].Priority)
}

func TestAddServiceDuplicate(t *testing.T) {
	path := writeFixture(t)

	err := AddService(path, Service{ID: "srv-existing", Aliases: []string{"dup"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already configured")
}

func TestAddServiceCreatesServicesSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("render:\n  api_key: rnd_x\n"), 0644))

	err := AddService(path, Service{ID: "srv-first", Name: "First", Aliases: []string{"one"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "services:")
	assert.Contains(t, string(data), "srv-first")
}

func TestRemoveService(t *testing.T) {
	path := writeFixture(t)

	require.NoError(t, RemoveService(path, "srv-existing"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "srv-existing")
}

func TestRemoveServiceNotFound(t *testing.T) {
	path := writeFixture(t)

	err := RemoveService(path, "srv-missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
