package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/rdash/internal/render"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"just now", now, "0s ago"},
		{"seconds", now.Add(-5 * time.Second), "5s ago"},
		{"minutes", now.Add(-3 * time.Minute), "3m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days", now.Add(-4 * 24 * time.Hour), "4d ago"},
		{"future clamps to zero", now.Add(10 * time.Second), "0s ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.t, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "", Truncate("hello", 0))
	// Rune-aware, not byte-aware.
	assert.Equal(t, "héll…", Truncate("héllo world", 5))
}

func TestStateSymbol(t *testing.T) {
	assert.Equal(t, SymbolRunning, StateSymbol(render.StateRunning))
	assert.Equal(t, SymbolDeploying, StateSymbol(render.StateDeploying))
	assert.Equal(t, SymbolSuspended, StateSymbol(render.StateSuspended))
	assert.Equal(t, SymbolFailed, StateSymbol(render.StateFailed))
	assert.Equal(t, SymbolUnknown, StateSymbol(render.StateUnknown))
}

func TestStateColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, StateColor(render.StateRunning))
	assert.Equal(t, ColorError, StateColor(render.StateFailed))
	assert.Equal(t, ColorMuted, StateColor(render.StateUnknown))
}

func TestRelativeTimeZero(t *testing.T) {
	assert.Equal(t, "never", RelativeTime(time.Time{}))
}
