package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.DisplayWidth)
	assert.Equal(t, 600, cfg.DisplayHeight)
	assert.Equal(t, 150.0, cfg.LensSize)
	assert.Equal(t, 2.5, cfg.LensZoom)
	assert.Equal(t, 50, cfg.GridSpacing)
	assert.True(t, cfg.Grid)
	assert.True(t, cfg.HoverTracking)
	assert.Equal(t, 5.0, cfg.MinCommitDistance)
	assert.False(t, cfg.Debug())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCAN_OVERLAY_LOG_LEVEL", "DEBUG")
	t.Setenv("SCAN_OVERLAY_DISPLAY_WIDTH", "1024")
	t.Setenv("SCAN_OVERLAY_LENS_ZOOM", "4")
	t.Setenv("SCAN_OVERLAY_GRID", "false")
	t.Setenv("SCAN_OVERLAY_HOVER_TRACKING", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.DisplayWidth)
	assert.Equal(t, 4.0, cfg.LensZoom)
	assert.False(t, cfg.Grid)
	assert.False(t, cfg.HoverTracking)
	assert.True(t, cfg.Debug())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric width", "SCAN_OVERLAY_DISPLAY_WIDTH", "wide"},
		{"non-numeric zoom", "SCAN_OVERLAY_LENS_ZOOM", "x2"},
		{"bad bool", "SCAN_OVERLAY_GRID", "maybe"},
		{"zero zoom", "SCAN_OVERLAY_LENS_ZOOM", "0"},
		{"negative spacing", "SCAN_OVERLAY_GRID_SPACING", "-10"},
		{"negative commit distance", "SCAN_OVERLAY_MIN_COMMIT_DISTANCE", "-1"},
		{"oversized display width", "SCAN_OVERLAY_DISPLAY_WIDTH", "100000"},
		{"oversized lens", "SCAN_OVERLAY_LENS_SIZE", "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
