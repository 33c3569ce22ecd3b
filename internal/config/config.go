// Package config loads viewer settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over values from the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/scan-overlay-mcp/internal/overlay"
)

// Config holds the viewer session configuration
type Config struct {
	// LogLevel is "debug" to enable debug output; anything else means info.
	LogLevel string

	// DisplayWidth is the logical width the surface is synced to when an image
	// is mounted without an explicit size.
	DisplayWidth int

	// DisplayHeight is the surface height used before any image is mounted.
	DisplayHeight int

	// Magnifier lens
	LensSize float64
	LensZoom float64

	// Grid layer
	Grid        bool
	GridSpacing int

	HoverTracking bool

	// MinCommitDistance is the pixel distance a gesture must exceed to commit.
	MinCommitDistance float64
}

// Load reads configuration from .env (if any) and the process environment
func Load() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	var errs []string
	cfg := &Config{
		LogLevel:          getEnvOrDefault("SCAN_OVERLAY_LOG_LEVEL", "info"),
		DisplayWidth:      getEnvAsIntOrDefault("SCAN_OVERLAY_DISPLAY_WIDTH", 800, &errs),
		DisplayHeight:     getEnvAsIntOrDefault("SCAN_OVERLAY_DISPLAY_HEIGHT", 600, &errs),
		LensSize:          getEnvAsFloatOrDefault("SCAN_OVERLAY_LENS_SIZE", 150, &errs),
		LensZoom:          getEnvAsFloatOrDefault("SCAN_OVERLAY_LENS_ZOOM", 2.5, &errs),
		Grid:              getEnvAsBoolOrDefault("SCAN_OVERLAY_GRID", true, &errs),
		GridSpacing:       getEnvAsIntOrDefault("SCAN_OVERLAY_GRID_SPACING", 50, &errs),
		HoverTracking:     getEnvAsBoolOrDefault("SCAN_OVERLAY_HOVER_TRACKING", true, &errs),
		MinCommitDistance: getEnvAsFloatOrDefault("SCAN_OVERLAY_MIN_COMMIT_DISTANCE", 5, &errs),
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that cannot be expressed by parsing alone
func (c *Config) Validate() error {
	if err := overlay.CheckSurface(c.DisplayWidth, c.DisplayHeight); err != nil {
		return fmt.Errorf("display size must be between 0 and %d (got %dx%d)",
			overlay.MaxSurfaceDimension, c.DisplayWidth, c.DisplayHeight)
	}
	if c.LensSize <= 0 {
		return fmt.Errorf("lens size must be positive (got %v)", c.LensSize)
	}
	if err := overlay.CheckLens(c.LensSize, c.LensZoom); err != nil {
		return err
	}
	if c.GridSpacing <= 0 {
		return fmt.Errorf("grid spacing must be positive (got %d)", c.GridSpacing)
	}
	if c.MinCommitDistance < 0 {
		return fmt.Errorf("minimum commit distance must not be negative (got %v)", c.MinCommitDistance)
	}
	return nil
}

// Debug reports whether debug logging was requested
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int, errs *[]string) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %v", key, err))
		return defaultValue
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultValue float64, errs *[]string) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %v", key, err))
		return defaultValue
	}
	return f
}

func getEnvAsBoolOrDefault(key string, defaultValue bool, errs *[]string) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %v", key, err))
		return defaultValue
	}
	return b
}
