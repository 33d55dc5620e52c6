package config

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ThemeName is the theme to load
	ThemeName string

	// Friction overrides canvas.friction (0 means use config)
	Friction float64

	// MinVelocity overrides canvas.min_velocity (0 means use config)
	MinVelocity float64

	// NoLabels hides titles under artworks
	NoLabels bool

	// NoThumbnails disables thumbnail downloads
	NoThumbnails bool

	// Debug opens the debug overlay at startup
	Debug bool

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons
	ASCIIOnly bool
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, the built-in defaults stand in for it. The returned
// error only reports a theme that could not be loaded; every other setting is
// still applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) error {
	if userConfig == nil {
		userConfig = DefaultConfig()
	}
	a := userConfig.Appearance

	// Labels and thumbnails - a CLI flag can only turn them off
	ShowLabels = a.ShowLabels == nil || *a.ShowLabels
	if overrides.NoLabels {
		ShowLabels = false
	}
	ShowThumbnails = a.ShowThumbnails == nil || *a.ShowThumbnails
	if overrides.NoThumbnails {
		ShowThumbnails = false
	}
	HideStatus = a.HideStatus
	UseASCIIOnly = a.ASCIIOnly || overrides.ASCIIOnly
	DebugOverlay = overrides.Debug

	// Physics - CLI flag takes precedence, otherwise use user config
	p := userConfig.Physics()
	if overrides.Friction > 0 && overrides.Friction < 1 {
		p.Friction = overrides.Friction
	}
	if overrides.MinVelocity > 0 {
		p.MinVelocity = overrides.MinVelocity
	}
	if p.FrameInterval <= 0 {
		p.FrameInterval = DefaultFrameInterval
	}
	if p.FrameInterval < 4*time.Millisecond {
		p.FrameInterval = 4 * time.Millisecond
	}
	Physics = p

	CellWidth = clampCell(userConfig.Canvas.CellWidth, DefaultCellWidth)
	CellHeight = clampCell(userConfig.Canvas.CellHeight, DefaultCellHeight)
	CullBuffer = max(userConfig.Canvas.CullBuffer, 0)

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" {
		themeName = a.Theme
	}
	if err := theme.Initialize(themeName); err != nil {
		return fmt.Errorf("failed to load theme %q: %w", themeName, err)
	}
	return nil
}

func clampCell(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return min(max(v, MinCellSize), MaxCellSize)
}
