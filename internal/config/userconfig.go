package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
)

// ConfigRelPath is the config file location relative to $XDG_CONFIG_HOME.
const ConfigRelPath = "tuiseum/config.toml"

// HarvardKeyEnv overrides museums.harvard_api_key when set.
const HarvardKeyEnv = "TUISEUM_HARVARD_KEY"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Canvas      CanvasConfig        `toml:"canvas"`
	Museums     MuseumsConfig       `toml:"museums"`
	Log         LogConfig           `toml:"log"`
	Keybindings map[string][]string `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme          string `toml:"theme"`           // Color theme name (e.g., dracula, nord, my-custom-theme)
	ShowLabels     *bool  `toml:"show_labels"`     // Draw titles under artworks (default: true)
	ShowThumbnails *bool  `toml:"show_thumbnails"` // Download and draw thumbnails (default: true)
	HideStatus     bool   `toml:"hide_status"`     // Hide the status bar (default: false)
	ASCIIOnly      bool   `toml:"ascii_only"`      // Plain text instead of Nerd Font icons (default: false)
}

// CanvasConfig holds the pan and momentum tuning
type CanvasConfig struct {
	Friction          float64 `toml:"friction"`           // Velocity kept per frame while coasting (default: 0.95)
	MinVelocity       float64 `toml:"min_velocity"`       // Coasting stops below this speed (default: 0.1)
	MomentumThreshold float64 `toml:"momentum_threshold"` // Release speed needed to coast (default: 1.0)
	ClickThreshold    float64 `toml:"click_threshold"`    // Drag distance that still counts as a click (default: 10)
	FrameIntervalMS   int     `toml:"frame_interval_ms"`  // Coasting frame in milliseconds (default: 16)
	ReleaseWindowMS   int     `toml:"release_window_ms"`  // Pause before release that cancels a fling, -1 disables (default: 120)
	CullBuffer        float64 `toml:"cull_buffer"`        // Offscreen margin kept when culling (default: 500)
	CellWidth         int     `toml:"cell_width"`         // Canvas units per terminal column (default: 25)
	CellHeight        int     `toml:"cell_height"`        // Canvas units per terminal row (default: 50)
}

// MuseumsConfig holds data provider settings
type MuseumsConfig struct {
	DefaultCollection     string `toml:"default_collection"`      // Collection used when nothing is persisted (default: met-design)
	HarvardAPIKey         string `toml:"harvard_api_key"`         // Harvard Art Museums key; TUISEUM_HARVARD_KEY overrides
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // Per-request timeout (default: 10)
	UserAgent             string `toml:"user_agent"`              // User-Agent sent to museum APIs
}

// LogConfig holds structured log settings
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error (default: info)
	File  string `toml:"file"`  // Log file path (default: $XDG_STATE_HOME/tuiseum/tuiseum.log)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	show := true
	thumbs := true
	return &UserConfig{
		Appearance: AppearanceConfig{
			ShowLabels:     &show,
			ShowThumbnails: &thumbs,
		},
		Canvas: CanvasConfig{
			Friction:          DefaultFriction,
			MinVelocity:       DefaultMinVelocity,
			MomentumThreshold: DefaultMomentumThreshold,
			ClickThreshold:    DefaultClickThreshold,
			FrameIntervalMS:   int(DefaultFrameInterval / time.Millisecond),
			ReleaseWindowMS:   int(DefaultReleaseWindow / time.Millisecond),
			CullBuffer:        DefaultCullBuffer,
			CellWidth:         DefaultCellWidth,
			CellHeight:        DefaultCellHeight,
		},
		Museums: MuseumsConfig{
			DefaultCollection:     "met-design",
			RequestTimeoutSeconds: int(DefaultRequestTimeout / time.Second),
		},
		Log: LogConfig{
			Level: "info",
		},
		Keybindings: DefaultKeybindings(),
	}
}

// Physics returns the drag engine parameters described by the canvas section.
func (c *UserConfig) Physics() drag.Params {
	return drag.Params{
		Friction:          c.Canvas.Friction,
		MinVelocity:       c.Canvas.MinVelocity,
		MomentumThreshold: c.Canvas.MomentumThreshold,
		ClickThreshold:    c.Canvas.ClickThreshold,
		FrameInterval:     time.Duration(c.Canvas.FrameIntervalMS) * time.Millisecond,
		ReleaseWindow:     time.Duration(max(c.Canvas.ReleaseWindowMS, 0)) * time.Millisecond,
	}
}

// RequestTimeout returns the per-request timeout for museum APIs.
func (c *UserConfig) RequestTimeout() time.Duration {
	if c.Museums.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.Museums.RequestTimeoutSeconds) * time.Second
}

// HarvardKey returns the Harvard API key, preferring the environment.
func (c *UserConfig) HarvardKey() string {
	if key := strings.TrimSpace(os.Getenv(HarvardKeyEnv)); key != "" {
		return key
	}
	return strings.TrimSpace(c.Museums.HarvardAPIKey)
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(ConfigRelPath)
	if err != nil {
		// Config doesn't exist, create default
		path, err := xdg.ConfigFile(ConfigRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		return createDefaultConfig(path)
	}
	return LoadUserConfigFrom(configPath, os.Stderr)
}

// LoadUserConfigFrom reads the config at path, creating a default file if it
// does not exist. Validation errors and warnings are written to diag.
func LoadUserConfigFrom(path string, diag io.Writer) (*UserConfig, error) {
	// #nosec G304 - path is the user's config file, reading it is intentional
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return createDefaultConfig(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingCanvas(&cfg, defaultCfg)
	fillMissingMuseums(&cfg, defaultCfg)
	fillMissingLog(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if diag == nil {
		diag = io.Discard
	}
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			_, _ = fmt.Fprintf(diag, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, warn := range validation.Warnings {
		_, _ = fmt.Fprintf(diag, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
	}

	return &cfg, nil
}

// createDefaultConfig writes a commented default config file to path
func createDefaultConfig(path string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuiseum configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# For keybindings documentation, run: tuiseum keybinds\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# theme: Color theme name (e.g., dracula, nord, my-custom-theme)\n")
	sb.WriteString("#   Leave empty to use standard terminal colors. CLI flag --theme overrides this.\n")
	sb.WriteString("#   Custom themes: ~/.config/tuiseum/themes/*.json\n")
	sb.WriteString("# show_labels / show_thumbnails / hide_status: true or false\n")
	sb.WriteString("# ascii_only: Use plain text instead of Nerd Font icons. CLI flag --ascii-only overrides this.\n")
	sb.WriteString("#\n")
	sb.WriteString("# CANVAS\n")
	sb.WriteString("# friction: Velocity kept per frame while coasting, between 0 and 1 (default: 0.95)\n")
	sb.WriteString("# min_velocity: Coasting stops below this speed (default: 0.1)\n")
	sb.WriteString("# momentum_threshold: Release speed needed to start coasting (default: 1.0)\n")
	sb.WriteString("# click_threshold: Drag distance that still counts as a click (default: 10)\n")
	sb.WriteString("# frame_interval_ms: Coasting frame, 4 to 100 (default: 16)\n")
	sb.WriteString("# release_window_ms: A release this long after the last motion does not fling, -1 disables (default: 120)\n")
	sb.WriteString("# cell_width / cell_height: Canvas units per terminal column / row\n")
	sb.WriteString("#\n")
	sb.WriteString("# MUSEUMS\n")
	sb.WriteString("# default_collection: art-institute, met-design, harvard, cleveland\n")
	sb.WriteString("# harvard_api_key: https://harvardartmuseums.org/collections/api ($" + HarvardKeyEnv + " overrides)\n")
	sb.WriteString("#\n")
	sb.WriteString("# LOG\n")
	sb.WriteString("# level: debug, info, warn, error\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfg, nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.ShowLabels == nil {
		cfg.Appearance.ShowLabels = defaultCfg.Appearance.ShowLabels
	}
	if cfg.Appearance.ShowThumbnails == nil {
		cfg.Appearance.ShowThumbnails = defaultCfg.Appearance.ShowThumbnails
	}
}

// fillMissingCanvas fills zero canvas values with defaults. Out of range values
// are left for ValidateConfig to report.
func fillMissingCanvas(cfg, defaultCfg *UserConfig) {
	c, d := &cfg.Canvas, defaultCfg.Canvas
	if c.Friction == 0 {
		c.Friction = d.Friction
	}
	if c.MinVelocity == 0 {
		c.MinVelocity = d.MinVelocity
	}
	if c.MomentumThreshold == 0 {
		c.MomentumThreshold = d.MomentumThreshold
	}
	if c.ClickThreshold == 0 {
		c.ClickThreshold = d.ClickThreshold
	}
	if c.FrameIntervalMS == 0 {
		c.FrameIntervalMS = d.FrameIntervalMS
	}
	if c.ReleaseWindowMS == 0 {
		c.ReleaseWindowMS = d.ReleaseWindowMS
	}
	if c.CullBuffer == 0 {
		c.CullBuffer = d.CullBuffer
	}
	if c.CellWidth == 0 {
		c.CellWidth = d.CellWidth
	}
	if c.CellHeight == 0 {
		c.CellHeight = d.CellHeight
	}
}

// fillMissingMuseums fills in any missing provider settings with defaults
func fillMissingMuseums(cfg, defaultCfg *UserConfig) {
	if cfg.Museums.DefaultCollection == "" {
		cfg.Museums.DefaultCollection = defaultCfg.Museums.DefaultCollection
	}
	if cfg.Museums.RequestTimeoutSeconds == 0 {
		cfg.Museums.RequestTimeoutSeconds = defaultCfg.Museums.RequestTimeoutSeconds
	}
}

// fillMissingLog fills in any missing log settings with defaults
func fillMissingLog(cfg, defaultCfg *UserConfig) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultCfg.Log.Level
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings, defaultCfg.Keybindings)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(ConfigRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(ConfigRelPath)
	}
	return path, nil
}

// ResetConfig overwrites the config at path with the defaults.
func ResetConfig(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}
	_, err := createDefaultConfig(path)
	return err
}
