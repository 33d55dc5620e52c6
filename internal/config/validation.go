package config

import (
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/tuiseum/internal/logging"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

// ValidationIssue is one problem found in a config file.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

// ValidationResult collects errors, which abort startup, and warnings, which
// are printed and then ignored.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any error was found.
func (r ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (r ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks value ranges and names in cfg.
func ValidateConfig(cfg *UserConfig) ValidationResult {
	var r ValidationResult

	c := cfg.Canvas
	if c.Friction <= 0 || c.Friction >= 1 {
		r.errorf("canvas", "friction", "must be between 0 and 1 (exclusive), got %v", c.Friction)
	} else if c.Friction < 0.5 {
		r.warnf("canvas", "friction", "%v stops momentum almost immediately", c.Friction)
	}
	if c.MinVelocity <= 0 {
		r.errorf("canvas", "min_velocity", "must be positive, got %v", c.MinVelocity)
	}
	if c.MomentumThreshold <= 0 {
		r.errorf("canvas", "momentum_threshold", "must be positive, got %v", c.MomentumThreshold)
	}
	if c.ClickThreshold <= 0 {
		r.errorf("canvas", "click_threshold", "must be positive, got %v", c.ClickThreshold)
	}
	if c.FrameIntervalMS < 4 || c.FrameIntervalMS > 100 {
		r.errorf("canvas", "frame_interval_ms", "must be between 4 and 100, got %d", c.FrameIntervalMS)
	}
	if c.ReleaseWindowMS < -1 || c.ReleaseWindowMS > MaxReleaseWindowMS {
		r.errorf("canvas", "release_window_ms", "must be -1 (off) or between 1 and %d, got %d", MaxReleaseWindowMS, c.ReleaseWindowMS)
	}
	if c.CullBuffer < 0 {
		r.errorf("canvas", "cull_buffer", "must not be negative, got %v", c.CullBuffer)
	}
	if c.CellWidth < MinCellSize || c.CellWidth > MaxCellSize {
		r.errorf("canvas", "cell_width", "must be between %d and %d, got %d", MinCellSize, MaxCellSize, c.CellWidth)
	}
	if c.CellHeight < MinCellSize || c.CellHeight > MaxCellSize {
		r.errorf("canvas", "cell_height", "must be between %d and %d, got %d", MinCellSize, MaxCellSize, c.CellHeight)
	}

	m := cfg.Museums
	id, err := museum.ParseCollection(m.DefaultCollection)
	switch {
	case err != nil:
		r.errorf("museums", "default_collection", "unknown collection %q", m.DefaultCollection)
	case id == museum.HarvardID && cfg.HarvardKey() == "":
		r.warnf("museums", "default_collection", "harvard needs harvard_api_key, curated works will be shown instead")
	}
	if m.RequestTimeoutSeconds < 0 || m.RequestTimeoutSeconds > int(MaxRequestTimeout.Seconds()) {
		r.errorf("museums", "request_timeout_seconds", "must be between 1 and %d, got %d", int(MaxRequestTimeout.Seconds()), m.RequestTimeoutSeconds)
	}

	if !logging.ValidLevel(cfg.Log.Level) {
		r.errorf("log", "level", "unknown level %q (use debug, info, warn or error)", cfg.Log.Level)
	}

	actions := Actions()
	seen := make(map[string]string)
	keys := make([]string, 0, len(cfg.Keybindings))
	for action := range cfg.Keybindings {
		keys = append(keys, action)
	}
	slices.Sort(keys)
	for _, action := range keys {
		if !slices.Contains(actions, action) {
			r.warnf("keybindings", action, "unknown action, ignored")
			continue
		}
		for _, key := range cfg.Keybindings[action] {
			key = normalizeKey(key)
			if key == "" {
				r.errorf("keybindings", action, "empty key")
				continue
			}
			if other, ok := seen[key]; ok && other != action {
				r.warnf("keybindings", action, "key %q is also bound to %s", key, other)
				continue
			}
			seen[key] = action
		}
	}

	return r
}
