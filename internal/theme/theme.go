// Package theme provides color themes and styling for the tuiseum gallery.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/tags"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// An empty name disables theming and the gallery uses its built-in colors.
// An unknown name falls back to the default tint and is reported as an error.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			logger.Warn("loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Names lists every registered theme ID, custom themes included.
func Names() []string {
	tint.NewDefaultRegistry()
	if dir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(dir)
	}
	return tint.TintIDs()
}

// pick returns the themed color chosen by f, or fallback when theming is off.
func pick(fallback string, f func(*tint.Tint) *tint.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := f(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// CanvasBg is the background behind the artworks.
func CanvasBg() color.Color {
	return pick("#101014", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// CanvasFg is the default text color on the canvas.
func CanvasFg() color.Color {
	return pick("#d8d8d8", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// ArtworkHover outlines the artwork under the pointer.
func ArtworkHover() color.Color {
	return pick("#f2c14e", func(t *tint.Tint) *tint.Color { return t.BrightYellow })
}

// LabelFg is used for titles under artworks.
func LabelFg() color.Color {
	return pick("#bdbdbd", func(t *tint.Tint) *tint.Color { return t.White })
}

// LabelDim is used for the byline under a title.
func LabelDim() color.Color {
	return pick("#6c6c74", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// StatusBarBg returns the status line background.
func StatusBarBg() color.Color {
	return lipgloss.Color("#1d1d26")
}

// StatusBarFg returns the status line text color.
func StatusBarFg() color.Color {
	return pick("#a0a0a8", func(t *tint.Tint) *tint.Color { return t.White })
}

// StatusAccent highlights the collection name in the status line.
func StatusAccent() color.Color {
	return pick("#7fd1b9", func(t *tint.Tint) *tint.Color { return t.BrightCyan })
}

// StatusFilter highlights an active tag filter.
func StatusFilter() color.Color {
	return pick("#f2c14e", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// DetailBorder returns the detail panel border color.
func DetailBorder() color.Color {
	return pick("#7fd1b9", func(t *tint.Tint) *tint.Color { return t.Cyan })
}

// DetailTitle returns the artwork title color in the detail panel.
func DetailTitle() color.Color {
	return pick("#ffffff", func(t *tint.Tint) *tint.Color { return t.BrightWhite })
}

// DetailMeta returns the color of the artist, date and medium lines.
func DetailMeta() color.Color {
	return pick("#9a9aa6", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// DetailText returns the description color.
func DetailText() color.Color {
	return pick("#d8d8d8", func(t *tint.Tint) *tint.Color { return t.Fg })
}

// DetailLink returns the color of the object link.
func DetailLink() color.Color {
	return pick("#5c9cff", func(t *tint.Tint) *tint.Color { return t.BrightBlue })
}

// Tag returns the chip color for a tag category.
func Tag(c tags.Category) color.Color {
	switch c {
	case tags.Medium:
		return pick("#e0795b", func(t *tint.Tint) *tint.Color { return t.Red })
	case tags.Type:
		return pick("#5c9cff", func(t *tint.Tint) *tint.Color { return t.Blue })
	case tags.Style:
		return pick("#c678dd", func(t *tint.Tint) *tint.Color { return t.Purple })
	case tags.Subject:
		return pick("#98c379", func(t *tint.Tint) *tint.Color { return t.Green })
	case tags.Culture:
		return pick("#e5c07b", func(t *tint.Tint) *tint.Color { return t.Yellow })
	default:
		return pick("#56b6c2", func(t *tint.Tint) *tint.Color { return t.Cyan })
	}
}

// TagFg is the text color drawn on a tag chip.
func TagFg() color.Color {
	return lipgloss.Color("#101014")
}

// NotificationError returns the color for error notifications.
func NotificationError() color.Color {
	return pick("#cd0000", func(t *tint.Tint) *tint.Color { return t.Red })
}

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color {
	return pick("#00cd00", func(t *tint.Tint) *tint.Color { return t.Green })
}

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color {
	return pick("#5c9cff", func(t *tint.Tint) *tint.Color { return t.Blue })
}

// NotificationBg returns the background color for notifications.
func NotificationBg() color.Color {
	return pick("#000000", func(t *tint.Tint) *tint.Color { return t.Bg })
}

// EmptyState colors the "nothing found" panel.
func EmptyState() color.Color {
	return pick("#9a9aa6", func(t *tint.Tint) *tint.Color { return t.BrightBlack })
}

// PromptBorder returns the tag prompt border color.
func PromptBorder() color.Color {
	return pick("#f2c14e", func(t *tint.Tint) *tint.Color { return t.Yellow })
}

// HelpKeyBadge returns the color for key badges in help menu.
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

// HelpGray returns the gray color for help menu elements.
func HelpGray() color.Color {
	return lipgloss.Color("8")
}

// HelpBorder returns the border color for help menu.
func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

// HelpSection returns the color of section titles in the help menu.
func HelpSection() color.Color {
	return lipgloss.Color("12")
}

// LogViewerTitle returns the color for log viewer title.
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

// LogViewerError returns the color for error log entries.
func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

// LogViewerWarn returns the color for warning log entries.
func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

// LogViewerInfo returns the color for info log entries.
func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

// LogViewerDebug returns the color for debug log entries.
func LogViewerDebug() color.Color {
	return lipgloss.Color("8")
}

// DebugFg colors the debug overlay.
func DebugFg() color.Color {
	return lipgloss.Color("10")
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a #rrggbb string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
