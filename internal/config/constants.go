// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
)

// =============================================================================
// Canvas Scale
// =============================================================================

const (
	// DefaultCellWidth is how many canvas units one terminal column covers.
	// A 200 unit artwork is 8 columns wide.
	DefaultCellWidth = 25

	// DefaultCellHeight is how many canvas units one terminal row covers.
	// Rows are about twice as tall as columns are wide, so a 200 unit
	// artwork is 4 rows tall and stays roughly square on screen.
	DefaultCellHeight = 50

	// MinCellSize is the smallest accepted cell scale.
	MinCellSize = 1

	// MaxCellSize is the largest accepted cell scale.
	MaxCellSize = 200
)

// =============================================================================
// Canvas Physics
// =============================================================================

const (
	// DefaultFriction is the per-frame velocity decay while coasting.
	DefaultFriction = 0.95

	// DefaultMinVelocity stops coasting below this speed.
	DefaultMinVelocity = 0.1

	// DefaultMomentumThreshold is the release speed needed to coast.
	DefaultMomentumThreshold = 1.0

	// DefaultClickThreshold is the drag distance, in canvas units, below
	// which a gesture counts as a click.
	DefaultClickThreshold = 10.0

	// DefaultFrameInterval is the nominal coasting frame.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultReleaseWindow drops the fling of a release that comes this long
	// after the last motion report. Terminals report nothing while the
	// pointer is held still.
	DefaultReleaseWindow = 120 * time.Millisecond

	// MaxReleaseWindowMS bounds canvas.release_window_ms.
	MaxReleaseWindowMS = 2000

	// DefaultCullBuffer extends the visible region on every side.
	DefaultCullBuffer = 500.0

	// KeyboardNudge is the velocity, in canvas units per frame, given by one
	// arrow key press.
	KeyboardNudge = 40.0
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// NotificationDuration is how long notifications remain visible.
	NotificationDuration = 2500 * time.Millisecond

	// NotificationFadeOutDuration is the fade out duration for notifications.
	NotificationFadeOutDuration = 500 * time.Millisecond

	// StatsUpdateInterval is the interval between process stat samples.
	StatsUpdateInterval = time.Second

	// DefaultRequestTimeout bounds one museum API request.
	DefaultRequestTimeout = 10 * time.Second

	// MaxRequestTimeout is the largest accepted request timeout.
	MaxRequestTimeout = 2 * time.Minute
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// StatusBarHeight is the height of the status line at the bottom.
	StatusBarHeight = 1

	// DetailMaxWidth is the widest the detail panel grows.
	DetailMaxWidth = 76

	// DetailMinWidth is the narrowest usable detail panel.
	DetailMinWidth = 30

	// LogViewerWidth is the width of the log viewer overlay.
	LogViewerWidth = 80

	// MaxNotificationWidth is the maximum width of notification messages.
	MaxNotificationWidth = 60

	// MinNotificationWidth is the minimum width of notification messages.
	MinNotificationWidth = 20

	// NotificationMargin is the margin from screen edge for notifications.
	NotificationMargin = 2

	// NotificationSpacing is the vertical spacing between notifications.
	NotificationSpacing = 4

	// MaxVisibleNotifications is the maximum number of notifications shown at once.
	MaxVisibleNotifications = 3

	// LabelRows is how many rows under an artwork carry its title.
	LabelRows = 1

	// TagPromptWidth is the width of the tag filter prompt.
	TagPromptWidth = 40
)

// =============================================================================
// Notification Icons (ASCII-safe)
// =============================================================================

const (
	// NotificationIconError is the error notification icon
	NotificationIconError = "[X]"

	// NotificationIconWarning is the warning notification icon
	NotificationIconWarning = "[!]"

	// NotificationIconSuccess is the success notification icon
	NotificationIconSuccess = "[OK]"

	// NotificationIconInfo is the info notification icon
	NotificationIconInfo = "[i]"
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the maximum number of log messages to keep in memory.
	MaxLogMessages = 100

	// ThumbnailCacheSize is how many decoded thumbnails are kept.
	ThumbnailCacheSize = 512

	// ThumbnailParallel bounds concurrent thumbnail downloads.
	ThumbnailParallel = 6

	// MaxTagLength caps the tag filter prompt input.
	MaxTagLength = 64
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexArtwork is the z-index for artwork cells.
	ZIndexArtwork = 0

	// ZIndexHover is the z-index for the artwork under the pointer.
	ZIndexHover = 10

	// ZIndexStatus is the z-index for the status bar.
	ZIndexStatus = 1000

	// ZIndexEmpty is the z-index for the empty state panel.
	ZIndexEmpty = 1000

	// ZIndexDetail is the z-index for the detail panel.
	ZIndexDetail = 1001

	// ZIndexHelp is the z-index for the help overlay.
	ZIndexHelp = 1002

	// ZIndexLogs is the z-index for the log viewer overlay.
	ZIndexLogs = 1002

	// ZIndexDebug is the z-index for the debug overlay.
	ZIndexDebug = 1003

	// ZIndexPrompt is the z-index for the tag prompt.
	ZIndexPrompt = 1004

	// ZIndexNotifications is the z-index for notifications.
	ZIndexNotifications = 2000
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSSHPort is the default SSH server port
	DefaultSSHPort = "2222"

	// DefaultSSHHost is the default SSH server host
	DefaultSSHHost = "localhost"

	// DefaultWebPort is the default browser terminal port
	DefaultWebPort = "7681"

	// DefaultWebHost is the default browser terminal host
	DefaultWebHost = "localhost"

	// DefaultTerminalWidth is the fallback terminal width when screen size unknown
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is the fallback terminal height when screen size unknown
	DefaultTerminalHeight = 24

	// DefaultSnapshotWidth is the default PNG snapshot width in pixels.
	DefaultSnapshotWidth = 1600

	// DefaultSnapshotHeight is the default PNG snapshot height in pixels.
	DefaultSnapshotHeight = 900
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// ShowLabels controls whether titles are drawn under artworks
// Set via --no-labels flag or appearance.show_labels config
var ShowLabels = true

// ShowThumbnails controls whether artwork thumbnails are downloaded and drawn
// Set via --no-thumbnails flag or appearance.show_thumbnails config
var ShowThumbnails = true

// HideStatus controls whether the status bar is hidden
// Set via appearance.hide_status config
var HideStatus = false

// DebugOverlay controls whether the debug overlay starts open
// Set via --debug flag
var DebugOverlay = false

// CellWidth is the canvas units covered by one terminal column
var CellWidth = DefaultCellWidth

// CellHeight is the canvas units covered by one terminal row
var CellHeight = DefaultCellHeight

// CullBuffer is the culling margin in canvas units
var CullBuffer = DefaultCullBuffer

// Physics holds the drag engine parameters in effect
var Physics = DefaultPhysics()

// DefaultPhysics returns the stock engine parameters.
func DefaultPhysics() drag.Params {
	return drag.Params{
		Friction:          DefaultFriction,
		MinVelocity:       DefaultMinVelocity,
		MomentumThreshold: DefaultMomentumThreshold,
		ClickThreshold:    DefaultClickThreshold,
		FrameInterval:     DefaultFrameInterval,
		ReleaseWindow:     DefaultReleaseWindow,
	}
}

// GetFPS returns the coasting frame rate implied by the frame interval.
func GetFPS() int {
	if Physics.FrameInterval <= 0 {
		return int(time.Second / DefaultFrameInterval)
	}
	return int(time.Second / Physics.FrameInterval)
}
