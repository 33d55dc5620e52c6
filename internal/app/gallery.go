// Package app provides the tuiseum gallery model: an infinite canvas of
// museum artworks driven by the drag engine and rendered as lipgloss layers.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/logging"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/state"
	"github.com/Gaurav-Gosain/tuiseum/internal/thumb"
	"github.com/Gaurav-Gosain/tuiseum/internal/tiling"
)

// Source loads collections and tag searches. *museum.Catalog implements it.
type Source interface {
	LoadCollection(ctx context.Context, id museum.CollectionID, n int) []museum.Item
	SearchByTag(ctx context.Context, from museum.CollectionID, tag string, scope museum.Scope, n int) []museum.Item
}

// Filter is an active tag filter.
type Filter struct {
	Tag   string
	Scope museum.Scope
	// From is the collection the filter started from; clearing the filter
	// reloads it.
	From museum.CollectionID
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // DEBUG, INFO, WARN, ERROR
	Message string
}

// Options configures New.
type Options struct {
	Source     Source
	Collection museum.CollectionID
	// Thumbs downloads thumbnails; nil disables them.
	Thumbs *thumb.Fetcher
	// Images is the image-load cache when Thumbs is nil. With a fetcher the
	// fetcher's cache is used. Nil means a fresh in-memory cache.
	Images imagecache.Cache
	State  *state.Store
	Logger *log.Logger
	Keys   *config.KeybindRegistry
	// OnActivate runs when an artwork is clicked or opened from the keyboard.
	// Nil opens the detail view.
	OnActivate func(g *Gallery, item museum.Item) tea.Cmd
	// SnapshotDir is where the snapshot action writes PNGs.
	SnapshotDir string
	SSHSession  ssh.Session
	// Context bounds the gallery's lifetime. Loads still running when it ends
	// are cancelled. Nil means context.Background.
	Context context.Context
}

// Gallery represents the main application state.
type Gallery struct {
	Width  int
	Height int

	Engine *drag.Engine

	Items      []museum.Item
	Collection museum.CollectionID
	Filter     *Filter
	Loading    bool
	// Loaded is false until the first dataset arrives.
	Loaded bool

	// Hover is the instance under the pointer, if any.
	Hover    tiling.Key
	HasHover bool

	Detail *DetailView
	Prompt *TagPrompt

	ShowHelp        bool
	ShowLogs        bool
	ShowDebug       bool
	LogMessages     []LogMessage
	LogScrollOffset int
	Notifications   []Notification

	KeybindRegistry *config.KeybindRegistry

	// SSH mode fields
	SSHSession ssh.Session
	IsSSHMode  bool

	Stats ProcessStats

	source      Source
	requestSeq  uint64
	cancelLoad  context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *log.Logger
	state       *state.Store
	fetcher     *thumb.Fetcher
	images      imagecache.Cache
	thumbs      *thumb.Renderer
	onActivate  func(g *Gallery, item museum.Item) tea.Cmd
	snapshotDir string
}

// New creates a gallery for opts. Nothing is fetched until Init runs.
func New(opts Options) *Gallery {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	g := &Gallery{
		Width:           config.DefaultTerminalWidth,
		Height:          config.DefaultTerminalHeight,
		Engine:          drag.New(config.Physics),
		Collection:      opts.Collection,
		ShowDebug:       config.DebugOverlay,
		KeybindRegistry: opts.Keys,
		SSHSession:      opts.SSHSession,
		IsSSHMode:       opts.SSHSession != nil,
		source:          opts.Source,
		ctx:             ctx,
		cancel:          cancel,
		logger:          opts.Logger,
		state:           opts.State,
		fetcher:         opts.Thumbs,
		images:          opts.Images,
		thumbs:          thumb.NewRenderer(0),
		onActivate:      opts.OnActivate,
		snapshotDir:     opts.SnapshotDir,
	}
	if g.Collection == "" {
		g.Collection = museum.DefaultCollection
	}
	if g.logger == nil {
		g.logger = logging.Nop()
	}
	if g.KeybindRegistry == nil {
		g.KeybindRegistry = config.NewKeybindRegistry(config.DefaultKeybindings())
	}
	if g.fetcher != nil {
		g.images = g.fetcher.Cache()
	}
	if g.images == nil {
		g.images = imagecache.NewMemory(config.ThumbnailCacheSize)
	}
	return g
}

// Context is cancelled by Cleanup or when the parent context ends.
func (g *Gallery) Context() context.Context {
	return g.ctx
}

// Images returns the injected image-load cache.
func (g *Gallery) Images() imagecache.Cache {
	return g.images
}

// RequestSeq returns the token of the most recent load.
func (g *Gallery) RequestSeq() uint64 {
	return g.requestSeq
}

// Log adds a new log message to the log buffer and mirrors it to the
// structured logger.
func (g *Gallery) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	_, maxScroll := LogScrollBounds(g.Height, len(g.LogMessages))
	wasAtBottom := g.LogScrollOffset >= maxScroll-2

	g.LogMessages = append(g.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(g.LogMessages) > config.MaxLogMessages {
		g.LogMessages = g.LogMessages[len(g.LogMessages)-config.MaxLogMessages:]
	}

	if g.ShowLogs && wasAtBottom {
		_, g.LogScrollOffset = LogScrollBounds(g.Height, len(g.LogMessages))
	}

	switch strings.ToUpper(level) {
	case "ERROR":
		g.logger.Error(message)
	case "WARN":
		g.logger.Warn(message)
	case "DEBUG":
		g.logger.Debug(message)
	default:
		g.logger.Info(message)
	}
}

// LogInfo logs an informational message.
func (g *Gallery) LogInfo(format string, args ...any) {
	g.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (g *Gallery) LogWarn(format string, args ...any) {
	g.Log("WARN", format, args...)
}

// LogError logs an error message.
func (g *Gallery) LogError(format string, args ...any) {
	g.Log("ERROR", format, args...)
}

// LogDebug logs a debug message.
func (g *Gallery) LogDebug(format string, args ...any) {
	g.Log("DEBUG", format, args...)
}

// LogScrollBounds computes the scrollable range for the log viewer overlay.
func LogScrollBounds(screenHeight, totalLogs int) (logsPerPage, maxScroll int) {
	maxDisplayHeight := max(screenHeight-8, 8)

	// title, blank, blank, hint
	fixedLines := 4
	if totalLogs > maxDisplayHeight-fixedLines {
		fixedLines = 6
	}
	logsPerPage = max(maxDisplayHeight-fixedLines, 1)
	maxScroll = max(totalLogs-logsPerPage, 0)
	return logsPerPage, maxScroll
}

// ShowNotification displays a temporary notification and logs it.
func (g *Gallery) ShowNotification(message, notifType string, duration time.Duration) {
	g.Notifications = append(g.Notifications, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		g.LogError("%s", message)
	case "warning":
		g.LogWarn("%s", message)
	default:
		g.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (g *Gallery) CleanupNotifications() {
	now := time.Now()
	active := g.Notifications[:0]
	for _, n := range g.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	g.Notifications = active
}

// CollectionName returns a display name for the active collection.
func (g *Gallery) CollectionName() string {
	c, err := museum.Lookup(g.Collection)
	if err != nil {
		return string(g.Collection)
	}
	return c.Name
}

// CanExpandScope reports whether the active filter can be widened to all
// collections.
func (g *Gallery) CanExpandScope() bool {
	return g.Filter != nil && museum.CanExpand(g.Filter.Scope, len(g.Items))
}

// Overlaid reports whether a modal overlay takes keyboard input.
func (g *Gallery) Overlaid() bool {
	return g.Prompt != nil || g.Detail != nil || g.ShowLogs || g.ShowHelp
}

// Cleanup cancels in-flight loads and downloads.
func (g *Gallery) Cleanup() {
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	g.cancel()
}
