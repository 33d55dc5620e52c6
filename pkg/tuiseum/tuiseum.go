// Package tuiseum provides the museum canvas as a Bubble Tea model that can
// be embedded in other applications or run on its own.
//
// The canvas tiles a base set of artworks in every direction. Dragging pans
// it, releasing with enough speed lets it coast, and clicking an artwork
// activates it.
//
// # Basic Usage
//
//	model := tuiseum.New()
//	p := tea.NewProgram(model, tuiseum.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model := tuiseum.New(
//		tuiseum.WithTheme("dracula"),
//		tuiseum.WithCollection(tuiseum.ArtInstitute),
//		tuiseum.WithFriction(0.98),
//		tuiseum.WithOnActivate(func(it tuiseum.Item) tea.Cmd {
//			return tea.Println(it.Title)
//		}),
//	)
//
// # Serving Over The Web
//
// Each browser session gets its own canvas sized to its terminal:
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		return tuiseum.NewForPTY(sess.Pty(), tuiseum.WithKeepConfig()), tuiseum.ProgramOptions()
//	})
//
// # Custom Data
//
// Any Source can back the canvas. Items must already be laid out on the
// base tile; LayoutItems does that for a plain slice.
package tuiseum

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/input"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/tags"
	"github.com/Gaurav-Gosain/tuiseum/internal/thumb"
)

// Model is the canvas model. It implements tea.Model.
type Model = app.Gallery

// Item is one artwork on the base tile.
type Item = museum.Item

// CollectionID names a built-in collection.
type CollectionID = museum.CollectionID

// Scope is the reach of a tag search.
type Scope = museum.Scope

// Source loads collections and tag searches.
type Source = app.Source

// Built-in collections.
const (
	ArtInstitute = museum.ArtInstituteID
	MetDesign    = museum.MetDesignID
	Harvard      = museum.HarvardID
	Cleveland    = museum.ClevelandID
)

// Tag search scopes.
const (
	ScopeCurrent = museum.ScopeCurrent
	ScopeAll     = museum.ScopeAll
)

// Options configures a canvas.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord", "tokyonight").
	// Leave empty to use standard terminal colors.
	Theme string

	// Collection is the collection loaded first. Default is met-design.
	Collection CollectionID

	// Source supplies the artworks. Nil uses the built-in museum catalog.
	Source Source

	// Friction is the velocity kept per coasting frame, in (0, 1).
	// Zero keeps the configured value.
	Friction float64

	// MinVelocity stops coasting below this speed. Zero keeps the configured
	// value.
	MinVelocity float64

	// Labels draws titles under artworks.
	Labels bool

	// Thumbnails downloads and draws artwork thumbnails.
	Thumbnails bool

	// ASCIIOnly uses ASCII characters instead of Nerd Font icons.
	ASCIIOnly bool

	// Width is the initial width (set automatically if 0).
	Width int

	// Height is the initial height (set automatically if 0).
	Height int

	// OnActivate runs when an artwork is clicked. Nil opens the detail view.
	OnActivate func(Item) tea.Cmd

	// SnapshotDir is where the snapshot key writes PNGs.
	SnapshotDir string

	// Logger receives structured logs. Nil discards them.
	Logger *log.Logger

	// UserConfig is a custom user configuration. If nil, the config file is
	// loaded, falling back to defaults.
	UserConfig *config.UserConfig

	// KeepConfig leaves the process-wide settings as they are instead of
	// applying UserConfig and the options above again. Servers that build one
	// canvas per session set it.
	KeepConfig bool
}

// Option is a functional option for configuring the canvas.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithCollection sets the collection loaded first.
func WithCollection(id CollectionID) Option {
	return func(o *Options) {
		o.Collection = id
	}
}

// WithSource replaces the museum catalog.
func WithSource(src Source) Option {
	return func(o *Options) {
		o.Source = src
	}
}

// WithFriction sets the coasting friction. Values outside (0, 1) are ignored.
func WithFriction(f float64) Option {
	return func(o *Options) {
		if f > 0 && f < 1 {
			o.Friction = f
		}
	}
}

// WithMinVelocity sets the speed below which coasting stops.
func WithMinVelocity(v float64) Option {
	return func(o *Options) {
		if v > 0 {
			o.MinVelocity = v
		}
	}
}

// WithLabels shows or hides titles under artworks.
func WithLabels(enabled bool) Option {
	return func(o *Options) {
		o.Labels = enabled
	}
}

// WithThumbnails enables or disables thumbnail downloads.
func WithThumbnails(enabled bool) Option {
	return func(o *Options) {
		o.Thumbnails = enabled
	}
}

// WithASCIIOnly enables ASCII-only mode (no Nerd Font icons).
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithOnActivate sets the click handler.
func WithOnActivate(fn func(Item) tea.Cmd) Option {
	return func(o *Options) {
		o.OnActivate = fn
	}
}

// WithSnapshotDir sets where snapshots are written.
func WithSnapshotDir(dir string) Option {
	return func(o *Options) {
		o.SnapshotDir = dir
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithKeepConfig reuses the settings already applied in this process.
func WithKeepConfig() Option {
	return func(o *Options) {
		o.KeepConfig = true
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Collection: museum.DefaultCollection,
		Labels:     true,
		Thumbnails: true,
	}
}

// New creates a canvas with the given options.
// This is the main entry point for using tuiseum as a library.
func New(opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return newModel(options)
}

// PTY reports a session's terminal size.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a canvas sized for a PTY session.
func NewForPTY(pty PTY, opts ...Option) *Model {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()

	return newModel(options)
}

// newModel creates the internal model with applied options.
func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	if !options.KeepConfig {
		// Theme errors leave the palette unthemed.
		_ = config.ApplyOverrides(config.Overrides{
			ThemeName:    options.Theme,
			Friction:     options.Friction,
			MinVelocity:  options.MinVelocity,
			NoLabels:     !options.Labels,
			NoThumbnails: !options.Thumbnails,
			ASCIIOnly:    options.ASCIIOnly,
		}, userConfig)
	}

	client := museum.NewClient(userConfig.RequestTimeout(), userConfig.Museums.UserAgent)
	source := options.Source
	if source == nil {
		source = museum.NewCatalog(museum.CatalogOptions{
			Client:     client,
			HarvardKey: userConfig.HarvardKey(),
			Logger:     options.Logger,
		})
	}

	var fetcher *thumb.Fetcher
	if config.ShowThumbnails {
		fetcher = thumb.NewFetcher(client, imagecache.NewMemory(config.ThumbnailCacheSize), config.ThumbnailParallel)
	}

	var onActivate func(*app.Gallery, museum.Item) tea.Cmd
	if options.OnActivate != nil {
		fn := options.OnActivate
		onActivate = func(_ *app.Gallery, it museum.Item) tea.Cmd { return fn(it) }
	}

	g := app.New(app.Options{
		Source:      source,
		Collection:  options.Collection,
		Thumbs:      fetcher,
		Logger:      options.Logger,
		Keys:        config.NewKeybindRegistry(userConfig.Keybindings),
		OnActivate:  onActivate,
		SnapshotDir: options.SnapshotDir,
	})
	if options.Width > 0 && options.Height > 0 {
		g.Width, g.Height = options.Width, options.Height
	}
	return g
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the canvas. Use these when creating a tea.Program:
//
//	model := tuiseum.New()
//	p := tea.NewProgram(model, tuiseum.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.GetFPS()),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// while a modal overlay is open and no drag is in progress.
//
// Usage:
//
//	p := tea.NewProgram(model, tea.WithFilter(tuiseum.FilterMouseMotion))
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	g, ok := model.(*Model)
	if !ok {
		return msg
	}

	// Motion drives hover on the bare canvas and the drag itself.
	if g.Engine.State() == drag.Dragging || !g.Overlaid() {
		return msg
	}
	return nil
}

// LayoutItems places items on the base tile in grid order, dropping any past
// the tile capacity. Positions and ids are overwritten.
func LayoutItems(items []Item, centered bool) []Item {
	n := min(len(items), grid.Capacity)
	out := make([]Item, n)
	for i, p := range grid.Positions(n, centered) {
		out[i] = items[i]
		out[i].ID = i
		out[i].X, out[i].Y = p.X, p.Y
	}
	return out
}

// StaticSource serves a fixed set of items for every collection. Tag
// searches match the extracted tags of each item.
type StaticSource []Item

// LoadCollection implements Source.
func (s StaticSource) LoadCollection(_ context.Context, _ CollectionID, n int) []Item {
	return LayoutItems(s[:min(max(n, 0), len(s))], false)
}

// SearchByTag implements Source.
func (s StaticSource) SearchByTag(_ context.Context, _ CollectionID, tag string, _ Scope, n int) []Item {
	var hits []Item
	for _, it := range s {
		if len(hits) >= n {
			break
		}
		if tags.Has(it, tag) {
			hits = append(hits, it)
		}
	}
	return LayoutItems(hits, true)
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
