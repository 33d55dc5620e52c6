package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Canvas
	d.Register(config.ActionPanLeft, makePanHandler(geom.V(1, 0)))
	d.Register(config.ActionPanRight, makePanHandler(geom.V(-1, 0)))
	d.Register(config.ActionPanUp, makePanHandler(geom.V(0, 1)))
	d.Register(config.ActionPanDown, makePanHandler(geom.V(0, -1)))
	d.Register(config.ActionResetView, handleResetView)
	d.Register(config.ActionOpenDetail, handleOpenDetail)

	// Collections
	d.Register(config.ActionNextCollection, handleNextCollection)
	d.Register(config.ActionFilterTag, handleFilterTag)
	d.Register(config.ActionClearFilter, handleClearFilter)
	d.Register(config.ActionExpandScope, handleExpandScope)

	// Display
	d.Register(config.ActionToggleLabels, handleToggleLabels)
	d.Register(config.ActionToggleThumbnails, handleToggleThumbnails)
	d.Register(config.ActionSnapshot, handleSnapshot)
	d.Register(config.ActionToggleLogs, handleToggleLogs)
	d.Register(config.ActionToggleDebug, handleToggleDebug)

	// System
	d.Register(config.ActionToggleHelp, handleToggleHelp)
	d.Register(config.ActionQuit, handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, g)
	}
	return g, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Canvas Action Handlers
// ============================================================================

// makePanHandler nudges the canvas along dir. Panning left reveals what lies
// to the left, which moves the content right.
func makePanHandler(dir geom.Vec2) ActionHandler {
	return func(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
		return g, g.Nudge(dir.Scale(config.KeyboardNudge))
	}
}

func handleResetView(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	return g, g.ResetView()
}

func handleOpenDetail(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	inst, ok := g.CenterInstance()
	if !ok {
		return g, nil
	}
	item, ok := g.ItemForKey(inst.Key.String())
	if !ok {
		return g, nil
	}
	return g, g.Activate(item)
}

// ============================================================================
// Collection Action Handlers
// ============================================================================

func handleNextCollection(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	return g, g.NextCollection()
}

func handleFilterTag(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	g.OpenPrompt()
	return g, nil
}

func handleClearFilter(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	if g.Filter == nil {
		g.ShowNotification("No tag filter active", "info", config.NotificationDuration)
		return g, nil
	}
	return g, g.ClearFilter()
}

func handleExpandScope(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	if g.Filter == nil {
		g.ShowNotification("No tag filter active", "info", config.NotificationDuration)
		return g, nil
	}
	if !g.CanExpandScope() {
		g.ShowNotification("Filter already covers every collection", "info", config.NotificationDuration)
		return g, nil
	}
	return g, g.ExpandScope()
}

// ============================================================================
// Display Action Handlers
// ============================================================================

func handleToggleLabels(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	config.ShowLabels = !config.ShowLabels
	g.LogInfo("labels: %v", config.ShowLabels)
	return g, nil
}

func handleToggleThumbnails(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	config.ShowThumbnails = !config.ShowThumbnails
	g.LogInfo("thumbnails: %v", config.ShowThumbnails)
	return g, g.RequestThumbnails()
}

func handleSnapshot(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	return g, g.Snapshot()
}

func handleToggleLogs(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	wasShowing := g.ShowLogs
	g.ShowLogs = !g.ShowLogs
	if g.ShowLogs && !wasShowing {
		g.LogInfo("Log viewer opened")

		// Scroll to bottom to show most recent entries
		_, maxScroll := app.LogScrollBounds(g.Height, len(g.LogMessages))
		g.LogScrollOffset = maxScroll
	}
	return g, nil
}

func handleToggleDebug(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	g.ShowDebug = !g.ShowDebug
	return g, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleToggleHelp(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	g.ShowHelp = !g.ShowHelp
	return g, nil
}

func handleQuit(_ tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	if g.ShowHelp {
		g.ShowHelp = false
		return g, nil
	}
	g.Cleanup()
	return g, tea.Quit
}
