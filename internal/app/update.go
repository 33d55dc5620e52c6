package app

import (
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
)

// uiTickInterval drives notification expiry and the loading indicator.
const uiTickInterval = 250 * time.Millisecond

// TickerMsg represents a periodic UI tick.
type TickerMsg time.Time

// CoastTickMsg advances coasting by one frame. Gen must match the engine's
// coast generation, otherwise the tick belongs to a cancelled run.
type CoastTickMsg struct {
	Gen uint64
}

// SnapshotSavedMsg reports the outcome of a PNG snapshot.
type SnapshotSavedMsg struct {
	Path string
	Err  error
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, g *Gallery) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd schedules the next UI tick.
func TickCmd() tea.Cmd {
	return tea.Tick(uiTickInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// coastTick schedules one coasting frame for generation gen.
func coastTick(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return CoastTickMsg{Gen: gen}
	})
}

// Init starts the UI tick, stats sampling and the first collection load.
func (g *Gallery) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		StatsCmd(),
		g.LoadCollection(g.Collection),
	)
}

// Update handles all incoming messages and updates the application state.
func (g *Gallery) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		g.CleanupNotifications()
		return g, TickCmd()

	case CoastTickMsg:
		return g, g.stepCoast(msg)

	case ItemsLoadedMsg:
		return g, g.applyItems(msg)

	case ThumbLoadedMsg:
		if msg.Entry.Status == imagecache.Failed {
			g.LogDebug("thumbnail %s: %v", msg.Ref, msg.Entry.Err)
		}
		return g, nil

	case StatsMsg:
		g.Stats.record(msg, runtime.NumGoroutine())
		return g, StatsCmd()

	case SnapshotSavedMsg:
		if msg.Err != nil {
			g.ShowNotification("Snapshot failed: "+msg.Err.Error(), "error", config.NotificationDuration)
		} else {
			g.ShowNotification("Saved "+msg.Path, "success", config.NotificationDuration)
		}
		return g, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		if inputHandler != nil {
			return inputHandler(msg, g)
		}
		return g, nil

	case tea.WindowSizeMsg:
		g.Width = msg.Width
		g.Height = msg.Height
		_, maxScroll := LogScrollBounds(g.Height, len(g.LogMessages))
		g.LogScrollOffset = min(g.LogScrollOffset, maxScroll)
		return g, g.RequestThumbnails()
	}
	return g, nil
}

// StartCoasting schedules the first coasting frame if the engine is
// coasting.
func (g *Gallery) StartCoasting() tea.Cmd {
	if g.Engine.State() != drag.Coasting {
		return nil
	}
	return coastTick(g.Engine.Generation(), g.Engine.Params().FrameInterval)
}

// stepCoast applies one coasting frame. Ticks from a superseded run are
// dropped so at most one decay loop is live.
func (g *Gallery) stepCoast(msg CoastTickMsg) tea.Cmd {
	if msg.Gen != g.Engine.Generation() || g.Engine.State() != drag.Coasting {
		return nil
	}
	moving := g.Engine.Step()
	thumbs := g.RequestThumbnails()
	if !moving {
		return thumbs
	}
	return tea.Batch(thumbs, coastTick(msg.Gen, g.Engine.Params().FrameInterval))
}
