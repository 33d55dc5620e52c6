package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// wheelNudge is the velocity one wheel notch gives the canvas.
const wheelNudge = config.KeyboardNudge / 2

func handleMouseClick(msg tea.MouseClickMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return g, nil
	}

	// A click dismisses the passive overlays; the prompt and the detail view
	// keep the canvas frozen until closed from the keyboard.
	if g.ShowHelp || g.ShowLogs {
		g.ShowHelp = false
		g.ShowLogs = false
		return g, nil
	}
	if g.Prompt != nil || g.Detail != nil {
		return g, nil
	}

	g.BeginDrag(mouse.X, mouse.Y, now())
	return g, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	if g.Overlaid() {
		return g, nil
	}
	mouse := msg.Mouse()
	return g, g.DragTo(mouse.X, mouse.Y, now())
}

func handleMouseRelease(msg tea.MouseReleaseMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	mouse := msg.Mouse()
	return g, g.EndDrag(mouse.X, mouse.Y, now())
}

func handleMouseWheel(msg tea.MouseWheelMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	mouse := msg.Mouse()

	if g.ShowLogs {
		_, maxScroll := app.LogScrollBounds(g.Height, len(g.LogMessages))
		switch mouse.Button {
		case tea.MouseWheelUp:
			g.LogScrollOffset = max(g.LogScrollOffset-1, 0)
		case tea.MouseWheelDown:
			g.LogScrollOffset = min(g.LogScrollOffset+1, maxScroll)
		}
		return g, nil
	}

	if g.Detail != nil {
		switch mouse.Button {
		case tea.MouseWheelUp:
			g.ScrollDetail(-1)
		case tea.MouseWheelDown:
			g.ScrollDetail(1)
		}
		return g, nil
	}

	if g.Overlaid() {
		return g, nil
	}

	var dir geom.Vec2
	switch mouse.Button {
	case tea.MouseWheelUp:
		dir = geom.V(0, 1)
	case tea.MouseWheelDown:
		dir = geom.V(0, -1)
	case tea.MouseWheelLeft:
		dir = geom.V(1, 0)
	case tea.MouseWheelRight:
		dir = geom.V(-1, 0)
	default:
		return g, nil
	}
	// shift turns vertical scrolling sideways
	if mouse.Mod.Contains(tea.ModShift) {
		dir = geom.V(dir.Y, dir.X)
	}
	return g, g.Nudge(dir.Scale(wheelNudge))
}
