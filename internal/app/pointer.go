package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// BeginDrag starts a gesture at terminal cell (x, y). Any coasting stops.
func (g *Gallery) BeginDrag(x, y int, now time.Time) {
	g.Engine.PointerDown(PointerPos(x, y), now)
}

// DragTo feeds a motion sample and refreshes the hover target.
func (g *Gallery) DragTo(x, y int, now time.Time) tea.Cmd {
	if g.Engine.State() != drag.Dragging {
		g.UpdateHover(x, y)
		return nil
	}
	g.Engine.PointerMove(PointerPos(x, y), now)
	g.HasHover = false
	return g.RequestThumbnails()
}

// EndDrag finishes the gesture. A fast release starts coasting. A release
// that moved less than the click threshold activates the artwork under the
// pointer, whether or not the canvas coasts.
func (g *Gallery) EndDrag(x, y int, now time.Time) tea.Cmd {
	if g.Engine.State() != drag.Dragging {
		return nil
	}
	var cmd tea.Cmd
	if g.Engine.PointerUp(PointerPos(x, y), now) {
		cmd = tea.Batch(g.StartCoasting(), g.RequestThumbnails())
	} else {
		g.UpdateHover(x, y)
		cmd = g.RequestThumbnails()
	}
	if !g.Engine.IsClick() {
		return cmd
	}

	inst, ok := g.InstanceAt(x, y)
	if !ok {
		return cmd
	}
	item, ok := g.ItemForKey(inst.Key.String())
	if !ok {
		return cmd
	}
	if activate := g.Activate(item); activate != nil {
		if cmd == nil {
			return activate
		}
		return tea.Batch(cmd, activate)
	}
	return cmd
}

// UpdateHover records the instance under (x, y).
func (g *Gallery) UpdateHover(x, y int) {
	inst, ok := g.InstanceAt(x, y)
	g.Hover, g.HasHover = inst.Key, ok
}

// Nudge gives the canvas a push of v canvas units per frame, as done by the
// keyboard. A coasting loop is started only if none is running.
func (g *Gallery) Nudge(v geom.Vec2) tea.Cmd {
	wasCoasting := g.Engine.State() == drag.Coasting
	if !g.Engine.Nudge(v) || wasCoasting {
		return nil
	}
	return g.StartCoasting()
}

// ResetView recentres the canvas on the origin.
func (g *Gallery) ResetView() tea.Cmd {
	g.Engine.Reset()
	g.HasHover = false
	return g.RequestThumbnails()
}
