package input

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
)

// fakeClock makes gesture timing deterministic.
func fakeClock(t *testing.T) func(d time.Duration) {
	t.Helper()
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return func(d time.Duration) { current = current.Add(d) }
}

func TestMouseClickOpensDetail(t *testing.T) {
	advance := fakeClock(t)
	g, _ := newTestGallery(t)

	HandleInput(tea.MouseClickMsg{X: 2, Y: 1, Button: tea.MouseLeft}, g)
	advance(30 * time.Millisecond)
	HandleInput(tea.MouseReleaseMsg{X: 2, Y: 1, Button: tea.MouseLeft}, g)

	if g.Detail == nil {
		t.Fatal("click on an artwork should open the detail view")
	}
	if g.Detail.Item.ID != 0 {
		t.Errorf("opened item %d, want 0", g.Detail.Item.ID)
	}
}

func TestMouseFlingCoasts(t *testing.T) {
	advance := fakeClock(t)
	g, _ := newTestGallery(t)

	HandleInput(tea.MouseClickMsg{X: 10, Y: 10, Button: tea.MouseLeft}, g)
	for x := 12; x <= 20; x += 2 {
		advance(16 * time.Millisecond)
		HandleInput(tea.MouseMotionMsg{X: x, Y: 10, Button: tea.MouseLeft}, g)
	}
	if g.Engine.State() != drag.Dragging {
		t.Fatalf("state = %v while dragging", g.Engine.State())
	}
	advance(16 * time.Millisecond)
	_, cmd := HandleInput(tea.MouseReleaseMsg{X: 20, Y: 10, Button: tea.MouseLeft}, g)

	if g.Engine.State() != drag.Coasting {
		t.Fatalf("fast release should coast, state = %v", g.Engine.State())
	}
	if cmd == nil {
		t.Error("coasting should schedule ticks")
	}
	if g.Detail != nil {
		t.Error("a fling opened the detail view")
	}
	// ten columns of 25 units
	if got := g.Engine.Offset().X; got != 250 {
		t.Errorf("offset X = %v, want 250", got)
	}
}

// Holding the pointer still sends no motion, so a fling followed by a pause
// must not coast on release.
func TestMousePauseBeforeReleaseStops(t *testing.T) {
	advance := fakeClock(t)
	g, _ := newTestGallery(t)

	HandleInput(tea.MouseClickMsg{X: 10, Y: 10, Button: tea.MouseLeft}, g)
	for x := 12; x <= 20; x += 2 {
		advance(16 * time.Millisecond)
		HandleInput(tea.MouseMotionMsg{X: x, Y: 10, Button: tea.MouseLeft}, g)
	}
	advance(config.Physics.ReleaseWindow + 50*time.Millisecond)
	HandleInput(tea.MouseReleaseMsg{X: 20, Y: 10, Button: tea.MouseLeft}, g)

	if g.Engine.State() != drag.Idle {
		t.Errorf("release after a pause should not coast, state = %v", g.Engine.State())
	}
	if got := g.Engine.Offset().X; got != 250 {
		t.Errorf("offset X = %v, want 250", got)
	}
}

func TestMouseIgnoresOtherButtons(t *testing.T) {
	g, _ := newTestGallery(t)
	HandleInput(tea.MouseClickMsg{X: 2, Y: 1, Button: tea.MouseRight}, g)
	if g.Engine.State() != drag.Idle {
		t.Errorf("right click started a drag")
	}
}

func TestMouseWheel(t *testing.T) {
	g, _ := newTestGallery(t)

	HandleInput(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelDown}, g)
	if v := g.Engine.Velocity(); v.Y >= 0 || v.X != 0 {
		t.Errorf("wheel down velocity = %v", v)
	}

	g.Engine.Reset()
	HandleInput(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelDown, Mod: tea.ModShift}, g)
	if v := g.Engine.Velocity(); v.X >= 0 || v.Y != 0 {
		t.Errorf("shift+wheel down velocity = %v", v)
	}
}

func TestMouseHover(t *testing.T) {
	g, _ := newTestGallery(t)

	HandleInput(tea.MouseMotionMsg{X: 2, Y: 1}, g)
	if !g.HasHover || g.Hover.BaseID != 0 {
		t.Errorf("hover = %+v (%v), want item 0", g.Hover, g.HasHover)
	}

	HandleInput(tea.MouseMotionMsg{X: 9, Y: 1}, g)
	if g.HasHover {
		t.Error("hover should clear over the gap")
	}
}

func TestMouseClosesHelp(t *testing.T) {
	g, _ := newTestGallery(t)
	g.ShowHelp = true

	HandleInput(tea.MouseClickMsg{X: 2, Y: 1, Button: tea.MouseLeft}, g)

	if g.ShowHelp {
		t.Error("click should close help")
	}
	if g.Engine.State() != drag.Idle {
		t.Error("closing click should not start a drag")
	}
}
