package input

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/drag"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

type stubSource struct {
	items    []museum.Item
	searches []string
}

func (s *stubSource) LoadCollection(context.Context, museum.CollectionID, int) []museum.Item {
	return s.items
}

func (s *stubSource) SearchByTag(_ context.Context, _ museum.CollectionID, tag string, _ museum.Scope, _ int) []museum.Item {
	s.searches = append(s.searches, tag)
	return nil
}

func newTestGallery(t *testing.T) (*app.Gallery, *stubSource) {
	t.Helper()
	items := make([]museum.Item, grid.Capacity)
	for i, p := range grid.Positions(grid.Capacity, false) {
		items[i] = museum.Item{ID: i, X: p.X, Y: p.Y, Title: "Work", Color: "#808080",
			Record: museum.Record{Medium: "Woodcut", ObjectType: "Print"}}
	}
	src := &stubSource{items: items}
	g := app.New(app.Options{Source: src})
	t.Cleanup(g.Cleanup)
	g.Update(g.LoadCollection(museum.DefaultCollection)())
	return g, src
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func press(g *app.Gallery, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = HandleKeyPress(key(k), g)
	}
	return cmd
}

func TestDispatcherCoversEveryAction(t *testing.T) {
	d := GetDispatcher()
	for _, action := range config.Actions() {
		if !d.HasAction(action) {
			t.Errorf("no handler for %q", action)
		}
	}
}

func TestPanKeysStartCoasting(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		check func(x, y float64) bool
	}{
		{"left arrow moves content right", "left", func(x, _ float64) bool { return x > 0 }},
		{"l moves content left", "l", func(x, _ float64) bool { return x < 0 }},
		{"k moves content down", "k", func(_, y float64) bool { return y > 0 }},
		{"j moves content up", "j", func(_, y float64) bool { return y < 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGallery(t)
			if cmd := press(g, tt.key); cmd == nil {
				t.Fatal("expected a coast tick")
			}
			if g.Engine.State() != drag.Coasting {
				t.Fatalf("state = %v", g.Engine.State())
			}
			v := g.Engine.Velocity()
			if !tt.check(v.X, v.Y) {
				t.Errorf("velocity = %v", v)
			}
		})
	}
}

func TestResetView(t *testing.T) {
	g, _ := newTestGallery(t)
	press(g, "l")
	g.Update(app.CoastTickMsg{Gen: g.Engine.Generation()})
	if g.Engine.Offset().IsZero() {
		t.Fatal("canvas did not move")
	}

	press(g, "home")

	if !g.Engine.Offset().IsZero() || g.Engine.State() != drag.Idle {
		t.Errorf("offset=%v state=%v after reset", g.Engine.Offset(), g.Engine.State())
	}
}

func TestOpenDetailFromKeyboard(t *testing.T) {
	g, _ := newTestGallery(t)

	press(g, "enter")
	if g.Detail == nil {
		t.Fatal("enter should open the centred artwork")
	}

	// overlays swallow canvas keys
	press(g, "l")
	if g.Engine.State() != drag.Idle {
		t.Error("pan key reached the canvas through the detail view")
	}

	press(g, "esc")
	if g.Detail != nil {
		t.Error("esc should close the detail view")
	}
}

func TestDetailTagSelection(t *testing.T) {
	g, src := newTestGallery(t)
	press(g, "enter")
	want := g.Detail.Tags[0].Label

	cmd := press(g, "1")
	if cmd == nil {
		t.Fatal("tag key should start a search")
	}
	cmd()

	if len(src.searches) != 1 || src.searches[0] != want {
		t.Errorf("searches = %v, want [%s]", src.searches, want)
	}
}

func TestPromptEditing(t *testing.T) {
	g, src := newTestGallery(t)

	press(g, "/")
	if g.Prompt == nil {
		t.Fatal("/ should open the prompt")
	}
	press(g, "i", "n", "k", "s", "backspace")
	if g.Prompt.Input != "ink" {
		t.Fatalf("Input = %q", g.Prompt.Input)
	}

	cmd := press(g, "enter")
	if g.Prompt != nil {
		t.Error("prompt still open after enter")
	}
	cmd()
	if len(src.searches) != 1 || src.searches[0] != "ink" {
		t.Errorf("searches = %v", src.searches)
	}
}

func TestPromptEscapeCancels(t *testing.T) {
	g, src := newTestGallery(t)
	press(g, "/", "q", "esc")

	if g.Prompt != nil {
		t.Error("esc should close the prompt")
	}
	if len(src.searches) != 0 {
		t.Error("cancelled prompt searched")
	}
}

func TestToggles(t *testing.T) {
	labels, thumbs := config.ShowLabels, config.ShowThumbnails
	t.Cleanup(func() { config.ShowLabels, config.ShowThumbnails = labels, thumbs })

	g, _ := newTestGallery(t)

	press(g, "i")
	if config.ShowLabels == labels {
		t.Error("i should toggle labels")
	}
	press(g, "p")
	if config.ShowThumbnails == thumbs {
		t.Error("p should toggle thumbnails")
	}
	press(g, "D")
	if !g.ShowDebug {
		t.Error("D should open the debug overlay")
	}
	press(g, "?")
	if !g.ShowHelp {
		t.Fatal("? should open help")
	}
	press(g, "?")
	if g.ShowHelp {
		t.Error("? should close help")
	}
}

func TestLogViewerKeys(t *testing.T) {
	g, _ := newTestGallery(t)
	g.Height = 20
	for range 40 {
		g.LogInfo("line")
	}

	press(g, "L")
	if !g.ShowLogs {
		t.Fatal("L should open the log viewer")
	}
	_, maxScroll := app.LogScrollBounds(g.Height, len(g.LogMessages))
	if g.LogScrollOffset != maxScroll {
		t.Errorf("viewer should open at the bottom, offset %d want %d", g.LogScrollOffset, maxScroll)
	}

	press(g, "g")
	if g.LogScrollOffset != 0 {
		t.Errorf("g should jump to the top, offset %d", g.LogScrollOffset)
	}
	press(g, "j", "j")
	if g.LogScrollOffset != 2 {
		t.Errorf("offset = %d after two j", g.LogScrollOffset)
	}

	press(g, "q")
	if g.ShowLogs {
		t.Error("q should close the log viewer, not quit")
	}
}

func TestQuit(t *testing.T) {
	g, _ := newTestGallery(t)
	_, cmd := HandleKeyPress(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, g)
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not produce a quit message")
	}
}
