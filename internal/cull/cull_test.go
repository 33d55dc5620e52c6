package cull

import (
	"testing"

	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/tiling"
)

type point struct {
	name string
	pos  geom.Vec2
}

func (p point) WorldPos() geom.Vec2 { return p.pos }

var (
	viewport = geom.Size{W: 1000, H: 800}
	extent   = geom.Size{W: 200, H: 200}
)

func names(ps []point) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.name
	}
	return out
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		pos    geom.Vec2
		offset geom.Vec2
		buffer float64
		want   bool
	}{
		{"inside viewport", geom.V(100, 100), geom.Vec2{}, 0, true},
		{"far right", geom.V(5000, 100), geom.Vec2{}, DefaultBuffer, false},
		{"within buffer on the right", geom.V(1400, 100), geom.Vec2{}, DefaultBuffer, true},
		{"touching right edge of buffer", geom.V(1500, 100), geom.Vec2{}, DefaultBuffer, true},
		{"just past right edge of buffer", geom.V(1500.5, 100), geom.Vec2{}, DefaultBuffer, false},
		{"touching left edge of buffer", geom.V(-700, 0), geom.Vec2{}, DefaultBuffer, true},
		{"just past left edge of buffer", geom.V(-700.5, 0), geom.Vec2{}, DefaultBuffer, false},
		{"offset brings item into view", geom.V(3000, 0), geom.V(-2500, 0), 0, true},
		{"offset moves item out of view", geom.V(100, 100), geom.V(-2000, 0), 0, false},
		{"zero buffer edge touch", geom.V(1000, 800), geom.Vec2{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible([]point{{"p", tt.pos}}, tt.offset, viewport, extent, tt.buffer)
			if (len(got) == 1) != tt.want {
				t.Errorf("Visible(%v, offset %v) kept=%v, want %v", tt.pos, tt.offset, len(got) == 1, tt.want)
			}
		})
	}
}

func TestVisiblePreservesOrder(t *testing.T) {
	items := []point{
		{"a", geom.V(0, 0)},
		{"far", geom.V(9000, 9000)},
		{"b", geom.V(400, 0)},
		{"c", geom.V(-100, 300)},
	}
	got := names(Visible(items, geom.Vec2{}, viewport, extent, DefaultBuffer))
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Visible() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Visible() = %v, want %v", got, want)
		}
	}
	if items[1].name != "far" {
		t.Error("input slice was modified")
	}
}

func TestVisibleEmpty(t *testing.T) {
	got := Visible([]point{}, geom.Vec2{}, viewport, extent, DefaultBuffer)
	if got == nil || len(got) != 0 {
		t.Errorf("Visible(empty) = %#v, want empty non-nil slice", got)
	}
}

// Culling the tiled neighborhood must never hide something that is actually
// on screen.
func TestVisibleKeepsOnScreenInstances(t *testing.T) {
	positions := grid.Positions(grid.Capacity, false)
	items := make([]tileItem, len(positions))
	for i, p := range positions {
		items[i] = tileItem{id: i + 1, pos: p}
	}

	tile := grid.Dimensions().Size()
	for _, offset := range []geom.Vec2{geom.V(0, 0), geom.V(-1234, 567), geom.V(3000, -2000)} {
		all := tiling.Items(items, offset, tile, tiling.Radius(viewport, tile))
		kept := Visible(all, offset, viewport, grid.ItemExtent(), DefaultBuffer)

		keptKeys := make(map[tiling.Key]bool, len(kept))
		for _, inst := range kept {
			keptKeys[inst.Key] = true
		}
		screen := geom.RectAt(offset.Neg(), viewport)
		for _, inst := range all {
			if geom.RectAt(inst.Pos, grid.ItemExtent()).Overlaps(screen) && !keptKeys[inst.Key] {
				t.Errorf("offset %v: on-screen instance %s was culled", offset, inst.Key)
			}
		}
		if len(kept) >= len(all) {
			t.Errorf("offset %v: culling kept all %d instances", offset, len(all))
		}
	}
}

type tileItem struct {
	id  int
	pos geom.Vec2
}

func (t tileItem) TileID() int        { return t.id }
func (t tileItem) TilePos() geom.Vec2 { return t.pos }

func TestWindow(t *testing.T) {
	w := Window(geom.V(100, -50), viewport, 500)
	want := geom.Rect{Min: geom.V(-600, -450), Max: geom.V(1400, 1350)}
	if w != want {
		t.Errorf("Window() = %v, want %v", w, want)
	}
}
