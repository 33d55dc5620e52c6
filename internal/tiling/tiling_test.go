package tiling

import (
	"errors"
	"testing"

	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
)

type cell struct {
	id  int
	pos geom.Vec2
}

func (c cell) TileID() int        { return c.id }
func (c cell) TilePos() geom.Vec2 { return c.pos }

func baseCells(n int) []cell {
	positions := grid.Positions(n, false)
	cells := make([]cell, n)
	for i, p := range positions {
		cells[i] = cell{id: i + 1, pos: p}
	}
	return cells
}

func tileSize() geom.Size { return grid.Dimensions().Size() }

func TestCenterTile(t *testing.T) {
	tests := []struct {
		name   string
		offset geom.Vec2
		want   Coord
	}{
		{"origin", geom.V(0, 0), Coord{0, 0}},
		{"small positive offset", geom.V(10, 10), Coord{-1, -1}},
		{"small negative offset", geom.V(-10, -10), Coord{0, 0}},
		{"one tile left", geom.V(-2400, 0), Coord{1, 0}},
		{"just before boundary", geom.V(-2399, -1199), Coord{0, 0}},
		{"two tiles down", geom.V(0, 2400), Coord{0, -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterTile(tt.offset, tileSize()); got != tt.want {
				t.Errorf("CenterTile(%v) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		name     string
		viewport geom.Size
		want     int
	}{
		{"small viewport", geom.Size{W: 800, H: 600}, 1},
		{"exactly one tile", geom.Size{W: 2400, H: 1200}, 1},
		{"wider than a tile", geom.Size{W: 3000, H: 600}, 2},
		{"taller than two tiles", geom.Size{W: 800, H: 2500}, 3},
		{"empty viewport", geom.Size{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Radius(tt.viewport, tileSize()); got != tt.want {
				t.Errorf("Radius(%v) = %d, want %d", tt.viewport, got, tt.want)
			}
		})
	}
}

func TestItemsEmpty(t *testing.T) {
	got := Items([]cell{}, geom.V(123, -456), tileSize(), 1)
	if got == nil || len(got) != 0 {
		t.Errorf("Items(empty) = %#v, want empty non-nil slice", got)
	}

	got = Items[cell](nil, geom.Vec2{}, tileSize(), 2)
	if len(got) != 0 {
		t.Errorf("Items(nil) returned %d instances", len(got))
	}
}

func TestItemsCount(t *testing.T) {
	base := baseCells(grid.Capacity)
	for r := 1; r <= 3; r++ {
		side := 2*r + 1
		got := Items(base, geom.Vec2{}, tileSize(), r)
		if want := side * side * len(base); len(got) != want {
			t.Errorf("radius %d: %d instances, want %d", r, len(got), want)
		}
	}
}

func TestItemsKeysUnique(t *testing.T) {
	base := baseCells(20)
	got := Items(base, geom.V(-5000, 3700), tileSize(), 2)

	seen := make(map[string]bool, len(got))
	for _, inst := range got {
		k := inst.Key.String()
		if seen[k] {
			t.Fatalf("duplicate key %s", k)
		}
		seen[k] = true
	}
}

func TestItemsIdempotent(t *testing.T) {
	base := baseCells(13)
	offset := geom.V(-3210.5, 987.25)

	a := Items(base, offset, tileSize(), 1)
	b := Items(base, offset, tileSize(), 1)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("instance %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestItemsStableAcrossOffsets(t *testing.T) {
	base := baseCells(8)

	// Moving within the same centre tile yields the same keys and positions.
	a := Items(base, geom.V(-100, -100), tileSize(), 1)
	b := Items(base, geom.V(-2000, -1000), tileSize(), 1)
	for i := range a {
		if a[i].Key != b[i].Key || a[i].Pos != b[i].Pos {
			t.Fatalf("instance %d changed within one tile: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestItemsPositions(t *testing.T) {
	base := baseCells(grid.Capacity)
	size := tileSize()

	for _, inst := range Items(base, geom.V(-4000, 1500), size, 1) {
		want := inst.Item.TilePos().Add(geom.V(float64(inst.Key.TileX)*size.W, float64(inst.Key.TileY)*size.H))
		if inst.Pos != want {
			t.Errorf("%s: Pos = %v, want %v", inst.Key, inst.Pos, want)
		}
		if inst.Key.BaseID != inst.Item.TileID() {
			t.Errorf("%s: key id %d does not match item %d", inst.Key, inst.Key.BaseID, inst.Item.TileID())
		}
	}
}

// A full base tile repeated over the neighborhood is seamless: every grid
// slot in the covered area is occupied exactly once and neighbouring items
// are always one pitch apart, including across tile boundaries.
func TestItemsSeamless(t *testing.T) {
	base := baseCells(grid.Capacity)
	got := Items(base, geom.Vec2{}, tileSize(), 1)

	occupied := make(map[geom.Vec2]int, len(got))
	for _, inst := range got {
		occupied[inst.Pos]++
	}

	d := grid.Dimensions()
	minX, minY := -d.Width, -d.Height
	cols := 3 * grid.Columns
	rows := 3 * grid.Rows
	for row := range rows {
		for col := range cols {
			p := geom.V(minX+float64(col*grid.Pitch), minY+float64(row*grid.Pitch))
			if occupied[p] != 1 {
				t.Errorf("slot %v occupied %d times, want 1", p, occupied[p])
			}
		}
	}
	if len(occupied) != cols*rows {
		t.Errorf("%d distinct positions, want %d", len(occupied), cols*rows)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	keys := []Key{
		{BaseID: 1, TileX: 0, TileY: 0},
		{BaseID: 32, TileX: -3, TileY: 7},
		{BaseID: 1000001, TileX: 12, TileY: -12},
	}
	for _, k := range keys {
		got, err := ParseKey(k.String())
		if err != nil {
			t.Fatalf("ParseKey(%q) error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKey(%q) = %+v, want %+v", k.String(), got, k)
		}
	}
	if s := (Key{BaseID: 5, TileX: -1, TileY: 2}).String(); s != "5:-1:2" {
		t.Errorf("String() = %q, want %q", s, "5:-1:2")
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, s := range []string{"", "1:2", "a:1:2", "1:2:3:4", "1::3"} {
		t.Run(s, func(t *testing.T) {
			if _, err := ParseKey(s); !errors.Is(err, ErrBadKey) {
				t.Errorf("ParseKey(%q) error = %v, want ErrBadKey", s, err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	base := baseCells(4)
	it, ok := Resolve(base, Key{BaseID: 3, TileX: -2, TileY: 5})
	if !ok || it.id != 3 {
		t.Errorf("Resolve id 3 = %+v, %v", it, ok)
	}
	if _, ok := Resolve(base, Key{BaseID: 99}); ok {
		t.Error("Resolve of unknown id should fail")
	}
}

func centeredCells(n int) []cell {
	cells := make([]cell, n)
	for i, p := range grid.Positions(n, true) {
		cells[i] = cell{id: i, pos: p}
	}
	return cells
}

func TestSpill(t *testing.T) {
	ext := grid.ItemExtent()
	tests := []struct {
		name string
		base []cell
		want int
	}{
		{"empty", nil, 0},
		{"full tile", baseCells(grid.Capacity), 0},
		{"partial tile", baseCells(5), 0},
		{"centered row", centeredCells(3), 1},
		{"centered full tile", centeredCells(grid.Capacity), 1},
		{"past the tile", []cell{{id: 1, pos: geom.V(2300, 0)}}, 1},
		{"two tiles left", []cell{{id: 1, pos: geom.V(-4000, 0)}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Spill(tt.base, ext, tileSize()); got != tt.want {
				t.Errorf("Spill = %d, want %d", got, tt.want)
			}
		})
	}
}

// Every instance that overlaps the viewport, found by scanning a wide range
// of tiles, must be part of the materialized neighborhood. Centered layouts
// straddle the tile origin, which is where a plain Radius falls short.
func TestCoverRadiusCoversViewport(t *testing.T) {
	ext := grid.ItemExtent()
	size := tileSize()
	viewports := []geom.Size{{W: 2000, H: 1150}, {W: 800, H: 600}, {W: 5000, H: 3000}}
	offsets := []geom.Vec2{
		geom.V(0, 0), geom.V(-2399, 0), geom.V(-1, -1), geom.V(1150, 600),
		geom.V(-3600, 1799), geom.V(7321.5, -4444.25),
	}

	for _, base := range [][]cell{centeredCells(9), centeredCells(grid.Capacity), baseCells(grid.Capacity), baseCells(3)} {
		for _, vp := range viewports {
			for _, offset := range offsets {
				r := CoverRadius(base, vp, ext, size)
				have := make(map[Key]bool)
				for _, inst := range Items(base, offset, size, r) {
					have[inst.Key] = true
				}

				screen := geom.RectAt(offset.Neg(), vp)
				centre := CenterTile(offset, size)
				for _, c := range Neighborhood(centre, r+4) {
					shift := geom.V(float64(c.X)*size.W, float64(c.Y)*size.H)
					for _, it := range base {
						if !geom.RectAt(it.pos.Add(shift), ext).Overlaps(screen) {
							continue
						}
						k := Key{BaseID: it.id, TileX: c.X, TileY: c.Y}
						if !have[k] {
							t.Errorf("%d items, viewport %v, offset %v: visible %s missing at radius %d", len(base), vp, offset, k, r)
						}
					}
				}
			}
		}
	}
}
