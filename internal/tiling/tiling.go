// Package tiling repeats the base tile of items around the current canvas
// offset so the canvas appears to extend forever in every direction.
package tiling

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// ErrBadKey is returned when a composite instance key cannot be parsed.
var ErrBadKey = errors.New("invalid instance key")

// Coord addresses one copy of the base tile. The origin tile is (0, 0).
type Coord struct {
	X int
	Y int
}

// Key identifies one projected item: the base item's ID plus the tile it was
// projected into. Keys are unique within a materialized neighborhood and stay
// the same across recomputations for the same (item, tile) pair.
type Key struct {
	BaseID int
	TileX  int
	TileY  int
}

// String renders the key as "<id>:<tileX>:<tileY>".
func (k Key) String() string {
	return strconv.Itoa(k.BaseID) + ":" + strconv.Itoa(k.TileX) + ":" + strconv.Itoa(k.TileY)
}

// Tile returns the tile coordinate part of the key.
func (k Key) Tile() Coord {
	return Coord{X: k.TileX, Y: k.TileY}
}

// ParseKey parses the output of Key.String.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %q: %v", ErrBadKey, s, err)
		}
		nums[i] = n
	}
	return Key{BaseID: nums[0], TileX: nums[1], TileY: nums[2]}, nil
}

// Item is anything with a stable identity and a position inside the base tile.
type Item interface {
	TileID() int
	TilePos() geom.Vec2
}

// Instance is an item projected into one tile.
type Instance[T Item] struct {
	Key  Key
	Item T
	// Pos is the world position: base position + tile coordinate * tile extent.
	Pos geom.Vec2
}

// WorldPos returns the projected position.
func (i Instance[T]) WorldPos() geom.Vec2 { return i.Pos }

// CenterTile returns the tile under the viewport origin for the given offset.
// A positive offset pans content right/down, so the tile index moves the
// other way.
func CenterTile(offset geom.Vec2, tile geom.Size) Coord {
	return Coord{
		X: int(math.Floor(-offset.X / tile.W)),
		Y: int(math.Floor(-offset.Y / tile.H)),
	}
}

// Radius returns the neighborhood radius needed so that the materialized tiles
// cover a viewport of the given size with at least one tile of margin.
func Radius(viewport, tile geom.Size) int {
	r := 1
	if tile.W > 0 {
		r = max(r, int(math.Ceil(viewport.W/tile.W)))
	}
	if tile.H > 0 {
		r = max(r, int(math.Ceil(viewport.H/tile.H)))
	}
	return r
}

// Spill returns how many tiles the base items reach past the [0, tile) cell
// on any side, given each item's extent. Centered layouts straddle the origin
// and spill by one.
func Spill[T Item](base []T, extent, tile geom.Size) int {
	if len(base) == 0 || tile.W <= 0 || tile.H <= 0 {
		return 0
	}
	box := geom.RectAt(base[0].TilePos(), extent)
	for _, it := range base[1:] {
		box = box.Union(geom.RectAt(it.TilePos(), extent))
	}
	over := func(lo, hi, period float64) int {
		return max(int(math.Ceil(-lo/period)), int(math.Ceil((hi-period)/period)), 0)
	}
	return max(over(box.Min.X, box.Max.X, tile.W), over(box.Min.Y, box.Max.Y, tile.H))
}

// CoverRadius is Radius grown by Spill, so the neighborhood covers the
// viewport wherever the base items sit relative to the tile origin.
func CoverRadius[T Item](base []T, viewport, extent, tile geom.Size) int {
	return Radius(viewport, tile) + Spill(base, extent, tile)
}

// Neighborhood lists the (2r+1)^2 tile coordinates around center, row by row.
func Neighborhood(center Coord, radius int) []Coord {
	radius = max(radius, 0)
	side := 2*radius + 1
	coords := make([]Coord, 0, side*side)
	for ty := center.Y - radius; ty <= center.Y+radius; ty++ {
		for tx := center.X - radius; tx <= center.X+radius; tx++ {
			coords = append(coords, Coord{X: tx, Y: ty})
		}
	}
	return coords
}

// Items projects every base item into each tile of the neighborhood around
// the tile under the viewport. The result is ordered tile by tile (rows of
// tiles top to bottom, left to right) and, within a tile, in base order.
// It is a pure function of its inputs.
func Items[T Item](base []T, offset geom.Vec2, tile geom.Size, radius int) []Instance[T] {
	if len(base) == 0 || tile.W <= 0 || tile.H <= 0 {
		return []Instance[T]{}
	}

	coords := Neighborhood(CenterTile(offset, tile), radius)
	out := make([]Instance[T], 0, len(coords)*len(base))
	for _, c := range coords {
		shift := geom.Vec2{X: float64(c.X) * tile.W, Y: float64(c.Y) * tile.H}
		for _, it := range base {
			out = append(out, Instance[T]{
				Key:  Key{BaseID: it.TileID(), TileX: c.X, TileY: c.Y},
				Item: it,
				Pos:  it.TilePos().Add(shift),
			})
		}
	}
	return out
}

// Resolve finds the base item behind a composite key.
func Resolve[T Item](base []T, key Key) (T, bool) {
	for _, it := range base {
		if it.TileID() == key.BaseID {
			return it, true
		}
	}
	var zero T
	return zero, false
}
