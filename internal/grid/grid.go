// Package grid lays out a collection on the fixed 8-column base grid that the
// canvas repeats in every direction.
package grid

import (
	"math"

	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

const (
	// Columns is the number of items per row.
	Columns = 8

	// Rows is the number of rows in a full base tile.
	Rows = 4

	// Capacity is the number of items in a full base tile.
	Capacity = Columns * Rows

	// ItemSize is the width and height of one cell in canvas units.
	ItemSize = 200

	// Gap is the spacing between neighbouring cells.
	Gap = 100

	// Pitch is the distance between the origins of neighbouring cells.
	Pitch = ItemSize + Gap
)

// Dims describes the tiling period of the base grid.
type Dims struct {
	Width   float64
	Height  float64
	Columns int
	Rows    int
}

// Dimensions returns the extent of a full base tile. Every consumer of the
// tiling period (layout, tiling, culling, export) must read it from here.
func Dimensions() Dims {
	return Dims{
		Width:   Columns * Pitch,
		Height:  Rows * Pitch,
		Columns: Columns,
		Rows:    Rows,
	}
}

// Size returns the tile extent as a geom.Size.
func (d Dims) Size() geom.Size {
	return geom.Size{W: d.Width, H: d.Height}
}

// ItemExtent is the size of one laid out item.
func ItemExtent() geom.Size {
	return geom.Size{W: ItemSize, H: ItemSize}
}

// Positions returns the top-left corner of each of count items. Item i sits in
// row i/Columns and column i%Columns. With centered set, the block formed by
// the actual count (not a full tile) is shifted so its bounding box is
// centred on the origin.
func Positions(count int, centered bool) []geom.Vec2 {
	if count <= 0 {
		return []geom.Vec2{}
	}

	positions := make([]geom.Vec2, count)
	for i := range positions {
		row := i / Columns
		col := i % Columns
		positions[i] = geom.Vec2{X: float64(col * Pitch), Y: float64(row * Pitch)}
	}

	if !centered {
		return positions
	}

	shift := CenterShift(count)
	for i := range positions {
		positions[i] = positions[i].Add(shift)
	}
	return positions
}

// CenterShift is the translation applied by Positions in centered mode.
func CenterShift(count int) geom.Vec2 {
	if count <= 0 {
		return geom.Vec2{}
	}
	w, h := blockSize(count)
	return geom.Vec2{X: -w / 2, Y: -h / 2}
}

// Bounds returns the bounding box of the laid out items including their
// extent. An empty layout yields the zero rectangle.
func Bounds(count int, centered bool) geom.Rect {
	if count <= 0 {
		return geom.Rect{}
	}
	w, h := blockSize(count)
	r := geom.Rect{Max: geom.Vec2{X: w, Y: h}}
	if centered {
		r = r.Translate(CenterShift(count))
	}
	return r
}

// blockSize returns the width and height of the block occupied by count
// items: cols*ItemSize + (cols-1)*Gap, same for rows.
func blockSize(count int) (float64, float64) {
	rows := int(math.Ceil(float64(count) / Columns))
	cols := min(count, Columns)
	w := float64(cols*ItemSize + (cols-1)*Gap)
	h := float64(rows*ItemSize + (rows-1)*Gap)
	return w, h
}
