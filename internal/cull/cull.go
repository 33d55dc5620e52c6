// Package cull filters projected items down to the ones near the viewport.
package cull

import (
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// DefaultBuffer is how far outside the viewport, in canvas units, an item may
// sit and still be kept.
const DefaultBuffer = 500

// Positioned is anything with a world position.
type Positioned interface {
	WorldPos() geom.Vec2
}

// Window returns the world-space rectangle that is considered visible for the
// given offset: the viewport moved by -offset and grown by buffer on every
// side.
func Window(offset geom.Vec2, viewport geom.Size, buffer float64) geom.Rect {
	return geom.RectAt(offset.Neg(), viewport).Inset(buffer)
}

// Visible returns the items whose extent intersects the culling window.
// Touching edges count as intersecting. Order is preserved and the input is
// not modified.
func Visible[T Positioned](items []T, offset geom.Vec2, viewport, extent geom.Size, buffer float64) []T {
	out := make([]T, 0, len(items))
	if len(items) == 0 {
		return out
	}
	win := Window(offset, viewport, buffer)
	for _, it := range items {
		if geom.RectAt(it.WorldPos(), extent).Overlaps(win) {
			out = append(out, it)
		}
	}
	return out
}
