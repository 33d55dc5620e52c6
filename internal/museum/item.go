// Package museum fetches artworks from public museum collections and turns
// them into positioned canvas items.
package museum

import (
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
)

// Shape is the placeholder glyph drawn for an item without a thumbnail.
type Shape string

// Placeholder shapes.
const (
	ShapeBox        Shape = "box"
	ShapeSphere     Shape = "sphere"
	ShapeTorus      Shape = "torus"
	ShapeCone       Shape = "cone"
	ShapeCylinder   Shape = "cylinder"
	ShapeOctahedron Shape = "octahedron"
)

// Shapes lists every placeholder shape.
var Shapes = []Shape{ShapeBox, ShapeSphere, ShapeTorus, ShapeCone, ShapeCylinder, ShapeOctahedron}

// Glyph returns a single-cell symbol for the shape.
func (s Shape) Glyph() string {
	switch s {
	case ShapeSphere:
		return "●"
	case ShapeTorus:
		return "◎"
	case ShapeCone:
		return "▲"
	case ShapeCylinder:
		return "▮"
	case ShapeOctahedron:
		return "◆"
	default:
		return "■"
	}
}

// Item is one artwork placed on the base tile.
type Item struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`

	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Date   string `json:"date,omitempty"`

	Shape Shape  `json:"shape"`
	Color string `json:"color"`

	// ImageURL is the full size image, ThumbURL a small rendition suitable
	// for terminal thumbnails.
	ImageURL string `json:"image_url,omitempty"`
	ThumbURL string `json:"thumb_url,omitempty"`

	Source string `json:"source"`
	URL    string `json:"url,omitempty"`

	Record Record `json:"record"`
}

// TileID returns the base identity used for tiling keys.
func (it Item) TileID() int { return it.ID }

// TilePos returns the item's position in the base tile.
func (it Item) TilePos() geom.Vec2 { return geom.Vec2{X: it.X, Y: it.Y} }

// Byline returns "artist (date)" with whichever parts are known.
func (it Item) Byline() string {
	switch {
	case it.Artist != "" && it.Date != "":
		return it.Artist + " (" + it.Date + ")"
	case it.Artist != "":
		return it.Artist
	default:
		return it.Date
	}
}

// Thumb returns the best URL for a thumbnail.
func (it Item) Thumb() string {
	if it.ThumbURL != "" {
		return it.ThumbURL
	}
	return it.ImageURL
}
