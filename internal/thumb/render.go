package thumb

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

const upperHalf = "▀"

// Render draws img into a cols×rows block of half-block cells. Each cell
// carries two vertical pixels: the foreground paints the top one and the
// background the bottom one. The image is letterboxed to keep its aspect.
func Render(img image.Image, cols, rows int, bg color.Color) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), cols, rows*2)
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)

	offX := (cols - w) / 2
	offY := (rows*2 - h) / 2
	pixel := func(x, y int) color.Color {
		x -= offX
		y -= offY
		if x < 0 || y < 0 || x >= w || y >= h {
			return bg
		}
		return scaled.At(x, y)
	}

	var sb strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range cols {
			top, bottom := pixel(col, row*2), pixel(col, row*2+1)
			style := lipgloss.NewStyle()
			if top != nil {
				style = style.Foreground(top)
			}
			if bottom != nil {
				style = style.Background(bottom)
			}
			sb.WriteString(style.Render(upperHalf))
		}
	}
	return sb.String()
}

// Fallback draws the item's shape glyph centred on a tinted block, used while
// a thumbnail is loading or when it failed.
func Fallback(item museum.Item, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	base, err := colorful.Hex(item.Color)
	if err != nil {
		base = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	tint := base.BlendLab(colorful.Color{}, 0.75).Clamped()

	glyph := lipgloss.NewStyle().
		Foreground(base).
		Background(tint).
		Bold(true).
		Render(item.Shape.Glyph())
	fill := lipgloss.NewStyle().Background(tint)

	var sb strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		if row != rows/2 {
			sb.WriteString(fill.Render(strings.Repeat(" ", cols)))
			continue
		}
		left := (cols - 1) / 2
		sb.WriteString(fill.Render(strings.Repeat(" ", left)))
		sb.WriteString(glyph)
		sb.WriteString(fill.Render(strings.Repeat(" ", cols-left-1)))
	}
	return sb.String()
}

// Renderer memoizes rendered thumbnails by reference and size. It is used
// from the UI goroutine only.
type Renderer struct {
	entries map[string]string
	limit   int
}

// NewRenderer returns a renderer keeping at most limit rendered blocks.
func NewRenderer(limit int) *Renderer {
	if limit <= 0 {
		limit = 256
	}
	return &Renderer{entries: make(map[string]string), limit: limit}
}

// Render returns the memoized rendering of img for ref at cols×rows.
func (r *Renderer) Render(ref string, img image.Image, cols, rows int, bg color.Color) string {
	key := ref + "@" + strconv.Itoa(cols) + "x" + strconv.Itoa(rows)
	if s, ok := r.entries[key]; ok {
		return s
	}
	if len(r.entries) >= r.limit {
		clear(r.entries)
	}
	s := Render(img, cols, rows, bg)
	r.entries[key] = s
	return s
}

// Reset drops every memoized rendering, e.g. after a theme change.
func (r *Renderer) Reset() {
	clear(r.entries)
}
