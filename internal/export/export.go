// Package export renders the canvas around the current offset to a PNG.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/cull"
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
	"github.com/Gaurav-Gosain/tuiseum/internal/tiling"
)

// DefaultScale is the pixels per canvas unit used when no viewport is given.
const DefaultScale = 0.5

// Options describes one snapshot.
type Options struct {
	Items  []museum.Item
	Offset geom.Vec2
	// Viewport is the canvas area to capture, in canvas units. Zero captures
	// Width×Height pixels at DefaultScale.
	Viewport geom.Size
	// Width and Height are the image size in pixels. With a viewport set,
	// Height follows the viewport's aspect ratio.
	Width  int
	Height int
	// Images supplies decoded thumbnails; nil draws colour swatches only.
	Images imagecache.Cache
	Labels bool
}

var (
	fontOnce sync.Once
	monoFont *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		monoFont, fontErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, fontErr
}

// Render draws the snapshot described by opts.
func Render(opts Options) (image.Image, error) {
	width := opts.Width
	if width <= 0 {
		width = config.DefaultSnapshotWidth
	}
	height := opts.Height
	if height <= 0 {
		height = config.DefaultSnapshotHeight
	}

	vp := opts.Viewport
	scale := DefaultScale
	if vp.W > 0 && vp.H > 0 {
		scale = float64(width) / vp.W
		height = max(int(vp.H*scale), 1)
	} else {
		vp = geom.Size{W: float64(width) / scale, H: float64(height) / scale}
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(theme.CanvasBg())
	dc.Clear()

	fontSize := max(grid.ItemSize*scale/10, 8)
	if opts.Labels {
		f, err := loadFont()
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
			Size:    fontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
	}

	tile := grid.Dimensions().Size()
	instances := tiling.Items(opts.Items, opts.Offset, tile, tiling.CoverRadius(opts.Items, vp, grid.ItemExtent(), tile))
	visible := cull.Visible(instances, opts.Offset, vp, grid.ItemExtent(), 0)

	size := grid.ItemSize * scale
	for _, inst := range visible {
		p := inst.Pos.Add(opts.Offset).Scale(scale)
		drawItem(dc, inst.Item, opts.Images, p.X, p.Y, size)
		if opts.Labels {
			// gomono glyphs are 0.6em wide
			chars := uint(max(int(size/(fontSize*0.6)), 1))
			dc.SetColor(theme.LabelFg())
			dc.DrawStringAnchored(truncate.StringWithTail(inst.Item.Title, chars, "…"),
				p.X+size/2, p.Y+size+fontSize, 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// drawItem paints the thumbnail when one has loaded, letterboxed on the
// item's swatch colour.
func drawItem(dc *gg.Context, item museum.Item, images imagecache.Cache, x, y, size float64) {
	swatch, err := colorful.Hex(item.Color)
	if err != nil {
		swatch = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	dc.SetColor(swatch)
	dc.DrawRectangle(x, y, size, size)
	dc.Fill()

	if images == nil {
		return
	}
	e, ok := images.Get(item.Thumb())
	if !ok || e.Status != imagecache.Loaded || e.Image == nil {
		return
	}
	b := e.Image.Bounds()
	w, h := fit(b.Dx(), b.Dy(), int(size), int(size))
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), e.Image, b, draw.Src, nil)
	dc.DrawImage(scaled, int(x)+(int(size)-w)/2, int(y)+(int(size)-h)/2)
}

func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return max(maxW, 1), max(maxH, 1)
	}
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}

// SavePNG renders opts and writes the PNG to path, creating its directory.
func SavePNG(path string, opts Options) error {
	img, err := Render(opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return gg.SavePNG(path, img)
}

// DefaultPath returns a timestamped file name inside dir.
func DefaultPath(dir string, now time.Time) string {
	return filepath.Join(dir, "tuiseum-"+now.Format("20060102-150405")+".png")
}
