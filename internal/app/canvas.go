package app

import (
	"math"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/cull"
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/tiling"
)

// Instance is one artwork projected into a tile.
type Instance = tiling.Instance[museum.Item]

// GetCanvasHeight returns the rows available to the canvas.
func (g *Gallery) GetCanvasHeight() int {
	if config.HideStatus {
		return max(g.Height, 1)
	}
	return max(g.Height-config.StatusBarHeight, 1)
}

// Viewport returns the canvas size in canvas units.
func (g *Gallery) Viewport() geom.Size {
	return geom.Size{
		W: float64(g.Width * config.CellWidth),
		H: float64(g.GetCanvasHeight() * config.CellHeight),
	}
}

// PointerPos maps a terminal cell to canvas units, using the cell centre.
func PointerPos(x, y int) geom.Vec2 {
	return geom.Vec2{
		X: (float64(x) + 0.5) * float64(config.CellWidth),
		Y: (float64(y) + 0.5) * float64(config.CellHeight),
	}
}

// ScreenCell maps a world position to the terminal cell it starts in.
func ScreenCell(world, offset geom.Vec2) (int, int) {
	p := world.Add(offset)
	return int(math.Floor(p.X / float64(config.CellWidth))), int(math.Floor(p.Y / float64(config.CellHeight)))
}

// ItemCells returns the artwork size in terminal cells.
func ItemCells() (int, int) {
	ext := grid.ItemExtent()
	return max(int(ext.W)/config.CellWidth, 1), max(int(ext.H)/config.CellHeight, 1)
}

// Radius returns the tiling neighborhood radius for the current viewport.
func (g *Gallery) Radius() int {
	return tiling.CoverRadius(g.Items, g.Viewport(), grid.ItemExtent(), grid.Dimensions().Size())
}

// Instances returns every projected instance in the neighborhood.
func (g *Gallery) Instances() []Instance {
	return tiling.Items(g.Items, g.Engine.Offset(), grid.Dimensions().Size(), g.Radius())
}

// VisibleInstances returns the instances that survive culling.
func (g *Gallery) VisibleInstances() []Instance {
	return cull.Visible(g.Instances(), g.Engine.Offset(), g.Viewport(), grid.ItemExtent(), config.CullBuffer)
}

// InstanceAt returns the instance covering terminal cell (x, y).
func (g *Gallery) InstanceAt(x, y int) (Instance, bool) {
	if y >= g.GetCanvasHeight() {
		return Instance{}, false
	}
	world := PointerPos(x, y).Sub(g.Engine.Offset())
	ext := grid.ItemExtent()
	for _, inst := range cull.Visible(g.Instances(), g.Engine.Offset(), g.Viewport(), ext, 0) {
		if geom.RectAt(inst.Pos, ext).Contains(world) {
			return inst, true
		}
	}
	return Instance{}, false
}

// ItemForKey resolves a composite key string back to its base item.
func (g *Gallery) ItemForKey(key string) (museum.Item, bool) {
	k, err := tiling.ParseKey(key)
	if err != nil {
		return museum.Item{}, false
	}
	return tiling.Resolve(g.Items, k)
}

// CenterInstance returns the visible instance closest to the viewport centre.
func (g *Gallery) CenterInstance() (Instance, bool) {
	vp := g.Viewport()
	centre := geom.Vec2{X: vp.W / 2, Y: vp.H / 2}.Sub(g.Engine.Offset())
	half := geom.Vec2{X: grid.ItemSize / 2, Y: grid.ItemSize / 2}

	var best Instance
	bestDist := math.Inf(1)
	for _, inst := range g.VisibleInstances() {
		d := inst.Pos.Add(half).Sub(centre).Len()
		if d < bestDist {
			best, bestDist = inst, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
