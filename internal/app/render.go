package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
	"github.com/Gaurav-Gosain/tuiseum/internal/thumb"
)

// GetCanvas composes the artwork layers and overlays for the current frame.
func (g *Gallery) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(g.Width, g.Height)

	layers := make([]*lipgloss.Layer, 0, 64)
	if theme.IsEnabled() {
		layers = append(layers, g.renderBackground())
	}
	layers = append(layers, g.renderArtworks()...)
	layers = append(layers, g.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the gallery.
func (g *Gallery) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(g.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

func (g *Gallery) renderBackground() *lipgloss.Layer {
	h := g.GetCanvasHeight()
	line := strings.Repeat(" ", max(g.Width, 0))
	rows := make([]string, h)
	for i := range rows {
		rows[i] = line
	}
	bg := lipgloss.NewStyle().Background(theme.CanvasBg()).Render(strings.Join(rows, "\n"))
	return lipgloss.NewLayer(bg).X(0).Y(0).Z(-1).ID("background")
}

// renderArtworks draws every visible instance clipped to the canvas area.
// Instance ids are the composite tiling keys, so repeats of one artwork in
// different tiles never collide.
func (g *Gallery) renderArtworks() []*lipgloss.Layer {
	cols, rows := ItemCells()
	canvasH := g.GetCanvasHeight()
	offset := g.Engine.Offset()

	visible := g.VisibleInstances()
	layers := make([]*lipgloss.Layer, 0, len(visible)*2)
	for _, inst := range visible {
		x, y := ScreenCell(inst.Pos, offset)
		hovered := g.HasHover && inst.Key == g.Hover

		block := g.artworkBlock(inst, cols, rows)
		if hovered {
			block = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.ArtworkHover()).
				Render(block)
			x--
			y--
		}
		z := config.ZIndexArtwork
		if hovered {
			z = config.ZIndexHover
		}
		if clipped, cx, cy := clipContent(block, x, y, g.Width, canvasH); clipped != "" {
			layers = append(layers, lipgloss.NewLayer(clipped).X(cx).Y(cy).Z(z).ID(inst.Key.String()))
		}

		if !config.ShowLabels {
			continue
		}
		labelY := y + rows
		if hovered {
			labelY += 2
		}
		label := renderLabel(inst.Item.Title, cols+4, hovered)
		if clipped, cx, cy := clipContent(label, x-2+boolInt(hovered), labelY, g.Width, canvasH); clipped != "" {
			layers = append(layers, lipgloss.NewLayer(clipped).X(cx).Y(cy).Z(z).ID("label-"+inst.Key.String()))
		}
	}
	return layers
}

// artworkBlock returns the thumbnail when it has loaded and the shape
// placeholder otherwise.
func (g *Gallery) artworkBlock(inst Instance, cols, rows int) string {
	if config.ShowThumbnails {
		ref := inst.Item.Thumb()
		if e, ok := g.images.Get(ref); ok && e.Status == imagecache.Loaded && e.Image != nil {
			return g.thumbs.Render(ref, e.Image, cols, rows, theme.CanvasBg())
		}
	}
	return thumb.Fallback(inst.Item, cols, rows)
}

// renderStatusBar draws the bottom status line.
func (g *Gallery) renderStatusBar() *lipgloss.Layer {
	bar := lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Foreground(theme.StatusBarFg())
	accent := bar.Foreground(theme.StatusAccent()).Bold(true)
	filter := bar.Foreground(theme.StatusFilter()).Bold(true)

	left := accent.Render(" "+config.GetCollectionIcon(g.Collection)+g.CollectionName()+" ") + bar.Render(" ")
	if g.Filter != nil {
		left += filter.Render(fmt.Sprintf("%s%s (%s)", config.GetFilterPrefix(), g.Filter.Tag, g.Filter.Scope)) + bar.Render(" ")
	}
	if g.Loading {
		left += bar.Render(config.GetLoadingIcon() + "loading… ")
	}

	off := g.Engine.Offset()
	right := fmt.Sprintf("%d artworks  %+.0f,%+.0f  %s ", len(g.Items), off.X, off.Y, g.helpHint())
	if g.CanExpandScope() {
		right = "e: all collections  " + right
	}

	gap := g.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(g.Width-lipgloss.Width(left), 0)
	}
	content := left + bar.Render(strings.Repeat(" ", gap)+right)
	content, _, _ = clipContent(content, 0, 0, g.Width, 1)

	return lipgloss.NewLayer(content).
		X(0).Y(g.Height - config.StatusBarHeight).Z(config.ZIndexStatus).ID("status")
}

func (g *Gallery) helpHint() string {
	keys := g.KeybindRegistry.Keys(config.ActionToggleHelp)
	if len(keys) == 0 {
		return ""
	}
	return keys[0] + " help"
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
