package app

import (
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/export"
)

// SnapshotOptions captures what is currently on screen.
func (g *Gallery) SnapshotOptions() export.Options {
	return export.Options{
		Items:    g.Items,
		Offset:   g.Engine.Offset(),
		Viewport: g.Viewport(),
		Width:    config.DefaultSnapshotWidth,
		Images:   g.images,
		Labels:   config.ShowLabels,
	}
}

// Snapshot writes the current view to a PNG in the snapshot directory. The
// items slice is replaced, never mutated, so the render can run off the
// update loop.
func (g *Gallery) Snapshot() tea.Cmd {
	if len(g.Items) == 0 {
		g.ShowNotification("Nothing to snapshot", "warning", config.NotificationDuration)
		return nil
	}
	dir := g.snapshotDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	opts := g.SnapshotOptions()
	path := export.DefaultPath(dir, time.Now())
	g.LogInfo("writing snapshot %s", filepath.Base(path))
	return func() tea.Msg {
		return SnapshotSavedMsg{Path: path, Err: export.SavePNG(path, opts)}
	}
}
