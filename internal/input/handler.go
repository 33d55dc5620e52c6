// Package input routes keyboard and mouse events to the gallery.
//
// Keys go to the topmost overlay first: the tag prompt, then the detail
// view, the log viewer and the help screen. Only when none of them is open
// are keys resolved through the keybinding registry.
package input

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
)

// now is the gesture clock.
var now = time.Now

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, g *app.Gallery) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, g)
	case tea.PasteMsg:
		if g.Prompt != nil {
			g.PromptInsert(msg.Content)
		}
		return g, nil
	case tea.MouseClickMsg:
		return handleMouseClick(msg, g)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, g)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, g)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, g)
	}
	return g, nil
}

func handleLogViewerKey(msg tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	key := msg.String()

	if key == "q" || key == "esc" {
		g.ShowLogs = false
		g.LogScrollOffset = 0
		return g, nil
	}

	logsPerPage, maxScroll := app.LogScrollBounds(g.Height, len(g.LogMessages))
	pageSize := max(logsPerPage/2, 1)

	switch key {
	case "up", "k":
		g.LogScrollOffset = max(g.LogScrollOffset-1, 0)
	case "down", "j":
		g.LogScrollOffset = min(g.LogScrollOffset+1, maxScroll)
	case "pgup", "ctrl+u":
		g.LogScrollOffset = max(g.LogScrollOffset-pageSize, 0)
	case "pgdown", "ctrl+d":
		g.LogScrollOffset = min(g.LogScrollOffset+pageSize, maxScroll)
	case "g", "home":
		g.LogScrollOffset = 0
	case "G", "end":
		g.LogScrollOffset = maxScroll
	}
	return g, nil
}
