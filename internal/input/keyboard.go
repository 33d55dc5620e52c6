package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
)

// detailPage is how far pgup/pgdown scroll the description.
const detailPage = 10

// HandleKeyPress routes a key to the open overlay, or resolves it through
// the keybinding registry.
func HandleKeyPress(msg tea.KeyPressMsg, g *app.Gallery) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		g.Cleanup()
		return g, tea.Quit
	}

	switch {
	case g.Prompt != nil:
		return handlePromptKey(msg, g)
	case g.Detail != nil:
		return handleDetailKey(msg, g)
	case g.ShowLogs:
		return handleLogViewerKey(msg, g)
	case g.ShowHelp:
		return handleHelpKey(msg, g)
	}

	action := g.KeybindRegistry.Action(msg.String())
	if action == "" {
		return g, nil
	}
	return GetDispatcher().Dispatch(action, msg, g)
}

func handlePromptKey(msg tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return g, g.SubmitPrompt()
	case "esc":
		g.Prompt = nil
	case "backspace":
		g.PromptBackspace()
	case "ctrl+u":
		g.Prompt.Input = ""
	default:
		if msg.Text != "" {
			g.PromptInsert(msg.Text)
		}
	}
	return g, nil
}

func handleDetailKey(msg tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "q":
		g.CloseDetail()
	case "c":
		return g, g.CopyDetailLink()
	case "up", "k":
		g.ScrollDetail(-1)
	case "down", "j":
		g.ScrollDetail(1)
	case "pgup":
		g.ScrollDetail(-detailPage)
	case "pgdown", "space":
		g.ScrollDetail(detailPage)
	case "1", "2", "3", "4", "5", "6":
		return g, g.SelectDetailTag(int(key[0] - '0'))
	}
	return g, nil
}

func handleHelpKey(msg tea.KeyPressMsg, g *app.Gallery) (*app.Gallery, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		g.ShowHelp = false
	default:
		if g.KeybindRegistry.Action(msg.String()) == config.ActionToggleHelp {
			g.ShowHelp = false
		}
	}
	return g, nil
}
