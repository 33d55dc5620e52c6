package app

import (
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/tags"
)

// DetailView is the open artwork panel.
type DetailView struct {
	Item   museum.Item
	Tags   []tags.Tag
	Scroll int
}

// TagPrompt is the tag filter input.
type TagPrompt struct {
	Input string
}

// OpenDetail shows item in the detail panel.
func (g *Gallery) OpenDetail(item museum.Item) {
	g.Detail = &DetailView{Item: item, Tags: tags.Extract(item.Record)}
	g.LogDebug("opened %q (%s)", item.Title, item.Source)
}

// CloseDetail hides the detail panel.
func (g *Gallery) CloseDetail() {
	g.Detail = nil
}

// Activate runs the activation callback for item.
func (g *Gallery) Activate(item museum.Item) tea.Cmd {
	if g.onActivate != nil {
		return g.onActivate(g, item)
	}
	g.OpenDetail(item)
	return nil
}

// ScrollDetail moves the description by delta lines.
func (g *Gallery) ScrollDetail(delta int) {
	if g.Detail == nil {
		return
	}
	g.Detail.Scroll = max(g.Detail.Scroll+delta, 0)
}

// SelectDetailTag starts a current-scope filter on the n-th tag (1-based).
func (g *Gallery) SelectDetailTag(n int) tea.Cmd {
	if g.Detail == nil || n < 1 || n > len(g.Detail.Tags) {
		return nil
	}
	label := g.Detail.Tags[n-1].Label
	g.Detail = nil
	return g.FilterByTag(label, museum.ScopeCurrent)
}

// CopyDetailLink copies the object URL of the open artwork. The system
// clipboard is tried first; over SSH, or when it is unavailable, the link
// goes to the terminal through OSC 52.
func (g *Gallery) CopyDetailLink() tea.Cmd {
	if g.Detail == nil {
		return nil
	}
	link := g.Detail.Item.URL
	if link == "" {
		link = g.Detail.Item.ImageURL
	}
	if link == "" {
		g.ShowNotification("No link for this artwork", "warning", config.NotificationDuration)
		return nil
	}
	if !g.IsSSHMode && !clipboard.Unsupported {
		if err := clipboard.WriteAll(link); err == nil {
			g.ShowNotification("Link copied", "success", config.NotificationDuration)
			return nil
		}
	}
	g.ShowNotification("Link sent to terminal clipboard", "info", config.NotificationDuration)
	return tea.SetClipboard(link)
}

// OpenPrompt shows the tag filter input, prefilled with the active tag.
func (g *Gallery) OpenPrompt() {
	p := &TagPrompt{}
	if g.Filter != nil {
		p.Input = g.Filter.Tag
	}
	g.Prompt = p
}

// PromptInsert appends text to the prompt input.
func (g *Gallery) PromptInsert(text string) {
	if g.Prompt == nil {
		return
	}
	for _, r := range text {
		if utf8.RuneCountInString(g.Prompt.Input) >= config.MaxTagLength {
			return
		}
		if r >= ' ' {
			g.Prompt.Input += string(r)
		}
	}
}

// PromptBackspace removes the last rune of the prompt input.
func (g *Gallery) PromptBackspace() {
	if g.Prompt == nil || g.Prompt.Input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(g.Prompt.Input)
	g.Prompt.Input = g.Prompt.Input[:len(g.Prompt.Input)-size]
}

// SubmitPrompt closes the prompt and filters by its input. An empty input
// clears the filter.
func (g *Gallery) SubmitPrompt() tea.Cmd {
	if g.Prompt == nil {
		return nil
	}
	tag := strings.TrimSpace(g.Prompt.Input)
	g.Prompt = nil
	if tag == "" {
		return g.ClearFilter()
	}
	return g.FilterByTag(tag, museum.ScopeCurrent)
}
