package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

// ItemsLoadedMsg carries the result of a collection load or tag search.
type ItemsLoadedMsg struct {
	Seq        uint64
	Items      []museum.Item
	Collection museum.CollectionID
	Filter     *Filter
}

// ThumbLoadedMsg reports a finished thumbnail download.
type ThumbLoadedMsg struct {
	Ref   string
	Entry imagecache.Entry
}

// beginRequest supersedes any in-flight load and returns the new token with
// a context that the next request will cancel.
func (g *Gallery) beginRequest() (uint64, context.Context) {
	if g.cancelLoad != nil {
		g.cancelLoad()
	}
	g.requestSeq++
	ctx, cancel := context.WithCancel(g.ctx)
	g.cancelLoad = cancel
	g.Loading = true
	return g.requestSeq, ctx
}

// LoadCollection fetches a full base tile for id.
func (g *Gallery) LoadCollection(id museum.CollectionID) tea.Cmd {
	if g.source == nil {
		return nil
	}
	seq, ctx := g.beginRequest()
	src := g.source
	g.LogInfo("loading %s", id)
	return func() tea.Msg {
		items := src.LoadCollection(ctx, id, grid.Capacity)
		return ItemsLoadedMsg{Seq: seq, Items: items, Collection: id}
	}
}

// FilterByTag replaces the dataset with a tag search. A current-scope search
// runs in the collection the first filter started from.
func (g *Gallery) FilterByTag(tag string, scope museum.Scope) tea.Cmd {
	if g.source == nil {
		return nil
	}
	from := g.Collection
	if g.Filter != nil {
		from = g.Filter.From
	}
	f := &Filter{Tag: tag, Scope: scope, From: from}
	seq, ctx := g.beginRequest()
	src := g.source
	g.LogInfo("searching %q in %s scope", tag, scope)
	return func() tea.Msg {
		items := src.SearchByTag(ctx, from, tag, scope, grid.Capacity)
		return ItemsLoadedMsg{Seq: seq, Items: items, Collection: from, Filter: f}
	}
}

// ExpandScope reruns the active filter across all collections.
func (g *Gallery) ExpandScope() tea.Cmd {
	if !g.CanExpandScope() {
		return nil
	}
	return g.FilterByTag(g.Filter.Tag, museum.ScopeAll)
}

// ClearFilter drops the tag filter and reloads the collection it started from.
func (g *Gallery) ClearFilter() tea.Cmd {
	if g.Filter == nil {
		return nil
	}
	from := g.Filter.From
	g.Filter = nil
	return g.LoadCollection(from)
}

// NextCollection switches to the next collection and persists the choice.
func (g *Gallery) NextCollection() tea.Cmd {
	next := museum.Next(g.Collection)
	if g.Filter != nil {
		next = museum.Next(g.Filter.From)
	}
	g.Filter = nil
	return g.LoadCollection(next)
}

// applyItems installs a load result unless a newer request superseded it.
func (g *Gallery) applyItems(msg ItemsLoadedMsg) tea.Cmd {
	if msg.Seq != g.requestSeq {
		g.LogDebug("discarding stale result %d (current %d)", msg.Seq, g.requestSeq)
		return nil
	}
	g.Loading = false
	g.Loaded = true
	g.cancelLoad = nil

	changed := msg.Filter == nil && msg.Collection != g.Collection
	g.Items = msg.Items
	g.Collection = msg.Collection
	g.Filter = msg.Filter
	g.Engine.Reset()
	g.HasHover = false
	g.Detail = nil

	switch {
	case msg.Filter != nil && len(msg.Items) == 0:
		g.ShowNotification(fmt.Sprintf("No artworks tagged %q", msg.Filter.Tag), "warning", config.NotificationDuration)
	case msg.Filter != nil:
		g.LogInfo("%d artworks tagged %q", len(msg.Items), msg.Filter.Tag)
	case len(msg.Items) == 0:
		g.ShowNotification("Nothing to show in "+g.CollectionName(), "warning", config.NotificationDuration)
	default:
		g.LogInfo("%s: %d artworks", g.CollectionName(), len(msg.Items))
	}

	if changed && g.state != nil {
		if err := g.state.SetCollection(msg.Collection); err != nil {
			g.LogWarn("saving collection: %v", err)
		}
	}
	return g.RequestThumbnails()
}

// RequestThumbnails starts downloads for visible artworks that have not been
// requested yet.
func (g *Gallery) RequestThumbnails() tea.Cmd {
	if g.fetcher == nil || !config.ShowThumbnails {
		return nil
	}
	var cmds []tea.Cmd
	for _, inst := range g.VisibleInstances() {
		ref := inst.Item.Thumb()
		if ref == "" || !imagecache.Claim(g.images, ref) {
			continue
		}
		ctx, fetcher := g.ctx, g.fetcher
		cmds = append(cmds, func() tea.Msg {
			return ThumbLoadedMsg{Ref: ref, Entry: fetcher.Load(ctx, ref)}
		})
	}
	return tea.Batch(cmds...)
}
