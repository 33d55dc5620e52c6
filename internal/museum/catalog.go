package museum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"charm.land/log/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
)

// ErrUnknownCollection is returned for collection ids that are not registered.
var ErrUnknownCollection = errors.New("unknown collection")

// CollectionID names a collection.
type CollectionID string

// Known collections.
const (
	ArtInstituteID CollectionID = "art-institute"
	MetDesignID    CollectionID = "met-design"
	HarvardID      CollectionID = "harvard"
	ClevelandID    CollectionID = "cleveland"
)

// DefaultCollection is shown on first start.
const DefaultCollection = MetDesignID

// Collection describes a browsable collection.
type Collection struct {
	ID          CollectionID
	Name        string
	Description string
	Source      string
	NeedsKey    bool
}

var collections = []Collection{
	{ID: MetDesignID, Name: "Design", Description: "Posters, graphic and modern design", Source: "Metropolitan Museum of Art"},
	{ID: ArtInstituteID, Name: "Fine Art", Description: "Paintings, sculpture and photography", Source: "Art Institute of Chicago"},
	{ID: HarvardID, Name: "Harvard", Description: "Fogg, Busch-Reisinger and Sackler museums", Source: "Harvard Art Museums", NeedsKey: true},
	{ID: ClevelandID, Name: "Cleveland", Description: "Open access highlights", Source: "Cleveland Museum of Art"},
}

// Collections lists every collection in display order.
func Collections() []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}

// Lookup returns the collection with the given id.
func Lookup(id CollectionID) (Collection, error) {
	for _, c := range collections {
		if c.ID == id {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("%w: %q", ErrUnknownCollection, id)
}

// ParseCollection validates a user supplied collection id.
func ParseCollection(s string) (CollectionID, error) {
	c, err := Lookup(CollectionID(strings.TrimSpace(strings.ToLower(s))))
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// Next returns the collection after id in display order, wrapping around.
func Next(id CollectionID) CollectionID {
	for i, c := range collections {
		if c.ID == id {
			return collections[(i+1)%len(collections)].ID
		}
	}
	return DefaultCollection
}

// Provider is a source of artworks.
type Provider interface {
	Collection(ctx context.Context, n int) ([]Item, error)
	Search(ctx context.Context, tag string, n int) ([]Item, error)
}

// Scope selects where a tag search looks.
type Scope int

const (
	// ScopeCurrent searches the collection the filter started from.
	ScopeCurrent Scope = iota
	// ScopeAll searches the fine art and design collections together.
	ScopeAll
)

func (s Scope) String() string {
	if s == ScopeAll {
		return "all"
	}
	return "current"
}

// CanExpand reports whether a search in scope that found count items may be
// widened to all collections.
func CanExpand(scope Scope, count int) bool {
	return scope == ScopeCurrent && count < grid.Capacity
}

// CatalogOptions configures NewCatalog.
type CatalogOptions struct {
	Client     *Client
	HarvardKey string
	Logger     *log.Logger
	// Rand drives shuffling and decoration; it must be safe for concurrent
	// use. Nil seeds a locked generator from the clock.
	Rand *rand.Rand
}

// Catalog loads collections and tag searches as laid out items. It never
// returns transport errors: failures are logged and degrade to fewer items.
type Catalog struct {
	providers map[CollectionID]Provider
	pads      map[CollectionID]SupplementFunc
	logger    *log.Logger
	rng       *rand.Rand
}

// NewCatalog registers the built-in providers.
func NewCatalog(opts CatalogOptions) *Catalog {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(&lockedSource{src: rand.NewPCG(seed, seed>>1|1)})
	}
	client := opts.Client
	if client == nil {
		client = NewClient(0, "")
	}

	c := &Catalog{
		providers: make(map[CollectionID]Provider),
		pads:      make(map[CollectionID]SupplementFunc),
		logger:    opts.Logger,
		rng:       rng,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	art := curatedPad(curatedArt, "Curated Collection", rng)
	c.Register(ArtInstituteID, NewArtInstitute(client, rng), art)
	c.Register(MetDesignID, NewMetDesign(client, rng), curatedPad(curatedDesign, "Curated Design Collection", rng))
	c.Register(HarvardID, NewHarvard(client, opts.HarvardKey, rng), art)
	c.Register(ClevelandID, NewCleveland(client, rng), art)
	return c
}

// Register replaces the provider and padding source for id.
func (c *Catalog) Register(id CollectionID, p Provider, pad SupplementFunc) {
	c.providers[id] = p
	c.pads[id] = pad
}

// LoadCollection returns exactly n items for id (unless the collection is
// unknown or ctx is cancelled), laid out on the base grid with ids 0..n-1.
func (c *Catalog) LoadCollection(ctx context.Context, id CollectionID, n int) []Item {
	p, ok := c.providers[id]
	if !ok {
		c.logger.Error("load collection", "collection", id, "err", ErrUnknownCollection)
		return []Item{}
	}

	start := time.Now()
	s := Strategy{Primary: p.Collection, Supplement: c.pads[id]}
	items, err := s.Run(ctx, n)
	if err != nil {
		if errors.Is(err, ErrMissingAPIKey) {
			c.logger.Warn("collection needs an api key, using curated works", "collection", id)
		} else {
			c.logger.Error("load collection", "collection", id, "err", err)
		}
	}
	c.logger.Debug("collection loaded", "collection", id, "count", len(items), "took", time.Since(start))
	return c.layout(items, false)
}

// SearchByTag looks tag up in the collection from (ScopeCurrent) or in the
// fine art and design collections together (ScopeAll), returning at most n
// items laid out centred on the origin. An empty tag yields no items.
func (c *Catalog) SearchByTag(ctx context.Context, from CollectionID, tag string, scope Scope, n int) []Item {
	tag = strings.TrimSpace(tag)
	if tag == "" || n <= 0 {
		return []Item{}
	}

	var items []Item
	switch scope {
	case ScopeAll:
		items = c.searchAll(ctx, tag, n)
	default:
		p, ok := c.providers[from]
		if !ok {
			c.logger.Error("tag search", "collection", from, "err", ErrUnknownCollection)
			return []Item{}
		}
		found, err := p.Search(ctx, tag, n)
		if err != nil {
			c.logger.Error("tag search", "collection", from, "tag", tag, "err", err)
		}
		items = found
	}
	if len(items) > n {
		items = items[:n]
	}
	c.logger.Debug("tag search", "tag", tag, "scope", scope, "count", len(items))
	return c.layout(items, true)
}

// searchAll queries fine art and design in parallel, half of n each, and
// interleaves the results.
func (c *Catalog) searchAll(ctx context.Context, tag string, n int) []Item {
	ids := []CollectionID{ArtInstituteID, MetDesignID}
	per := (n + len(ids) - 1) / len(ids)
	results := make([][]Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		p, ok := c.providers[id]
		if !ok {
			continue
		}
		g.Go(func() error {
			found, err := p.Search(gctx, tag, per)
			if err != nil {
				c.logger.Error("tag search", "collection", id, "tag", tag, "err", err)
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()

	return Interleave(results...)
}

// Interleave merges lists round robin: a0, b0, a1, b1, ...
func Interleave(lists ...[]Item) []Item {
	longest, total := 0, 0
	for _, l := range lists {
		longest = max(longest, len(l))
		total += len(l)
	}
	out := make([]Item, 0, total)
	for i := range longest {
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
			}
		}
	}
	return out
}

// layout renumbers items 0..len-1, assigns grid positions and fills in a
// shape and color where the provider left them empty. The input is copied.
func (c *Catalog) layout(items []Item, centered bool) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	positions := grid.Positions(len(out), centered)
	for i := range out {
		out[i].ID = i
		out[i].X = positions[i].X
		out[i].Y = positions[i].Y
		if out[i].Shape == "" {
			out[i].Shape = Shapes[c.rng.IntN(len(Shapes))]
		}
		if out[i].Color == "" {
			palette := paletteFor(out[i].Source)
			out[i].Color = palette[c.rng.IntN(len(palette))]
		}
		if out[i].Title == "" {
			out[i].Title = "Untitled"
		}
	}
	return out
}

// lockedSource lets one generator serve concurrent loads.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}
