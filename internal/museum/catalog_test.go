package museum

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
)

type fakeProvider struct {
	items   []Item
	err     error
	searchN int
	lastTag string
}

func (f *fakeProvider) Collection(_ context.Context, n int) ([]Item, error) {
	return f.items[:min(n, len(f.items))], f.err
}

func (f *fakeProvider) Search(_ context.Context, tag string, n int) ([]Item, error) {
	f.searchN = n
	f.lastTag = tag
	return f.items[:min(n, len(f.items))], f.err
}

func named(prefix string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: 1000 + i, Title: fmt.Sprintf("%s%d", prefix, i+1), Source: "Test"}
	}
	return items
}

func newTestCatalog() *Catalog {
	return NewCatalog(CatalogOptions{Rand: rand.New(rand.NewPCG(1, 2))})
}

func TestCatalogLoadCollectionPadsToCapacity(t *testing.T) {
	c := newTestCatalog()
	c.Register(ArtInstituteID, &fakeProvider{items: named("api", 5)}, curatedPad(curatedArt, "Curated Collection", nil))

	items := c.LoadCollection(context.Background(), ArtInstituteID, grid.Capacity)
	if len(items) != grid.Capacity {
		t.Fatalf("LoadCollection() returned %d items, want %d", len(items), grid.Capacity)
	}

	positions := grid.Positions(grid.Capacity, false)
	for i, it := range items {
		if it.ID != i {
			t.Errorf("item %d has id %d", i, it.ID)
		}
		if it.TilePos() != positions[i] {
			t.Errorf("item %d at %v, want %v", i, it.TilePos(), positions[i])
		}
		if it.Shape == "" || it.Color == "" {
			t.Errorf("item %d not decorated: shape %q color %q", i, it.Shape, it.Color)
		}
	}
	for i := range 5 {
		if items[i].Source != "Test" {
			t.Errorf("item %d source = %q, want provider items first", i, items[i].Source)
		}
	}
	if items[5].Source != "Curated Collection" {
		t.Errorf("item 5 source = %q, want curated padding", items[5].Source)
	}
}

func TestCatalogLoadCollectionProviderFailure(t *testing.T) {
	c := newTestCatalog()
	c.Register(MetDesignID, &fakeProvider{err: errors.New("boom")}, curatedPad(curatedDesign, "Curated Design Collection", nil))

	items := c.LoadCollection(context.Background(), MetDesignID, grid.Capacity)
	if len(items) != grid.Capacity {
		t.Fatalf("LoadCollection() returned %d items, want %d", len(items), grid.Capacity)
	}
	for _, it := range items {
		if it.Source != "Curated Design Collection" {
			t.Fatalf("unexpected source %q", it.Source)
		}
	}
}

func TestCatalogHarvardWithoutKeyUsesCurated(t *testing.T) {
	c := newTestCatalog()
	items := c.LoadCollection(context.Background(), HarvardID, 8)
	if len(items) != 8 {
		t.Fatalf("LoadCollection(harvard) returned %d items, want 8", len(items))
	}
	if items[0].Source != "Curated Collection" {
		t.Errorf("source = %q, want curated padding", items[0].Source)
	}
}

func TestCatalogUnknownCollection(t *testing.T) {
	c := newTestCatalog()
	if items := c.LoadCollection(context.Background(), "nope", 32); len(items) != 0 {
		t.Errorf("unknown collection returned %d items", len(items))
	}
}

func TestCatalogSearchByTagEmpty(t *testing.T) {
	c := newTestCatalog()
	fake := &fakeProvider{items: named("x", 4)}
	c.Register(ArtInstituteID, fake, nil)

	for _, tag := range []string{"", "   "} {
		items := c.SearchByTag(context.Background(), ArtInstituteID, tag, ScopeCurrent, 32)
		if items == nil || len(items) != 0 {
			t.Errorf("SearchByTag(%q) = %v, want empty", tag, items)
		}
	}
	if fake.lastTag != "" {
		t.Errorf("provider was queried for an empty tag")
	}
}

func TestCatalogSearchByTagCurrentScope(t *testing.T) {
	c := newTestCatalog()
	fake := &fakeProvider{items: named("x", 9)}
	c.Register(MetDesignID, fake, nil)

	items := c.SearchByTag(context.Background(), MetDesignID, " Poster ", ScopeCurrent, 32)
	if len(items) != 9 {
		t.Fatalf("SearchByTag() returned %d items, want 9", len(items))
	}
	if fake.lastTag != "Poster" || fake.searchN != 32 {
		t.Errorf("provider queried with tag %q n %d", fake.lastTag, fake.searchN)
	}

	shift := grid.CenterShift(9)
	if items[0].TilePos() != shift {
		t.Errorf("first item at %v, want centred origin %v", items[0].TilePos(), shift)
	}
	if !CanExpand(ScopeCurrent, len(items)) {
		t.Error("a partial current-scope result should be expandable")
	}
}

func TestCatalogSearchByTagAllScopeInterleaves(t *testing.T) {
	c := newTestCatalog()
	art := &fakeProvider{items: named("a", 3)}
	design := &fakeProvider{items: named("d", 20)}
	c.Register(ArtInstituteID, art, nil)
	c.Register(MetDesignID, design, nil)

	items := c.SearchByTag(context.Background(), HarvardID, "bauhaus", ScopeAll, 32)
	if art.searchN != 16 || design.searchN != 16 {
		t.Errorf("per-collection request sizes = %d, %d, want 16 each", art.searchN, design.searchN)
	}

	want := []string{"a1", "d1", "a2", "d2", "a3", "d3", "d4", "d5"}
	if len(items) != 3+16 {
		t.Fatalf("SearchByTag(all) returned %d items, want 19", len(items))
	}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("item %d = %q, want %q", i, items[i].Title, title)
		}
	}
	for i, it := range items {
		if it.ID != i {
			t.Errorf("item %d has id %d, want renumbered", i, it.ID)
		}
	}
	if CanExpand(ScopeAll, len(items)) {
		t.Error("all-scope results are never expandable")
	}
}

func TestInterleave(t *testing.T) {
	got := Interleave(named("a", 2), nil, named("c", 3))
	want := []string{"a1", "c1", "a2", "c2", "c3"}
	if len(got) != len(want) {
		t.Fatalf("Interleave() length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Errorf("Interleave()[%d] = %q, want %q", i, got[i].Title, want[i])
		}
	}
}

func TestParseCollection(t *testing.T) {
	tests := []struct {
		in      string
		want    CollectionID
		wantErr bool
	}{
		{"met-design", MetDesignID, false},
		{" Art-Institute ", ArtInstituteID, false},
		{"cleveland", ClevelandID, false},
		{"louvre", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCollection(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCollection) {
					t.Errorf("ParseCollection(%q) error = %v, want ErrUnknownCollection", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseCollection(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestNextWraps(t *testing.T) {
	all := Collections()
	if got := Next(all[len(all)-1].ID); got != all[0].ID {
		t.Errorf("Next(last) = %q, want %q", got, all[0].ID)
	}
	if got := Next("unknown"); got != DefaultCollection {
		t.Errorf("Next(unknown) = %q, want default", got)
	}
}
