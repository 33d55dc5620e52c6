package museum

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func serveJSON(t *testing.T, handler func(r *http.Request) (int, any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, body := handler(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSetsUserAgent(t *testing.T) {
	var got string
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		got = r.Header.Get("User-Agent")
		return http.StatusOK, map[string]int{"ok": 1}
	})

	var v map[string]int
	if err := NewClient(0, "").GetJSON(context.Background(), srv.URL, &v); err != nil {
		t.Fatalf("GetJSON() error: %v", err)
	}
	if got != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
	}
}

func TestClientStatusErrorRedactsKey(t *testing.T) {
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		return http.StatusTooManyRequests, nil
	})

	var v any
	err := NewClient(0, "").GetJSON(context.Background(), srv.URL+"/object?apikey=s3cret&size=1", &v)
	if !IsRateLimited(err) {
		t.Fatalf("GetJSON() error = %v, want rate limited", err)
	}
	if strings.Contains(err.Error(), "s3cret") {
		t.Errorf("error leaks api key: %v", err)
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://x/object?apikey=abc&size=1", "https://x/object?apikey=REDACTED&size=1"},
		{"https://x/object?size=1&apikey=abc", "https://x/object?size=1&apikey=REDACTED"},
		{"https://x/object?size=1", "https://x/object?size=1"},
	}
	for _, tt := range tests {
		if got := redact(tt.in); got != tt.want {
			t.Errorf("redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStrategyRun(t *testing.T) {
	primaryErr := errors.New("offline")
	pad := func(_ context.Context, remaining int) []Item { return named("pad", remaining) }

	tests := []struct {
		name       string
		primary    FetchFunc
		supplement SupplementFunc
		n          int
		wantLen    int
		wantPads   int
		wantErr    error
	}{
		{
			name:       "primary fills request",
			primary:    func(_ context.Context, n int) ([]Item, error) { return named("api", n), nil },
			supplement: pad,
			n:          8,
			wantLen:    8,
		},
		{
			name:       "primary over-delivers",
			primary:    func(_ context.Context, n int) ([]Item, error) { return named("api", n+5), nil },
			supplement: pad,
			n:          4,
			wantLen:    4,
		},
		{
			name:       "supplement tops up",
			primary:    func(_ context.Context, _ int) ([]Item, error) { return named("api", 3), nil },
			supplement: pad,
			n:          8,
			wantLen:    8,
			wantPads:   5,
		},
		{
			name:       "primary error still padded",
			primary:    func(_ context.Context, _ int) ([]Item, error) { return nil, primaryErr },
			supplement: pad,
			n:          6,
			wantLen:    6,
			wantPads:   6,
			wantErr:    primaryErr,
		},
		{
			name:    "no supplement",
			primary: func(_ context.Context, _ int) ([]Item, error) { return named("api", 2), nil },
			n:       8,
			wantLen: 2,
		},
		{
			name:       "zero request",
			primary:    func(_ context.Context, n int) ([]Item, error) { return named("api", n), nil },
			supplement: pad,
			n:          0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Strategy{Primary: tt.primary, Supplement: tt.supplement}.Run(context.Background(), tt.n)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if items == nil {
				t.Fatal("Run() returned nil slice")
			}
			if len(items) != tt.wantLen {
				t.Fatalf("Run() returned %d items, want %d", len(items), tt.wantLen)
			}
			pads := 0
			for _, it := range items {
				if strings.HasPrefix(it.Title, "pad") {
					pads++
				}
			}
			if pads != tt.wantPads {
				t.Errorf("Run() used %d padding items, want %d", pads, tt.wantPads)
			}
		})
	}
}

func TestStrategyRunCancelledSkipsSupplement(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	s := Strategy{
		Primary: func(ctx context.Context, _ int) ([]Item, error) { return nil, ctx.Err() },
		Supplement: func(_ context.Context, n int) []Item {
			called = true
			return named("pad", n)
		},
	}
	items, err := s.Run(ctx, 4)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if called || len(items) != 0 {
		t.Errorf("supplement ran after cancellation: %d items", len(items))
	}
}

func articWork(id int, image, class string, sat float64) map[string]any {
	return map[string]any{
		"id":                    id,
		"title":                 "Work",
		"artist_display":        "Painter\nFrench, 1840-1926",
		"date_display":          "1890",
		"image_id":              image,
		"is_public_domain":      true,
		"short_description":     "<p>A <em>field</em>.</p>",
		"classification_titles": []string{class},
		"style_titles":          []string{"Impressionism"},
		"subject_titles":        []string{"landscapes"},
		"theme_titles":          []string{"nature"},
		"color":                 map[string]float64{"h": 0, "s": sat, "l": 50},
	}
}

func TestArtInstituteCollection(t *testing.T) {
	var calls atomic.Int32
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		calls.Add(1)
		if r.URL.Path != "/artworks/search" {
			return http.StatusNotFound, nil
		}
		return http.StatusOK, map[string]any{"data": []any{
			articWork(1, "aaaaaaaaaa-1", "painting", 60),
			articWork(2, "bbbbbbbbbb-2", "print", 60),
			articWork(3, "cccccccccc-3", "painting", 5),
			articWork(4, "short", "painting", 60),
			articWork(5, "null-image-id", "painting", 60),
			articWork(6, "dddddddddd-6", "photograph", 40),
		}}
	})

	a := NewArtInstitute(NewClient(0, ""), nil)
	a.BaseURL = srv.URL
	a.ImageURL = "https://iiif.test"
	a.Categories = []string{"landscape", "portrait"}

	items, err := a.Collection(context.Background(), 10)
	if err != nil {
		t.Fatalf("Collection() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("made %d requests, want one per category", calls.Load())
	}
	if len(items) != 2 {
		t.Fatalf("Collection() returned %d items, want 2 (deduped, curated)", len(items))
	}

	first := items[0]
	if first.Artist != "Painter" {
		t.Errorf("Artist = %q, want first line of artist_display", first.Artist)
	}
	if first.ImageURL != "https://iiif.test/aaaaaaaaaa-1/full/843,/0/default.jpg" {
		t.Errorf("ImageURL = %q", first.ImageURL)
	}
	if first.Color != "#cc3333" {
		t.Errorf("Color = %q, want HSL(0,60,50)", first.Color)
	}
	if first.Record.Description != "A field." {
		t.Errorf("Description = %q, want markup stripped", first.Record.Description)
	}
}

func TestArtInstituteCollectionAllFailing(t *testing.T) {
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		return http.StatusInternalServerError, nil
	})
	a := NewArtInstitute(NewClient(0, ""), nil)
	a.BaseURL = srv.URL

	items, err := a.Collection(context.Background(), 32)
	if err == nil {
		t.Error("Collection() error = nil, want upstream failure")
	}
	if items == nil || len(items) != 0 {
		t.Errorf("Collection() = %v, want empty", items)
	}
}

func TestArtInstituteSearchKeepsPrints(t *testing.T) {
	var query string
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		query = r.URL.Query().Get("q")
		return http.StatusOK, map[string]any{"data": []any{
			articWork(1, "aaaaaaaaaa-1", "print", 60),
			articWork(2, "bbbbbbbbbb-2", "painting", 2),
		}}
	})
	a := NewArtInstitute(NewClient(0, ""), nil)
	a.BaseURL = srv.URL

	items, err := a.Search(context.Background(), "water lilies", 1)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if query != "water lilies" {
		t.Errorf("query = %q", query)
	}
	if len(items) != 1 {
		t.Errorf("Search() returned %d items, want capped at 1", len(items))
	}
}

func TestMetDesignFallsBackToCuratedIDs(t *testing.T) {
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		switch {
		case r.URL.Path == "/search":
			return http.StatusServiceUnavailable, nil
		case strings.HasPrefix(r.URL.Path, "/objects/"):
			id := strings.TrimPrefix(r.URL.Path, "/objects/")
			return http.StatusOK, map[string]any{
				"objectID":       len(id),
				"title":          "Poster " + id,
				"primaryImage":   "https://img.test/" + id + ".jpg",
				"isPublicDomain": true,
				"department":     "Modern and Contemporary Art",
				"objectName":     "Poster",
			}
		}
		return http.StatusNotFound, nil
	})

	m := NewMetDesign(NewClient(0, ""), nil)
	m.BaseURL = srv.URL
	m.CuratedIDs = []int{11, 22, 33}

	items, err := m.Collection(context.Background(), 2)
	if err != nil {
		t.Fatalf("Collection() error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Collection() returned %d items, want 2", len(items))
	}
	if items[0].Title != "Poster 11" || items[1].Title != "Poster 22" {
		t.Errorf("titles = %q, %q, want curated order", items[0].Title, items[1].Title)
	}
	if items[0].Record.ObjectType != "Poster" {
		t.Errorf("ObjectType = %q", items[0].Record.ObjectType)
	}
}

func TestMetDesignObjectFilter(t *testing.T) {
	tests := []struct {
		name string
		obj  metObject
		want bool
	}{
		{"modern department", metObject{Title: "A", PrimaryImage: "x", IsPublicDomain: true, Department: "Modern Art"}, true},
		{"poster object", metObject{Title: "A", PrimaryImage: "x", IsPublicDomain: true, ObjectName: "Poster"}, true},
		{"graphic classification", metObject{Title: "A", PrimaryImage: "x", IsPublicDomain: true, Classification: "Graphic Design"}, true},
		{"armor", metObject{Title: "A", PrimaryImage: "x", IsPublicDomain: true, Department: "Arms and Armor"}, false},
		{"no image", metObject{Title: "A", IsPublicDomain: true, Department: "Modern Art"}, false},
		{"not public", metObject{Title: "A", PrimaryImage: "x", Department: "Modern Art"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := metDesignObject(tt.obj); got != tt.want {
				t.Errorf("metDesignObject() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHarvardRequiresKey(t *testing.T) {
	h := NewHarvard(NewClient(0, ""), "", nil)
	if _, err := h.Collection(context.Background(), 4); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Collection() error = %v, want ErrMissingAPIKey", err)
	}
	if _, err := h.Search(context.Background(), "vase", 4); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Search() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestHarvardCollectionStopsOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		calls.Add(1)
		return http.StatusTooManyRequests, nil
	})
	h := NewHarvard(NewClient(0, ""), "key", nil)
	h.BaseURL = srv.URL

	_, err := h.Collection(context.Background(), 4)
	if !IsRateLimited(err) {
		t.Errorf("Collection() error = %v, want rate limited", err)
	}
	if calls.Load() != 1 {
		t.Errorf("made %d requests after a 429, want 1", calls.Load())
	}
}

func TestHarvardItem(t *testing.T) {
	it := harvardItem(harvardObject{
		ObjectID:  7,
		Title:     " Vase ",
		Century:   "5th century BCE",
		Technique: "Red-figure",
		People: []harvardPerson{
			{Name: "Second", DisplayOrder: 2},
			{Name: "First", Role: "Artist", DisplayOrder: 1},
		},
		Images:    []harvardImage{{IIIFBaseURI: "https://iiif.test/7"}},
	})
	if it.Artist != "First" {
		t.Errorf("Artist = %q, want lowest display order", it.Artist)
	}
	if it.Date != "5th century BCE" {
		t.Errorf("Date = %q, want century fallback", it.Date)
	}
	if it.ThumbURL != "https://iiif.test/7/full/200,/0/default.jpg" || it.ImageURL != "https://iiif.test/7/full/843,/0/default.jpg" {
		t.Errorf("image urls = %q, %q", it.ImageURL, it.ThumbURL)
	}
	if it.URL != "https://harvardartmuseums.org/collections/object/7" {
		t.Errorf("URL = %q", it.URL)
	}
	if it.Record.Medium != "Red-figure" {
		t.Errorf("Medium = %q, want technique fallback", it.Record.Medium)
	}
}

func TestClevelandSearch(t *testing.T) {
	srv := serveJSON(t, func(r *http.Request) (int, any) {
		if r.URL.Query().Get("q") != "armor" {
			return http.StatusBadRequest, nil
		}
		web := map[string]string{"url": "https://img.test/web.jpg"}
		return http.StatusOK, map[string]any{"data": []any{
			map[string]any{"id": 1, "title": "No image", "creation_date": "1500", "creators": []any{map[string]string{"description": "Smith"}}},
			map[string]any{
				"id":               2,
				"title":            "Helmet",
				"creation_date":    "c. 1540",
				"type":             "Arms and Armor",
				"creators":         []any{map[string]string{"description": "Armorer", "role": "maker"}},
				"images":           map[string]any{"web": web},
				"wall_description": "<b>Steel</b> helmet",
			},
		}}
	})
	c := NewCleveland(NewClient(0, ""), nil)
	c.BaseURL = srv.URL

	items, err := c.Search(context.Background(), "armor", 5)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Search() returned %d items, want 1", len(items))
	}
	it := items[0]
	if it.Artist != "Armorer" || it.ImageURL != "https://img.test/web.jpg" {
		t.Errorf("item = %+v", it)
	}
	if it.URL != "https://www.clevelandart.org/art/2" {
		t.Errorf("URL = %q", it.URL)
	}
	if it.Record.Description != "Steel helmet" || it.Record.ObjectType != "Arms and Armor" {
		t.Errorf("record = %+v", it.Record)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		meta  Meta
		check func(t *testing.T, r Record)
	}{
		{
			name: "nil",
			meta: nil,
			check: func(t *testing.T, r Record) {
				if !r.IsZero() {
					t.Errorf("Normalize(nil) = %+v, want zero", r)
				}
			},
		},
		{
			name: "art merges themes into subjects",
			meta: ArtMeta{Description: "long", Subjects: []string{"dogs"}, Themes: []string{"animals", "dogs"}},
			check: func(t *testing.T, r Record) {
				if r.Description != "long" {
					t.Errorf("Description = %q", r.Description)
				}
				if len(r.Subjects) != 2 || r.Subjects[1] != "animals" {
					t.Errorf("Subjects = %v", r.Subjects)
				}
			},
		},
		{
			name: "design uses object name as type",
			meta: DesignMeta{ObjectName: "Poster", Classification: "Prints", Department: "Drawings"},
			check: func(t *testing.T, r Record) {
				if r.ObjectType != "Poster" || r.Department != "Drawings" || len(r.Classifications) != 1 {
					t.Errorf("record = %+v", r)
				}
			},
		},
		{
			name: "harvard period becomes style",
			meta: HarvardMeta{Period: "Edo period", Classification: "Prints", People: []Participant{{Name: "Hokusai"}}},
			check: func(t *testing.T, r Record) {
				if len(r.Styles) != 1 || r.Styles[0] != "Edo period" || len(r.Participants) != 1 {
					t.Errorf("record = %+v", r)
				}
			},
		},
		{
			name: "cleveland prefers wall description",
			meta: ClevelandMeta{Tombstone: "tomb", Description: "desc", WallDescription: "wall", Culture: []string{"Italy", "Rome"}},
			check: func(t *testing.T, r Record) {
				if r.Description != "wall" || r.Culture != "Italy" {
					t.Errorf("record = %+v", r)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Normalize(tt.meta))
		})
	}
}

func TestCuratedPadCycles(t *testing.T) {
	pad := curatedPad(curatedDesign, "Curated Design Collection", nil)
	items := pad(context.Background(), 5)
	if len(items) != 5 {
		t.Fatalf("pad returned %d items, want 5", len(items))
	}
	if items[0].Title != items[2].Title || items[1].Title != items[3].Title {
		t.Errorf("pad did not cycle: %q %q %q %q", items[0].Title, items[1].Title, items[2].Title, items[3].Title)
	}
	for _, it := range items {
		if it.ImageURL == "" || it.Source != "Curated Design Collection" {
			t.Errorf("pad item = %+v", it)
		}
	}
}
