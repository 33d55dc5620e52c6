package thumb

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{200, 100, 20, 20, 20, 10},
		{100, 200, 20, 20, 10, 20},
		{50, 50, 10, 20, 10, 10},
		{0, 10, 8, 8, 8, 8},
	}
	for _, tt := range tests {
		gotW, gotH := fit(tt.w, tt.h, tt.maxW, tt.maxH)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("fit(%d,%d,%d,%d) = %d,%d, want %d,%d", tt.w, tt.h, tt.maxW, tt.maxH, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestDecodeShrinks(t *testing.T) {
	img, err := Decode(encodePNG(t, solid(400, 200, color.White)))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != StoreSize || b.Dy() != StoreSize/2 {
		t.Errorf("decoded size = %v, want %dx%d", b, StoreSize, StoreSize/2)
	}
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("Decode(garbage) succeeded")
	}
}

func TestRenderDimensions(t *testing.T) {
	out := Render(solid(10, 10, color.RGBA{R: 255, A: 255}), 8, 3, nil)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() produced %d rows, want 3", len(lines))
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 8 {
			t.Errorf("row %d width = %d, want 8", i, w)
		}
	}
	if Render(nil, 8, 3, nil) != "" {
		t.Error("Render(nil) should be empty")
	}
}

func TestFallbackShowsGlyph(t *testing.T) {
	item := museum.Item{Shape: museum.ShapeTorus, Color: "#ff0000"}
	out := Fallback(item, 7, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Fallback() produced %d rows", len(lines))
	}
	if !strings.Contains(ansi.Strip(lines[1]), museum.ShapeTorus.Glyph()) {
		t.Errorf("middle row %q lacks glyph", ansi.Strip(lines[1]))
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w != 7 {
			t.Errorf("row width = %d, want 7", w)
		}
	}
}

func TestRendererMemoizes(t *testing.T) {
	r := NewRenderer(2)
	img := solid(4, 4, color.Black)
	a := r.Render("a", img, 4, 2, nil)
	if got := r.Render("a", nil, 4, 2, nil); got != a {
		t.Error("second render of the same key was not memoized")
	}
	if got := r.Render("a", img, 2, 1, nil); got == a {
		t.Error("different size returned the memoized block")
	}
}

func TestFetcherLoad(t *testing.T) {
	pngData := encodePNG(t, solid(4, 4, color.White))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write(pngData)
		case "/broken.png":
			_, _ = w.Write([]byte("nope"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	cache := imagecache.NewMemory(8)
	f := NewFetcher(museum.NewClient(0, ""), cache, 2)

	tests := []struct {
		path string
		want imagecache.Status
	}{
		{"/ok.png", imagecache.Loaded},
		{"/broken.png", imagecache.Failed},
		{"/missing.png", imagecache.Failed},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ref := srv.URL + tt.path
			e := f.Load(context.Background(), ref)
			if e.Status != tt.want {
				t.Errorf("Load() status = %v (%v), want %v", e.Status, e.Err, tt.want)
			}
			if got, ok := cache.Get(ref); !ok || got.Status != tt.want {
				t.Errorf("cache entry = %+v, %v", got, ok)
			}
		})
	}
}

func TestFetcherCancelled(t *testing.T) {
	cache := imagecache.NewMemory(8)
	f := NewFetcher(museum.NewClient(0, ""), cache, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := f.Load(ctx, "http://127.0.0.1:1/never.png")
	if e.Status == imagecache.Failed {
		t.Error("cancelled load recorded as failed")
	}
}
