package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/adrg/xdg"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantID  string
		display string
		bg      string
		bright  string
		wantErr bool
	}{
		{
			name:    "explicit id",
			file:    "whatever.json",
			body:    `{"id": "gallery-night", "display_name": "Gallery Night", "bg": "#14121a", "red": "#b0413e", "bright_red": "#e06c69"}`,
			wantID:  "gallery-night",
			display: "Gallery Night",
			bg:      "#14121a",
			bright:  "#e06c69",
		},
		{
			name:    "id from file name",
			file:    "Salon-Hang.json",
			body:    `{"red": "#aa3322"}`,
			wantID:  "salon-hang",
			display: "salon-hang",
			bg:      "#000000",
			bright:  "#aa3322",
		},
		{
			name:    "broken json",
			file:    "broken.json",
			body:    `{"id": `,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			got, err := LoadCustomThemeFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.ID != tt.wantID || got.DisplayName != tt.display {
				t.Errorf("id/name = %q/%q, want %q/%q", got.ID, got.DisplayName, tt.wantID, tt.display)
			}
			if c := ColorToString(got.Bg); c != tt.bg {
				t.Errorf("bg = %s, want %s", c, tt.bg)
			}
			if c := ColorToString(got.BrightRed); c != tt.bright {
				t.Errorf("bright red = %s, want %s", c, tt.bright)
			}
			if got.Cursor == nil || ColorToString(got.Cursor) != ColorToString(got.Fg) {
				t.Error("cursor should follow the foreground")
			}
		})
	}
}

func TestFillDefaultsCopiesColors(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "plain.json", `{"fg": "#cccccc"}`)
	got, err := LoadCustomThemeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Cursor == got.Fg {
		t.Error("cursor shares the foreground pointer")
	}
	if copyColor(nil) != nil {
		t.Error("copyColor(nil) should be nil")
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "vitrine.json", `{"bg": "#202020"}`)
	writeTheme(t, dir, "broken.json", `not json`)
	writeTheme(t, dir, "notes.txt", `{"bg": "#ffffff"}`)
	if err := os.Mkdir(filepath.Join(dir, "archive.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(loaded, []string{"vitrine"}) {
		t.Errorf("loaded = %v, want [vitrine]", loaded)
	}

	if _, err := LoadCustomThemes(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing directory should fail")
	}
}

func TestCustomThemeDrivesPalette(t *testing.T) {
	useTempConfig(t)
	dir, err := GetThemesDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(xdg.ConfigHome, ThemesRelPath) {
		t.Errorf("themes dir = %s", dir)
	}
	writeTheme(t, dir, "gallery-night.json", `{"bg": "#14121a"}`)

	if err := Initialize("gallery-night"); err != nil {
		t.Fatal(err)
	}
	if got := ColorToString(CanvasBg()); got != "#14121a" {
		t.Errorf("CanvasBg = %s, want #14121a", got)
	}
	if !slices.Contains(Names(), "gallery-night") {
		t.Error("Names should list the custom theme")
	}
}
