package theme

import (
	"testing"

	"github.com/adrg/xdg"

	"github.com/Gaurav-Gosain/tuiseum/internal/tags"
)

func useTempConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(func() {
		enabled = false
		xdg.Reload()
	})
}

func TestDisabledUsesFallbacks(t *testing.T) {
	enabled = false
	if Current() != nil {
		t.Fatal("Current should be nil when theming is off")
	}
	if got := ColorToString(CanvasBg()); got != "#101014" {
		t.Errorf("CanvasBg = %s, want #101014", got)
	}
	if got := ColorToString(Tag(tags.Medium)); got != "#e0795b" {
		t.Errorf("Tag(Medium) = %s, want #e0795b", got)
	}
}

func TestTagColorsDiffer(t *testing.T) {
	enabled = false
	seen := make(map[string]tags.Category)
	for _, c := range []tags.Category{tags.Medium, tags.Type, tags.Style, tags.Subject, tags.Culture, tags.Attribute} {
		hex := ColorToString(Tag(c))
		if other, ok := seen[hex]; ok {
			t.Errorf("%s and %s share color %s", c, other, hex)
		}
		seen[hex] = c
	}
}

func TestInitialize(t *testing.T) {
	useTempConfig(t)

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize(\"\") = %v", err)
	}
	if IsEnabled() {
		t.Error("empty theme name should disable theming")
	}

	if err := Initialize("no-such-theme-anywhere"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if !IsEnabled() || Current() == nil {
		t.Error("unknown theme should fall back to the default tint")
	}
}

func TestColorToString(t *testing.T) {
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
	enabled = false
	if got := ColorToString(DetailLink()); got != "#5c9cff" {
		t.Errorf("DetailLink = %s, want #5c9cff", got)
	}
}
