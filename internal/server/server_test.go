package server

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

func TestWithDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg, err := SSHServerConfig{}.withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error: %v", err)
	}
	if cfg.Address() != "localhost:2222" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if !strings.HasSuffix(cfg.KeyPath, filepath.FromSlash(HostKeyRelPath)) {
		t.Errorf("KeyPath = %q", cfg.KeyPath)
	}
	if cfg.Logger == nil {
		t.Error("logger not set")
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		host, port, want string
	}{
		{"0.0.0.0", "22", "0.0.0.0:22"},
		{"::1", "2222", "[::1]:2222"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := SSHServerConfig{Host: tt.host, Port: tt.port}
			if got := cfg.Address(); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplicitValuesKept(t *testing.T) {
	cfg, err := SSHServerConfig{Host: "example", Port: "9", KeyPath: "/k"}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Host != "example" || cfg.Port != "9" || cfg.KeyPath != "/k" {
		t.Errorf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestSessionGalleryEndsWithConnection(t *testing.T) {
	cfg := SSHServerConfig{Logger: log.New(io.Discard)}
	ctx, cancel := context.WithCancel(context.Background())
	g := cfg.newGallery(ctx, "visitor", nil)

	if err := g.Context().Err(); err != nil {
		t.Fatalf("gallery context already done: %v", err)
	}
	cancel()
	select {
	case <-g.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("gallery context outlived the session")
	}
}

func TestWebServerDefaults(t *testing.T) {
	if _, err := (WebServerConfig{}).withDefaults(); err == nil {
		t.Error("missing handler should fail")
	}

	cfg, err := WebServerConfig{
		Handler: func(PTY) (tea.Model, []tea.ProgramOption) { return nil, nil },
	}.withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Address() != "localhost:7681" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Logger == nil {
		t.Error("logger not set")
	}
}
