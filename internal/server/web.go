package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/sip"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
)

// PTY reports the size of a browser session's terminal.
type PTY interface {
	Width() int
	Height() int
}

// SessionHandler builds the program for one browser session.
type SessionHandler func(pty PTY) (tea.Model, []tea.ProgramOption)

// WebServerConfig holds configuration for the browser terminal server.
type WebServerConfig struct {
	Host    string
	Port    string
	Handler SessionHandler
	Logger  *log.Logger
}

func (c WebServerConfig) withDefaults() (WebServerConfig, error) {
	if c.Handler == nil {
		return c, errors.New("web server needs a session handler")
	}
	if c.Host == "" {
		c.Host = config.DefaultWebHost
	}
	if c.Port == "" {
		c.Port = config.DefaultWebPort
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c, nil
}

// Address returns host:port.
func (c WebServerConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// StartWebServer serves the canvas to browsers until ctx is cancelled.
func StartWebServer(ctx context.Context, cfg WebServerConfig) error {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return err
	}

	sc := sip.DefaultConfig()
	sc.Host = cfg.Host
	sc.Port = cfg.Port
	s := sip.NewServer(sc)

	cfg.Logger.Info("web server listening", "addr", cfg.Address())
	err = s.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		cfg.Logger.Debug("browser session", "width", pty.Width(), "height", pty.Height())
		return cfg.Handler(pty)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server stopped: %w", err)
	}
	return nil
}
