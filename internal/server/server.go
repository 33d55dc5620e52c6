// Package server serves the gallery over SSH and to browsers, one bubbletea
// program per session.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/thumb"
)

// HostKeyRelPath is the host key location under the XDG data directory.
const HostKeyRelPath = "tuiseum/ssh_host_ed25519"

// shutdownTimeout bounds how long open sessions may take to finish.
const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string

	Source     app.Source
	Thumbs     *thumb.Fetcher
	Keys       *config.KeybindRegistry
	Collection museum.CollectionID
	Logger     *log.Logger
}

// withDefaults fills unset fields.
func (c SSHServerConfig) withDefaults() (SSHServerConfig, error) {
	if c.Host == "" {
		c.Host = config.DefaultSSHHost
	}
	if c.Port == "" {
		c.Port = config.DefaultSSHPort
	}
	if c.KeyPath == "" {
		path, err := xdg.DataFile(HostKeyRelPath)
		if err != nil {
			return c, fmt.Errorf("failed to resolve host key path: %w", err)
		}
		c.KeyPath = path
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c, nil
}

// Address returns host:port.
func (c SSHServerConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// StartSSHServer listens until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg SSHServerConfig) error {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return err
	}

	s, err := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(cfg.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(cfg.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.Logger.Info("SSH server listening", "addr", cfg.Address())
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to shut down SSH server: %w", err)
	}
	return nil
}

// teaHandler creates a gallery for one session. Sessions share the source
// and the thumbnail cache but never persist the active collection.
func (c SSHServerConfig) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	g := c.newGallery(sess.Context(), sess.User(), sess)
	if pty, _, ok := sess.Pty(); ok {
		g.Width, g.Height = pty.Window.Width, pty.Window.Height
	}
	return g, nil
}

// newGallery builds a session gallery whose loads end with ctx, so a closed
// connection does not leave downloads running.
func (c SSHServerConfig) newGallery(ctx context.Context, user string, sess ssh.Session) *app.Gallery {
	return app.New(app.Options{
		Source:     c.Source,
		Collection: c.Collection,
		Thumbs:     c.Thumbs,
		Keys:       c.Keys,
		Logger:     c.Logger.With("user", user),
		SSHSession: sess,
		Context:    ctx,
	})
}
