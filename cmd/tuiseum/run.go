package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	charmlog "charm.land/log/v2"

	"github.com/Gaurav-Gosain/tuiseum/internal/app"
	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/input"
	"github.com/Gaurav-Gosain/tuiseum/internal/logging"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/server"
	"github.com/Gaurav-Gosain/tuiseum/internal/state"
	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
	"github.com/Gaurav-Gosain/tuiseum/internal/thumb"
	"github.com/Gaurav-Gosain/tuiseum/pkg/tuiseum"
)

// runtimeDeps is what every entry point builds from the user config.
type runtimeDeps struct {
	config  *config.UserConfig
	logger  *charmlog.Logger
	closer  io.Closer
	catalog *museum.Catalog
	fetcher *thumb.Fetcher
}

func (d *runtimeDeps) Close() {
	if d.closer != nil {
		_ = d.closer.Close()
	}
}

// setup loads the config, applies the CLI overrides and opens the log file.
// Theme failures are reported but not fatal.
func setup() (*runtimeDeps, error) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}

	level := userConfig.Log.Level
	if logLevel != "" {
		if !logging.ValidLevel(logLevel) {
			return nil, fmt.Errorf("invalid log level %q", logLevel)
		}
		level = logLevel
	}
	if debugMode {
		level = "debug"
	}
	path := userConfig.Log.File
	if logFile != "" {
		path = logFile
	}
	logger, closer, err := logging.Open(path, level)
	if err != nil {
		log.Printf("Warning: %v, logging disabled", err)
		logger, closer = logging.Nop(), nil
	}
	theme.SetLogger(logger)

	if err := config.ApplyOverrides(config.Overrides{
		ThemeName:    themeName,
		Friction:     friction,
		MinVelocity:  minVelocity,
		NoLabels:     noLabels,
		NoThumbnails: noThumbnails,
		Debug:        debugMode,
		ASCIIOnly:    asciiOnly,
	}, userConfig); err != nil {
		log.Printf("Warning: %v", err)
		logger.Warn("theme", "err", err)
	}

	client := museum.NewClient(userConfig.RequestTimeout(), userConfig.Museums.UserAgent)
	catalog := museum.NewCatalog(museum.CatalogOptions{
		Client:     client,
		HarvardKey: userConfig.HarvardKey(),
		Logger:     logger,
	})

	var fetcher *thumb.Fetcher
	if config.ShowThumbnails {
		fetcher = thumb.NewFetcher(client, imagecache.NewMemory(config.ThumbnailCacheSize), config.ThumbnailParallel)
	}

	return &runtimeDeps{
		config:  userConfig,
		logger:  logger,
		closer:  closer,
		catalog: catalog,
		fetcher: fetcher,
	}, nil
}

// startCollection picks the collection to open: the flag, then the persisted
// one, then the configured default.
func startCollection(flag string, userConfig *config.UserConfig, store *state.Store) (museum.CollectionID, error) {
	if flag != "" {
		return museum.ParseCollection(flag)
	}
	if store != nil {
		if _, err := os.Stat(store.Path); err == nil {
			return store.Collection(), nil
		}
	}
	if userConfig != nil && userConfig.Museums.DefaultCollection != "" {
		if id, err := museum.ParseCollection(userConfig.Museums.DefaultCollection); err == nil {
			return id, nil
		}
	}
	return museum.DefaultCollection, nil
}

func runLocal() error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Printf("Warning: failed to close CPU profile file: %v", closeErr)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	app.SetInputHandler(input.HandleInput)

	store, err := state.Default()
	if err != nil {
		deps.logger.Warn("state disabled", "err", err)
		store = nil
	}
	collection, err := startCollection(collectionName, deps.config, store)
	if err != nil {
		return err
	}

	keybindRegistry := config.NewKeybindRegistry(deps.config.Keybindings)

	if debugMode {
		configPath, _ := config.GetConfigPath()
		deps.logger.Debug("starting", "config", configPath, "collection", collection, "fps", config.GetFPS())
	}

	initialGallery := app.New(app.Options{
		Source:      deps.catalog,
		Collection:  collection,
		Thumbs:      deps.fetcher,
		State:       store,
		Logger:      deps.logger,
		Keys:        keybindRegistry,
		SnapshotDir: snapshotDir,
	})

	p := tea.NewProgram(
		initialGallery,
		tea.WithFPS(config.GetFPS()),
		tea.WithoutSignalHandler(),
		tea.WithFilter(tuiseum.FilterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if finalGallery, ok := finalModel.(*app.Gallery); ok {
		finalGallery.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	app.SetInputHandler(input.HandleInput)

	var collection museum.CollectionID
	if collectionName != "" {
		if collection, err = museum.ParseCollection(collectionName); err != nil {
			return err
		}
	}

	log.Printf("Starting tuiseum SSH server on %s:%s", sshHost, sshPort)

	ctx, cancel := shutdownContext("SSH server")
	defer cancel()

	cfg := server.SSHServerConfig{
		Host:       sshHost,
		Port:       sshPort,
		KeyPath:    sshKeyPath,
		Source:     deps.catalog,
		Thumbs:     deps.fetcher,
		Keys:       config.NewKeybindRegistry(deps.config.Keybindings),
		Collection: collection,
		Logger:     deps.logger,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

// shutdownContext is cancelled on SIGINT or SIGTERM.
func shutdownContext(what string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			log.Printf("Shutting down %s...", what)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
	return ctx, cancel
}

func runWebServer(webHost, webPort string) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	collection, err := startCollection(collectionName, deps.config, nil)
	if err != nil {
		return err
	}

	log.Printf("Starting tuiseum web server on http://%s:%s", webHost, webPort)

	ctx, cancel := shutdownContext("web server")
	defer cancel()

	cfg := server.WebServerConfig{
		Host:    webHost,
		Port:    webPort,
		Handler: webSession(deps, collection),
		Logger:  deps.logger,
	}
	if err := server.StartWebServer(ctx, cfg); err != nil {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}

// webSession builds one canvas per browser tab. setup already applied the
// flags and the user config, so sessions keep those settings.
func webSession(deps *runtimeDeps, collection museum.CollectionID) server.SessionHandler {
	return func(pty server.PTY) (tea.Model, []tea.ProgramOption) {
		m := tuiseum.NewForPTY(pty,
			tuiseum.WithKeepConfig(),
			tuiseum.WithUserConfig(deps.config),
			tuiseum.WithSource(deps.catalog),
			tuiseum.WithCollection(collection),
			tuiseum.WithLogger(deps.logger),
		)
		return m, tuiseum.ProgramOptions()
	}
}
