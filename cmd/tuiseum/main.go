// Package main implements tuiseum, an infinite-canvas browser for museum
// collections that runs in the terminal. The canvas tiles a base set of
// artworks in every direction and pans with drag and momentum.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode      bool
	cpuProfile     string
	themeName      string
	listThemes     bool
	collectionName string
	friction       float64
	minVelocity    float64
	noLabels       bool
	noThumbnails   bool
	asciiOnly      bool
	logLevel       string
	logFile        string
	snapshotDir    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuiseum",
		Short: "Browse museum collections on an infinite canvas",
		Long: `tuiseum - museum collections on an infinite canvas

Drag the canvas with the mouse and let go to coast. The artworks repeat in
every direction, so there is no edge to run into. Click an artwork for its
details, or filter the canvas by one of its tags.`,
		Example: `  # Run tuiseum
  tuiseum

  # Start on a specific collection
  tuiseum --collection art-institute

  # Slippery canvas with a long glide
  tuiseum --friction 0.98

  # Run with a specific theme
  tuiseum --theme dracula

  # List all available themes
  tuiseum --list-themes

  # Run as SSH server
  tuiseum ssh --port 2222

  # Serve to web browsers
  tuiseum web --port 7681

  # Render the canvas to a PNG
  tuiseum snapshot met-design -o design.png`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				for _, t := range theme.Names() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Open the debug overlay and log at debug level")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Nerd Font icons")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config or info)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: from config or $XDG_STATE_HOME/tuiseum/tuiseum.log)")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.Flags().StringVarP(&collectionName, "collection", "c", "", "Collection to open (default: the last one viewed)")
	rootCmd.Flags().Float64Var(&friction, "friction", 0, "Velocity kept per frame while coasting, between 0 and 1 (default: from config or 0.95)")
	rootCmd.Flags().Float64Var(&minVelocity, "min-velocity", 0, "Speed below which coasting stops (default: from config or 0.1)")
	rootCmd.Flags().BoolVar(&noLabels, "no-labels", false, "Hide titles under artworks")
	rootCmd.Flags().BoolVar(&noThumbnails, "no-thumbnails", false, "Draw shape glyphs instead of downloading thumbnails")
	rootCmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Directory for PNG snapshots taken in the TUI (default: current directory)")
	_ = rootCmd.RegisterFlagCompletionFunc("collection", completeCollections)
	_ = rootCmd.RegisterFlagCompletionFunc("theme", completeThemes)

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run tuiseum as SSH server",
		Long: `Run tuiseum as an SSH server

Every connection gets its own canvas. Sessions share the museum catalog
and the thumbnail cache, and never change the collection persisted for
local runs. The server will generate a host key automatically if not
specified.`,
		Example: `  # Start SSH server on default port
  tuiseum ssh

  # Start on custom port, reachable from other hosts
  tuiseum ssh --host 0.0.0.0 --port 2222

  # Specify custom host key
  tuiseum ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")
	sshCmd.Flags().StringVarP(&collectionName, "collection", "c", "", "Collection each session opens on (default: met-design)")

	var webPort, webHost string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve tuiseum to web browsers",
		Long: `Serve tuiseum as a terminal in the browser

Every browser tab gets its own canvas sized to its terminal. Tabs share the
museum catalog and use the settings given on the command line.`,
		Example: `  # Serve on the default port
  tuiseum web

  # Reachable from other hosts
  tuiseum web --host 0.0.0.0 --port 8080 --collection cleveland`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webHost, webPort)
		},
	}

	webCmd.Flags().StringVar(&webPort, "port", config.DefaultWebPort, "Web server port")
	webCmd.Flags().StringVar(&webHost, "host", config.DefaultWebHost, "Web server host")
	webCmd.Flags().StringVarP(&collectionName, "collection", "c", "", "Collection each tab opens on (default: met-design)")
	_ = webCmd.RegisterFlagCompletionFunc("collection", completeCollections)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuiseum configuration",
		Long:  `Manage tuiseum configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tuiseum configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuiseum configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuiseum configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect tuiseum keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listCustomKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)

	collectionsCmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"ls"},
		Short:   "List the available collections",
		Long: `List the museum collections tuiseum can show.

The collection the canvas will open on next is marked with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listCollections()
		},
	}

	var fetchCount int
	var fetchJSON bool
	fetchCmd := &cobra.Command{
		Use:   "fetch [collection]",
		Short: "Load a collection and print its artworks",
		Long: `Load a collection the same way the canvas does and print the result.

Providers that fail are padded with curated artworks, so the output always
has the requested number of items unless every source is unreachable.`,
		Example: `  # Print the design collection
  tuiseum fetch met-design

  # Machine-readable output
  tuiseum fetch art-institute --json | jq '.[].title'`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeCollectionArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), collectionArg(args), fetchCount, fetchJSON)
		},
	}
	fetchCmd.Flags().IntVarP(&fetchCount, "count", "n", 0, "Number of artworks to load, at most 32 (the base tile)")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Output as JSON")

	var tagsSearch string
	var tagsAll bool
	tagsCmd := &cobra.Command{
		Use:   "tags [collection]",
		Short: "Show the tags of a collection or search by tag",
		Long: `Without --tag, load a collection and print how often each tag occurs.

With --tag, run the same tag search the canvas runs and print the matches.
--all widens the search to every collection.`,
		Example: `  # Tag histogram
  tuiseum tags art-institute

  # Search one collection
  tuiseum tags met-design --tag ceramics

  # Search everything
  tuiseum tags --tag portrait --all`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeCollectionArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := museum.ScopeCurrent
			if tagsAll {
				scope = museum.ScopeAll
			}
			return runTags(cmd.Context(), collectionArg(args), tagsSearch, scope)
		},
	}
	tagsCmd.Flags().StringVarP(&tagsSearch, "tag", "t", "", "Search for artworks with this tag")
	tagsCmd.Flags().BoolVar(&tagsAll, "all", false, "Search every collection")

	var snapOut string
	var snapWidth, snapHeight int
	var snapX, snapY float64
	snapshotCmd := &cobra.Command{
		Use:   "snapshot [collection]",
		Short: "Render the tiled canvas to a PNG",
		Long: `Load a collection and render the canvas around an offset to a PNG.

Thumbnails are downloaded first. Without --width and --height the image
covers the area the current terminal would show.`,
		Example: `  # Snapshot the default collection
  tuiseum snapshot

  # Panned and sized
  tuiseum snapshot art-institute -o art.png --x -600 --y -300 --width 2400 --height 1200`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeCollectionArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), snapshotParams{
				collection: collectionArg(args),
				out:        snapOut,
				width:      snapWidth,
				height:     snapHeight,
				x:          snapX,
				y:          snapY,
			})
		},
	}
	snapshotCmd.Flags().StringVarP(&snapOut, "output", "o", "", "Output file (default: timestamped PNG in the current directory)")
	snapshotCmd.Flags().IntVar(&snapWidth, "width", 0, "Image width in pixels")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", 0, "Image height in pixels")
	snapshotCmd.Flags().Float64Var(&snapX, "x", 0, "Canvas offset X")
	snapshotCmd.Flags().Float64Var(&snapY, "y", 0, "Canvas offset Y")
	snapshotCmd.Flags().BoolVar(&noLabels, "no-labels", false, "Leave titles out of the image")

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd)
	rootCmd.AddCommand(collectionsCmd, fetchCmd, tagsCmd, snapshotCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}

func collectionArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func completeCollections(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, c := range museum.Collections() {
		ids = append(ids, string(c.ID)+"\t"+c.Name)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func completeCollectionArg(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeCollections(cmd, args, toComplete)
}

func completeThemes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return theme.Names(), cobra.ShellCompDirectiveNoFileComp
}
