package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/export"
	"github.com/Gaurav-Gosain/tuiseum/internal/geom"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/museum"
	"github.com/Gaurav-Gosain/tuiseum/internal/state"
	"github.com/Gaurav-Gosain/tuiseum/internal/tags"
	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
)

// stdout downsamples styled output to what the terminal supports, and strips
// it entirely when stdout is not a terminal.
func stdout() io.Writer {
	return colorprofile.NewWriter(os.Stdout, os.Environ())
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth is the width used to wrap CLI output.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return config.DefaultTerminalWidth
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader()).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(theme.CLITableKey()).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableDim())).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...)
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// LoadUserConfig writes the commented default file.
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	// #nosec G204 - the editor comes from the user's own environment
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	if _, err := config.LoadUserConfigFrom(path, os.Stderr); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	return nil
}

func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := strings.TrimSpace(os.Getenv(env)); editor != "" {
			return editor, nil
		}
	}
	for _, candidate := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no editor found: set $EDITOR")
}

func resetConfigToDefaults(yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if !yes {
		if !isTerminal(os.Stdin) {
			return errors.New("refusing to reset without confirmation: pass --yes")
		}
		fmt.Printf("This will overwrite %s with the defaults. Continue? [y/N] ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := config.ResetConfig(path); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

func listKeybindings() error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	out := stdout()
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	for _, section := range config.GetKeybindings(config.NewKeybindRegistry(deps.config.Keybindings)) {
		t := newTable("Key", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		_, _ = fmt.Fprintln(out, title.Render(section.Title))
		_, _ = fmt.Fprintln(out, t.String())
	}
	return nil
}

func listCustomKeybindings() error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	defaults := config.DefaultKeybindings()
	t := newTable("Action", "Default", "Custom")
	changed := 0
	for _, action := range config.Actions() {
		custom, ok := deps.config.Keybindings[action]
		if !ok || slices.Equal(custom, defaults[action]) {
			continue
		}
		changed++
		t.Row(action, strings.Join(defaults[action], ", "), strings.Join(custom, ", "))
	}

	if changed == 0 {
		fmt.Println("No custom keybindings")
		return nil
	}
	_, _ = fmt.Fprintln(stdout(), t.String())
	return nil
}

func listCollections() error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	var store *state.Store
	if s, err := state.Default(); err == nil {
		store = s
	}
	current, err := startCollection("", deps.config, store)
	if err != nil {
		return err
	}

	t := newTable("", "ID", "Name", "Source", "Notes")
	for _, c := range museum.Collections() {
		mark := ""
		if c.ID == current {
			mark = "*"
		}
		var notes string
		if c.NeedsKey {
			notes = "needs " + config.HarvardKeyEnv
			if deps.config.HarvardKey() != "" {
				notes = "key set"
			}
		}
		t.Row(mark, string(c.ID), c.Name, c.Source, notes)
	}
	_, _ = fmt.Fprintln(stdout(), t.String())
	return nil
}

// resolveCollection parses name, or falls back to the collection the TUI
// would open on.
func resolveCollection(name string, deps *runtimeDeps) (museum.CollectionID, error) {
	if name != "" {
		return museum.ParseCollection(name)
	}
	var store *state.Store
	if s, err := state.Default(); err == nil {
		store = s
	}
	return startCollection("", deps.config, store)
}

func runFetch(ctx context.Context, name string, count int, asJSON bool) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	id, err := resolveCollection(name, deps)
	if err != nil {
		return err
	}
	if count <= 0 || count > grid.Capacity {
		count = grid.Capacity
	}

	items := deps.catalog.LoadCollection(ctx, id, count)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	return printItems(items)
}

func printItems(items []museum.Item) error {
	if len(items) == 0 {
		fmt.Println("No artworks")
		return nil
	}
	width := terminalWidth()
	titleWidth := uint(max(width/3, 16))
	tagWidth := max(width-int(titleWidth)-30, 20)

	t := newTable("#", "Title", "By", "Tags")
	for _, it := range items {
		t.Row(
			fmt.Sprint(it.ID),
			truncate.StringWithTail(it.Title, titleWidth, "…"),
			truncate.StringWithTail(it.Byline(), 24, "…"),
			wordwrap.String(strings.Join(tags.Labels(it.Record), ", "), tagWidth),
		)
	}
	_, _ = fmt.Fprintln(stdout(), t.String())
	return nil
}

func runTags(ctx context.Context, name, tag string, scope museum.Scope) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	id, err := resolveCollection(name, deps)
	if err != nil {
		return err
	}

	if tag != "" {
		items := deps.catalog.SearchByTag(ctx, id, tag, scope, grid.Capacity)
		if len(items) == 0 {
			fmt.Printf("No artworks tagged %q in %s\n", tag, scope)
			return nil
		}
		return printItems(items)
	}

	counts := tags.All(deps.catalog.LoadCollection(ctx, id, grid.Capacity))
	if len(counts) == 0 {
		fmt.Println("No tags")
		return nil
	}
	t := newTable("Tag", "Artworks")
	for _, c := range counts {
		t.Row(c.Label, fmt.Sprint(c.Count))
	}
	_, _ = fmt.Fprintln(stdout(), t.String())
	return nil
}

type snapshotParams struct {
	collection string
	out        string
	width      int
	height     int
	x, y       float64
}

func runSnapshot(ctx context.Context, p snapshotParams) error {
	deps, err := setup()
	if err != nil {
		return err
	}
	defer deps.Close()

	id, err := resolveCollection(p.collection, deps)
	if err != nil {
		return err
	}
	items := deps.catalog.LoadCollection(ctx, id, grid.Capacity)
	if len(items) == 0 {
		return fmt.Errorf("no artworks loaded for %s", id)
	}

	opts := export.Options{
		Items:  items,
		Offset: geom.V(p.x, p.y),
		Width:  p.width,
		Height: p.height,
		Labels: config.ShowLabels,
	}
	if p.width <= 0 && p.height <= 0 {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 && rows > 0 {
			opts.Viewport = geom.Size{
				W: float64(cols * config.CellWidth),
				H: float64(rows * config.CellHeight),
			}
		}
	}

	if deps.fetcher != nil {
		g, gctx := errgroup.WithContext(ctx)
		for _, it := range items {
			ref := it.Thumb()
			if ref == "" {
				continue
			}
			g.Go(func() error {
				deps.fetcher.Load(gctx, ref)
				return nil
			})
		}
		_ = g.Wait()
		opts.Images = deps.fetcher.Cache()
	}

	path := p.out
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		path = export.DefaultPath(wd, time.Now())
	}
	if err := export.SavePNG(path, opts); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Println(path)
	return nil
}
