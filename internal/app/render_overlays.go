package app

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Gaurav-Gosain/tuiseum/internal/config"
	"github.com/Gaurav-Gosain/tuiseum/internal/cull"
	"github.com/Gaurav-Gosain/tuiseum/internal/grid"
	"github.com/Gaurav-Gosain/tuiseum/internal/imagecache"
	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
	"github.com/Gaurav-Gosain/tuiseum/internal/tiling"
)

func (g *Gallery) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if !config.HideStatus {
		layers = append(layers, g.renderStatusBar())
	}

	if layer := g.renderEmptyState(); layer != nil {
		layers = append(layers, layer)
	}

	if g.Detail != nil {
		layers = append(layers, g.renderDetail())
	}

	if g.ShowDebug {
		layers = append(layers, g.renderDebug())
	}

	if g.ShowHelp {
		layers = append(layers, g.renderHelp())
	}

	if g.ShowLogs {
		layers = append(layers, g.renderLogViewer())
	}

	if g.Prompt != nil {
		layers = append(layers, g.renderPrompt())
	}

	layers = append(layers, g.renderNotifications()...)
	return layers
}

// renderEmptyState draws the loading panel before the first dataset and the
// empty panel when a load produced nothing.
func (g *Gallery) renderEmptyState() *lipgloss.Layer {
	var lines []string
	title := lipgloss.NewStyle().Foreground(theme.EmptyState()).Bold(true)
	hint := lipgloss.NewStyle().Foreground(theme.HelpGray())

	switch {
	case !g.Loaded && g.Loading:
		lines = append(lines,
			title.Render("tuiseum"),
			"",
			hint.Render("Loading "+g.CollectionName()+"…"),
		)
	case g.Loaded && len(g.Items) == 0 && !g.Loading:
		if g.Filter != nil {
			lines = append(lines, title.Render(fmt.Sprintf("No artworks tagged %q", g.Filter.Tag)), "")
			if g.CanExpandScope() {
				lines = append(lines, hint.Render(g.keyHint(config.ActionExpandScope)+" to search all collections"))
			}
			lines = append(lines, hint.Render(g.keyHint(config.ActionClearFilter)+" to clear the filter"))
		} else {
			lines = append(lines,
				title.Render("Nothing to show in "+g.CollectionName()),
				"",
				hint.Render(g.keyHint(config.ActionNextCollection)+" to try another collection"),
			)
		}
	default:
		return nil
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.EmptyState()).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	centered := lipgloss.Place(g.Width, g.GetCanvasHeight(), lipgloss.Center, lipgloss.Center, box)
	return lipgloss.NewLayer(centered).X(0).Y(0).Z(config.ZIndexEmpty).ID("empty")
}

func (g *Gallery) keyHint(action string) string {
	keys := g.KeybindRegistry.Keys(action)
	if len(keys) == 0 {
		return "(unbound)"
	}
	return "'" + keys[0] + "'"
}

// renderDetail draws the artwork panel. The description scrolls inside the
// space left by the fixed header and footer.
func (g *Gallery) renderDetail() *lipgloss.Layer {
	d := g.Detail
	item := d.Item

	width := min(max(g.Width-4, config.DetailMinWidth), config.DetailMaxWidth)
	inner := max(width-4, 10)

	titleStyle := lipgloss.NewStyle().Foreground(theme.DetailTitle()).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(theme.DetailMeta())
	textStyle := lipgloss.NewStyle().Foreground(theme.DetailText())
	linkStyle := lipgloss.NewStyle().Foreground(theme.DetailLink()).Underline(true)
	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())

	var header []string
	for line := range strings.SplitSeq(wordwrap.String(item.Title, inner), "\n") {
		header = append(header, titleStyle.Render(line))
	}
	if by := item.Byline(); by != "" {
		header = append(header, metaStyle.Render(truncateText(by, inner)))
	}
	header = append(header, "")

	fields := []struct{ label, value string }{
		{"Medium", item.Record.Medium},
		{"Dimensions", item.Record.Dimensions},
		{"Type", item.Record.ObjectType},
		{"Culture", item.Record.Culture},
		{"Department", item.Record.Department},
		{"Credit", item.Record.CreditLine},
		{"Source", item.Source},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		header = append(header, metaStyle.Bold(true).Render(config.GetDetailLabel(f.label)))
		wrapped := indent.String(wordwrap.String(f.value, inner-2), 2)
		for line := range strings.SplitSeq(wrapped, "\n") {
			header = append(header, textStyle.Render(line))
		}
	}

	var desc []string
	if item.Record.Description != "" {
		desc = append(desc, "")
		for line := range strings.SplitSeq(wordwrap.String(item.Record.Description, inner), "\n") {
			desc = append(desc, textStyle.Render(line))
		}
	}

	var footer []string
	if len(d.Tags) > 0 {
		footer = append(footer, "")
		footer = append(footer, wrapChips(g.tagChips(), inner)...)
	}
	link := item.URL
	if link == "" {
		link = item.ImageURL
	}
	if link != "" {
		footer = append(footer, "", linkStyle.Render(truncateText(link, inner)))
	}
	footer = append(footer, "", dim.Render(truncateText("1-6 filter by tag · c copy link · ↑/↓ scroll · esc close", inner)))

	// border and padding take four rows
	avail := max(g.GetCanvasHeight()-4-len(header)-len(footer), 1)
	maxScroll := max(len(desc)-avail, 0)
	d.Scroll = min(d.Scroll, maxScroll)
	if len(desc) > avail {
		desc = desc[d.Scroll : d.Scroll+avail]
	}

	lines := append(append(header, desc...), footer...)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DetailBorder()).
		Padding(1, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))

	x := max((g.Width-lipgloss.Width(box))/2, 0)
	y := max((g.GetCanvasHeight()-lipgloss.Height(box))/2, 0)
	clipped, x, y := clipContent(box, x, y, g.Width, g.GetCanvasHeight())
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(config.ZIndexDetail).ID("detail")
}

// tagChips renders the open artwork's tags as numbered chips.
func (g *Gallery) tagChips() []string {
	chips := make([]string, 0, len(g.Detail.Tags))
	for i, t := range g.Detail.Tags {
		chips = append(chips, lipgloss.NewStyle().
			Background(theme.Tag(t.Category)).
			Foreground(theme.TagFg()).
			Padding(0, 1).
			Render(fmt.Sprintf("%d %s", i+1, t.Label)))
	}
	return chips
}

// wrapChips lays chips out in rows no wider than width.
func wrapChips(chips []string, width int) []string {
	var rows []string
	var row string
	for _, chip := range chips {
		switch {
		case row == "":
			row = chip
		case lipgloss.Width(row)+1+lipgloss.Width(chip) <= width:
			row += " " + chip
		default:
			rows = append(rows, row)
			row = chip
		}
	}
	if row != "" {
		rows = append(rows, row)
	}
	return rows
}

func (g *Gallery) renderPrompt() *lipgloss.Layer {
	label := lipgloss.NewStyle().Foreground(theme.StatusFilter()).Bold(true).Render("Tag: ")
	input := g.Prompt.Input + "█"
	inner := config.TagPromptWidth - 4
	if runes, keep := []rune(input), inner-6; len(runes) > keep {
		input = "…" + string(runes[len(runes)-keep:])
	}
	hint := lipgloss.NewStyle().Foreground(theme.HelpGray()).Render("enter search · esc cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.PromptBorder()).
		Padding(0, 1).
		Width(config.TagPromptWidth).
		Render(label + input + "\n" + hint)

	x := max((g.Width-lipgloss.Width(box))/2, 0)
	y := max(g.GetCanvasHeight()/4, 0)
	return lipgloss.NewLayer(box).X(x).Y(y).Z(config.ZIndexPrompt).ID("prompt")
}

func (g *Gallery) renderHelp() *lipgloss.Layer {
	sectionStyle := lipgloss.NewStyle().Foreground(theme.HelpSection()).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.HelpGray())

	sections := config.GetKeybindings(g.KeybindRegistry)
	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Key))
		}
	}

	var columns []string
	var col []string
	// two columns once the list outgrows the screen
	limit := max(g.Height-8, 10)
	for _, s := range sections {
		block := []string{sectionStyle.Render(s.Title)}
		for _, b := range s.Bindings {
			block = append(block, keyStyle.Width(keyWidth+2).Render(b.Key)+descStyle.Render(b.Description))
		}
		block = append(block, "")
		if len(col) > 0 && len(col)+len(block) > limit {
			columns = append(columns, strings.Join(col, "\n"))
			col = nil
		}
		col = append(col, block...)
	}
	if len(col) > 0 {
		columns = append(columns, strings.Join(col, "\n"))
	}
	for i := range columns[:len(columns)-1] {
		columns[i] = lipgloss.NewStyle().PaddingRight(4).Render(columns[i])
	}

	title := lipgloss.NewStyle().Foreground(theme.HelpSection()).Bold(true).Render("Keybindings")
	content := title + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...) +
		"\n" + descStyle.Render("Press '?' or 'esc' to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(content)

	centered := lipgloss.Place(g.Width, g.Height, lipgloss.Center, lipgloss.Center, box)
	return lipgloss.NewLayer(centered).X(0).Y(0).Z(config.ZIndexHelp).ID("help")
}

func (g *Gallery) renderLogViewer() *lipgloss.Layer {
	logTitle := lipgloss.NewStyle().
		Foreground(theme.LogViewerTitle()).
		Bold(true).
		Render("Logs")

	logsPerPage, maxScroll := LogScrollBounds(g.Height, len(g.LogMessages))
	g.LogScrollOffset = max(0, min(g.LogScrollOffset, maxScroll))

	logLines := []string{logTitle, ""}
	startIdx := g.LogScrollOffset
	displayCount := 0
	msgWidth := config.LogViewerWidth - 6 - len("15:04:05 [ERROR] ")
	for i := startIdx; i < len(g.LogMessages) && displayCount < logsPerPage; i++ {
		msg := g.LogMessages[i]

		var levelColor = theme.LogViewerInfo()
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		case "DEBUG":
			levelColor = theme.LogViewerDebug()
		}

		levelStr := lipgloss.NewStyle().
			Foreground(levelColor).
			Render(fmt.Sprintf("[%s]", msg.Level))
		logLines = append(logLines, fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), levelStr, truncateText(msg.Message, msgWidth)))
		displayCount++
	}

	dim := lipgloss.NewStyle().Foreground(theme.HelpGray())
	if maxScroll > 0 {
		logLines = append(logLines, "", dim.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			startIdx+1, startIdx+displayCount, len(g.LogMessages))))
	}
	logLines = append(logLines, "", dim.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	logBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Width(config.LogViewerWidth).
		Render(strings.Join(logLines, "\n"))

	centered := lipgloss.Place(g.Width, g.Height, lipgloss.Center, lipgloss.Center, logBox)
	return lipgloss.NewLayer(centered).X(0).Y(0).Z(config.ZIndexLogs).ID("logs")
}

// renderDebug draws engine, tiling and process figures in the top-left corner.
func (g *Gallery) renderDebug() *lipgloss.Layer {
	off := g.Engine.Offset()
	vel := g.Engine.Velocity()
	tile := grid.Dimensions().Size()
	centre := tiling.CenterTile(off, tile)
	all := g.Instances()
	visible := cull.Visible(all, off, g.Viewport(), grid.ItemExtent(), config.CullBuffer)

	cpu := 0.0
	if n := len(g.Stats.CPUHistory); n > 0 {
		cpu = g.Stats.CPUHistory[n-1]
	}
	counts := map[imagecache.Status]int{}
	if m, ok := g.images.(*imagecache.Memory); ok {
		counts = m.Counts()
	}

	lines := []string{
		fmt.Sprintf("state     %s  gen %d", g.Engine.State(), g.Engine.Generation()),
		fmt.Sprintf("offset    %.1f, %.1f", off.X, off.Y),
		fmt.Sprintf("velocity  %.2f, %.2f", vel.X, vel.Y),
		fmt.Sprintf("tile      %d, %d  radius %d", centre.X, centre.Y, g.Radius()),
		fmt.Sprintf("instances %d / %d  items %d", len(visible), len(all), len(g.Items)),
		fmt.Sprintf("images    %d loaded  %d loading  %d failed",
			counts[imagecache.Loaded], counts[imagecache.Loading], counts[imagecache.Failed]),
		fmt.Sprintf("request   #%d", g.requestSeq),
		fmt.Sprintf("rss       %s", humanize.IBytes(g.Stats.RSS)),
		fmt.Sprintf("cpu       %.1f%%  ram %.1f%%", cpu, g.Stats.RAMUsage),
		fmt.Sprintf("goroutine %d  fps %d  %s", max(g.Stats.Goroutines, runtime.NumGoroutine()), config.GetFPS(), sinceSample(g.Stats.Sampled)),
	}

	box := lipgloss.NewStyle().
		Foreground(theme.DebugFg()).
		Background(theme.StatusBarBg()).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	clipped, x, y := clipContent(box, 1, 1, g.Width, g.GetCanvasHeight())
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(config.ZIndexDebug).ID("debug")
}

func sinceSample(t time.Time) string {
	if t.IsZero() {
		return "no sample"
	}
	return humanize.Time(t)
}

func (g *Gallery) renderNotifications() []*lipgloss.Layer {
	if len(g.Notifications) == 0 {
		return nil
	}
	g.CleanupNotifications()

	var layers []*lipgloss.Layer
	for i, notif := range g.Notifications {
		if i >= config.MaxVisibleNotifications {
			break
		}

		timeLeft := notif.Duration - time.Since(notif.StartTime)
		if timeLeft <= 0 {
			continue
		}

		var bg = theme.NotificationInfo()
		icon := config.NotificationIconInfo
		switch notif.Type {
		case "error":
			bg, icon = theme.NotificationError(), config.NotificationIconError
		case "warning":
			bg, icon = theme.NotificationWarning(), config.NotificationIconWarning
		case "success":
			bg, icon = theme.NotificationSuccess(), config.NotificationIconSuccess
		}

		style := lipgloss.NewStyle().
			Background(bg).
			Foreground(theme.NotificationBg()).
			Padding(1, 2)
		// bold drops once the fade-out starts
		if timeLeft >= config.NotificationFadeOutDuration {
			style = style.Bold(true)
		}

		maxNotifWidth := min(max(g.Width-8, config.MinNotificationWidth), config.MaxNotificationWidth)
		message := truncateText(notif.Message, maxNotifWidth-10)
		notifBox := style.MaxWidth(maxNotifWidth).Render(fmt.Sprintf(" %s  %s ", icon, message))

		notifX := max(g.Width-lipgloss.Width(notifBox)-config.NotificationMargin, 0)
		notifY := 1 + i*config.NotificationSpacing
		layers = append(layers, lipgloss.NewLayer(notifBox).
			X(notifX).Y(notifY).Z(config.ZIndexNotifications).
			ID("notif-"+notif.ID))
	}
	return layers
}
