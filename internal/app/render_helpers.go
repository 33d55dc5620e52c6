package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/Gaurav-Gosain/tuiseum/internal/theme"
)

// clipContent clips a block placed at (x, y) to a viewport of the given size.
// It returns the visible part and its new top-left corner, or an empty string
// if nothing is visible.
func clipContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	blockHeight := len(lines)
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, ansi.StringWidth(line))
	}

	if x+blockWidth <= 0 || x >= viewportWidth || y+blockHeight <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := 0, 0
	finalX, finalY := x, y
	if y < 0 {
		clipTop = -y
		finalY = 0
	}
	if x < 0 {
		clipLeft = -x
		finalX = 0
	}

	visible := lines[clipTop:]
	if maxLines := viewportHeight - finalY; maxLines < len(visible) {
		visible = visible[:maxLines]
	}

	if clipLeft == 0 && finalX+blockWidth <= viewportWidth {
		return strings.Join(visible, "\n"), finalX, finalY
	}

	right := clipLeft + viewportWidth - finalX
	clipped := make([]string, len(visible))
	for i, line := range visible {
		clipped[i] = ansi.Cut(line, clipLeft, right)
	}
	return strings.Join(clipped, "\n"), finalX, finalY
}

// renderLabel centres a title in width columns, truncating with an ellipsis.
func renderLabel(title string, width int, hovered bool) string {
	if width <= 0 {
		return ""
	}
	title = truncateText(title, width)
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.LabelDim())
	if hovered {
		style = style.Foreground(theme.LabelFg()).Bold(true)
	}
	return style.Render(title)
}

// truncateText shortens s to width columns with a trailing ellipsis.
func truncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(max(width-1, 0)), "…")
}
