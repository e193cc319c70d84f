package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay replaces a rectangle of a rendered view with the overlay
// lines, anchored at (x, y). Truncation is ANSI-aware so the styling on
// both sides of the overlay survives.
func spliceOverlay(view string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlay[0])

	for i, line := range overlay {
		row := y + i
		if row < 0 || row >= len(viewLines) {
			continue
		}

		base := viewLines[row]
		baseWidth := ansi.StringWidth(base)

		var b strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(base, x, "")
			b.WriteString(prefix)
			if pad := x - ansi.StringWidth(prefix); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(line)
		b.WriteString("\x1b[0m")

		if end := x + overlayWidth; end < baseWidth {
			b.WriteString(ansi.TruncateLeft(base, end, ""))
		}

		viewLines[row] = b.String()
	}

	return strings.Join(viewLines, "\n")
}
