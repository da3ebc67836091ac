package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws the popup centered over a dimmed copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int) string {
	styledPopup := pr.styles.Popup.Render(popupContent)

	popupLines := strings.Split(styledPopup, "\n")
	if len(popupLines) > height {
		popupLines = popupLines[:height]
	}
	modalW := lipgloss.Width(styledPopup)
	if modalW > width {
		modalW = width
	}
	x := max((width-modalW)/2, 0)
	y := max((height-len(popupLines))/2, 0)

	base := strings.Split(desaturate(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	for i, line := range popupLines {
		row := y + i
		if row >= len(base) {
			break
		}
		base[row] = splice(base[row], ansi.Truncate(line, modalW, ""), x, modalW)
	}
	return strings.Join(base, "\n")
}

// splice replaces w cells of line starting at column x
func splice(line, insert string, x, w int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.Cut(line, x+w, ansi.StringWidth(line))
	return left + insert + right
}

// desaturate strips styles from s and recolors it dim gray
func desaturate(s string) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = dim.Render(line)
	}
	return strings.Join(lines, "\n")
}
