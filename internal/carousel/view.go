package carousel

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// gutterWidth is the number of cells reserved on each side for an arrow
const gutterWidth = 2

// Styles contains the carousel style definitions
type Styles struct {
	Arrow         lipgloss.Style
	Dragging      lipgloss.Style
	Dot           lipgloss.Style
	ActiveDot     lipgloss.Style
	DotSize       int
	ActiveDotSize int
	DotsOutside   bool
}

// NewStyles derives styles from the configured dot style
func NewStyles(d DotStyle) Styles {
	size, active := d.Size, d.ActiveSize
	if size <= 0 {
		size = 1
	}
	if active <= 0 {
		active = size
	}
	return Styles{
		Arrow:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dragging:      lipgloss.NewStyle().Faint(true),
		Dot:           lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)),
		ActiveDot:     lipgloss.NewStyle().Foreground(lipgloss.Color(d.ActiveColor)),
		DotSize:       size,
		ActiveDotSize: active,
		DotsOutside:   d.Position == DotsOutside,
	}
}

// View renders the strip, arrows and dot bar and records hit areas
func (m *Model) View() string {
	e := m.engine
	h := hitMap{stripTop: m.y}

	if e.Total() == 0 || m.viewport <= 0 {
		h.stripBottom = m.y + 1
		h.bottom = h.stripBottom
		h.dotRow = -1
		m.hits = h
		return ""
	}

	gutter := 0
	if e.ShowArrows() {
		gutter = gutterWidth
	}
	container := m.viewport - 2*gutter
	if container < 1 {
		container = 1
	}

	rows := m.renderStrip(container)
	if !e.Animating() {
		for i := range rows {
			rows[i] = m.styles.Dragging.Render(rows[i])
		}
	}

	mid := len(rows) / 2
	lines := make([]string, 0, len(rows)+2)
	for i, row := range rows {
		left, right := strings.Repeat(" ", gutter), strings.Repeat(" ", gutter)
		if gutter > 0 && i == mid {
			left = m.styles.Arrow.Render("‹") + " "
			right = " " + m.styles.Arrow.Render("›")
		}
		lines = append(lines, left+row+right)
	}

	h.stripBottom = m.y + len(rows)
	h.strip = span{from: m.x + gutter, to: m.x + gutter + container}
	if gutter > 0 {
		h.prevArrow = span{from: m.x, to: m.x + gutter}
		h.nextArrow = span{from: m.x + gutter + container, to: m.x + 2*gutter + container}
	}

	h.dotRow = -1
	if e.ShowDots() {
		if m.styles.DotsOutside {
			lines = append(lines, "")
		}
		bar, dots := m.renderDots()
		pad := (m.viewport - ansi.StringWidth(bar)) / 2
		if pad < 0 {
			pad = 0
		}
		h.dotRow = m.y + len(lines)
		for _, d := range dots {
			h.dots = append(h.dots, span{from: m.x + pad + d.from, to: m.x + pad + d.to})
		}
		lines = append(lines, strings.Repeat(" ", pad)+bar)
	}

	h.bottom = m.y + len(lines)
	m.hits = h
	return strings.Join(lines, "\n")
}

// renderStrip lays every slide side by side and cuts the visible window at
// the engine's offset
func (m *Model) renderStrip(container int) []string {
	e := m.engine
	sw := float64(container) / e.SlidesToShow()

	var columns [][]string
	var widths []int
	height := 1
	for i, s := range m.slides {
		w := int(math.Floor(float64(i+1)*sw)) - int(math.Floor(float64(i)*sw))
		if w < 1 {
			w = 1
		}
		lines := strings.Split(s.Render(w), "\n")
		if len(lines) > height {
			height = len(lines)
		}
		columns = append(columns, lines)
		widths = append(widths, w)
	}

	full := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for i, col := range columns {
			line := ""
			if row < len(col) {
				line = col[row]
			}
			b.WriteString(fit(line, widths[i]))
		}
		full[row] = b.String()
	}

	left := int(math.Round(-e.Offset() * float64(container) / 100))
	out := make([]string, height)
	for row, line := range full {
		out[row] = window(line, left, container)
	}
	return out
}

// renderDots returns the dot bar and the cell span of each dot within it
func (m *Model) renderDots() (string, []span) {
	var b strings.Builder
	var spans []span
	x := 0
	active := m.engine.ActiveDot()
	for i := 0; i < m.engine.DotCount(); i++ {
		if i > 0 {
			b.WriteString(" ")
			x++
		}
		var glyph string
		var n int
		if i == active {
			n = m.styles.ActiveDotSize
			glyph = m.styles.ActiveDot.Render(strings.Repeat("●", n))
		} else {
			n = m.styles.DotSize
			glyph = m.styles.Dot.Render(strings.Repeat("○", n))
		}
		b.WriteString(glyph)
		spans = append(spans, span{from: x, to: x + n})
		x += n
	}
	return b.String(), spans
}

// fit truncates or pads s to exactly w cells
func fit(s string, w int) string {
	s = ansi.Truncate(s, w, "")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// window cuts w cells starting at left, padding where the strip runs out
func window(s string, left, w int) string {
	lead := 0
	if left < 0 {
		lead = -left
		left = 0
	}
	if lead > w {
		lead = w
	}
	cut := ansi.Cut(s, left, left+w-lead)
	return fit(strings.Repeat(" ", lead)+cut, w)
}
