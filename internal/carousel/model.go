package carousel

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shopfront/internal/schedule"
)

// Slide is an opaque renderable item. The carousel never looks inside.
type Slide interface {
	Render(width int) string
}

// SelectedMsg is emitted when the user activates the first visible slide
type SelectedMsg struct {
	Index int
}

// KeyMap defines the carousel key bindings
type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Dot    key.Binding
	Select key.Binding
}

// DefaultKeyMap returns the stock bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Dot:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to group")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Select}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Dot, k.Select}}
}

type span struct {
	from, to int // [from, to)
}

func (s span) contains(x int) bool {
	return x >= s.from && x < s.to
}

// hitMap records where the last View drew each interactive element, in
// screen coordinates
type hitMap struct {
	stripTop, stripBottom int
	strip                 span
	prevArrow, nextArrow  span
	dotRow                int
	dots                  []span
	bottom                int
}

// Model is the Bubble Tea component around Engine
type Model struct {
	engine   *Engine
	slides   []Slide
	autoplay *schedule.Timer
	keys     KeyMap
	styles   Styles

	focused  bool
	hovering bool

	x, y     int
	viewport int
	hits     hitMap
}

// New creates a carousel showing slides
func New(opts Options, slides []Slide) *Model {
	e := NewEngine(opts, len(slides))
	return &Model{
		engine:   e,
		slides:   slides,
		autoplay: schedule.New(e.Interval()),
		keys:     DefaultKeyMap(),
		styles:   NewStyles(e.Options().DotStyle),
	}
}

// Init arms autoplay when enabled
func (m *Model) Init() tea.Cmd {
	if m.engine.AutoPlay() && !m.engine.Paused() {
		return m.autoplay.Start()
	}
	return nil
}

// Close stops autoplay. Outstanding ticks are dropped.
func (m *Model) Close() {
	m.autoplay.Stop()
	m.engine.CancelDrag()
}

// Engine exposes the position state
func (m *Model) Engine() *Engine {
	return m.engine
}

// Keys returns the key bindings for help rendering
func (m *Model) Keys() KeyMap {
	return m.keys
}

// AutoPlaying reports whether an autoplay tick is pending
func (m *Model) AutoPlaying() bool {
	return m.autoplay.Active()
}

// SetSlides replaces the slide set, as a parent re-render would
func (m *Model) SetSlides(slides []Slide) {
	m.slides = slides
	m.engine.SetTotal(len(slides))
}

// Slides returns the current slide set
func (m *Model) Slides() []Slide {
	return m.slides
}

// SetPosition records the screen origin of the component for mouse hit tests
func (m *Model) SetPosition(x, y int) {
	m.x, m.y = x, y
}

// SetWidth resizes the component to the given viewport width
func (m *Model) SetWidth(viewport int) {
	m.viewport = viewport
	container := viewport - 2*gutterWidth
	if !m.engine.Options().ShowArrows {
		container = viewport
	}
	m.engine.Resize(viewport, container)
}

func (m *Model) Focus()        { m.focused = true }
func (m *Model) Blur()         { m.focused = false }
func (m *Model) Focused() bool { return m.focused }

// Contains reports whether a screen cell is inside the last rendered area
func (m *Model) Contains(x, y int) bool {
	return x >= m.x && x < m.x+m.viewport && y >= m.y && y < m.hits.bottom
}

// Captures reports whether a drag has moved far enough to own pointer events
// regardless of where they land
func (m *Model) Captures() bool {
	return m.engine.Captured()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case schedule.TickMsg:
		if !m.autoplay.Owns(msg) {
			return m, nil
		}
		m.engine.Tick()
		return m, m.autoplay.Start()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.engine.Prev()
	case key.Matches(msg, m.keys.Next):
		m.engine.Next()
	case key.Matches(msg, m.keys.Dot):
		if r := msg.Runes; len(r) == 1 {
			m.engine.GoToDot(int(r[0] - '1'))
		}
	case key.Matches(msg, m.keys.Select):
		if m.engine.Total() == 0 {
			return m, nil
		}
		index := m.engine.Current()
		return m, func() tea.Msg { return SelectedMsg{Index: index} }
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	inside := m.Contains(msg.X, msg.Y)
	cmd := m.setHover(inside)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return cmd
		}
		m.press(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.engine.Dragging() {
			m.engine.Move(msg.X)
		}

	case tea.MouseActionRelease:
		if m.engine.Dragging() {
			if dir := m.engine.Release(); dir != None {
				log.Printf("carousel: drag committed %s to slide %d", dir, m.engine.Current())
			}
		}
	}
	return cmd
}

func (m *Model) press(x, y int) {
	h := m.hits
	if y >= h.stripTop && y < h.stripBottom {
		switch {
		case m.engine.ShowArrows() && h.prevArrow.contains(x):
			m.engine.Prev()
			return
		case m.engine.ShowArrows() && h.nextArrow.contains(x):
			m.engine.Next()
			return
		case h.strip.contains(x):
			m.engine.Press(x)
			return
		}
	}
	if y == h.dotRow {
		for i, d := range h.dots {
			if d.contains(x) {
				m.engine.GoToDot(i)
				return
			}
		}
	}
}

// setHover pauses autoplay while the pointer is over the carousel and
// re-arms it on leave
func (m *Model) setHover(inside bool) tea.Cmd {
	if inside == m.hovering {
		return nil
	}
	m.hovering = inside
	m.engine.Hover(inside)
	if inside {
		m.autoplay.Stop()
		return nil
	}
	if m.engine.AutoPlay() {
		return m.autoplay.Start()
	}
	return nil
}
