package menu

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
)

// Link is a labelled route inside a links mega-menu
type Link struct {
	Label string
	Route string
}

// Entry is one item of the nav bar
type Entry struct {
	Title string
	Kind  Kind
	Links []Link
}

// NavigateMsg asks the shell to show a route
type NavigateMsg struct {
	Route string
}

// SelectedMsg is emitted when a product is picked from the products menu
type SelectedMsg struct {
	Product domain.Product
}

type productsMsg struct {
	products []domain.Product
	err      error
}

// KeyMap defines the header bindings
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the stock bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next menu")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous menu")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menu")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Select, k.Close}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Close}, {k.Up, k.Down, k.Select}}
}

// item is one line of an open mega-menu
type item struct {
	label   string
	heading bool
	product *domain.Product
	route   string
}

type span struct {
	from, to int
}

// Header is the nav bar with its mega-menus
type Header struct {
	brand   string
	entries []Entry
	cache   *catalog.Cache
	load    catalog.LoadFunc
	keys    KeyMap
	styles  Styles

	groups  []Group
	loaded  bool
	loadErr error

	open   int
	cursor int

	y      int
	width  int
	titles []span
	height int
}

// NewHeader creates a header. The products menu reads through cache using load.
func NewHeader(brand string, entries []Entry, cache *catalog.Cache, load catalog.LoadFunc) *Header {
	return &Header{
		brand:   brand,
		entries: entries,
		cache:   cache,
		load:    load,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		open:    -1,
	}
}

func (h *Header) Keys() KeyMap      { return h.keys }
func (h *Header) IsOpen() bool      { return h.open >= 0 }
func (h *Header) OpenIndex() int    { return h.open }
func (h *Header) Entries() []Entry  { return h.entries }
func (h *Header) Groups() []Group   { return h.groups }
func (h *Header) LoadErr() error    { return h.loadErr }
func (h *Header) SetWidth(w int)    { h.width = w }
func (h *Header) SetPosition(y int) { h.y = y }

// SetProducts installs an already loaded listing
func (h *Header) SetProducts(products []domain.Product) {
	h.groups = GroupByCategory(products)
	h.loaded = true
	h.loadErr = nil
}

// Invalidate forgets the listing so the next products menu reloads it
func (h *Header) Invalidate() {
	h.groups = nil
	h.loaded = false
}

// Contains reports whether a screen row belongs to the header
func (h *Header) Contains(x, y int) bool {
	return y >= h.y && y < h.y+h.height && x >= 0 && x < h.width
}

// Open shows the mega-menu of entry i. Entries without a menu close it.
func (h *Header) Open(i int) tea.Cmd {
	if i < 0 || i >= len(h.entries) || h.entries[i].Kind == KindNone {
		h.Close()
		return nil
	}
	h.open = i
	h.cursor = h.firstSelectable()
	if h.entries[i].Kind == KindProducts && !h.loaded {
		return h.fetch()
	}
	return nil
}

// Close hides the open mega-menu
func (h *Header) Close() {
	h.open = -1
	h.cursor = 0
}

// Cycle opens the next (or previous) entry that has a menu, wrapping around
func (h *Header) Cycle(step int) tea.Cmd {
	n := len(h.entries)
	if n == 0 {
		return nil
	}
	i := h.open
	if i < 0 && step < 0 {
		i = 0
	}
	for range n {
		i = ((i+step)%n + n) % n
		if h.entries[i].Kind != KindNone {
			return h.Open(i)
		}
	}
	return nil
}

func (h *Header) fetch() tea.Cmd {
	cache, load := h.cache, h.load
	if cache == nil || load == nil {
		return nil
	}
	return func() tea.Msg {
		products, err := cache.Products(context.Background(), load)
		return productsMsg{products: products, err: err}
	}
}

// Update handles messages
func (h *Header) Update(msg tea.Msg) (*Header, tea.Cmd) {
	switch msg := msg.(type) {
	case productsMsg:
		if msg.err != nil {
			log.Printf("menu: failed to load products: %v", msg.err)
			h.loadErr = msg.err
			return h, nil
		}
		h.SetProducts(msg.products)
		h.cursor = h.firstSelectable()
		return h, nil

	case tea.KeyMsg:
		return h, h.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return h, nil
		}
		return h, h.click(msg.X, msg.Y)
	}
	return h, nil
}

func (h *Header) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, h.keys.Next):
		return h.Cycle(1)
	case key.Matches(msg, h.keys.Prev):
		return h.Cycle(-1)
	case key.Matches(msg, h.keys.Close):
		h.Close()
	case key.Matches(msg, h.keys.Up):
		h.move(-1)
	case key.Matches(msg, h.keys.Down):
		h.move(1)
	case key.Matches(msg, h.keys.Select):
		return h.activate(h.cursor)
	}
	return nil
}

func (h *Header) click(x, y int) tea.Cmd {
	if y == h.y {
		for i, s := range h.titles {
			if x >= s.from && x < s.to {
				if h.open == i {
					h.Close()
					return nil
				}
				return h.Open(i)
			}
		}
		return nil
	}
	if !h.IsOpen() {
		return nil
	}
	row := y - h.y - 1
	if !h.Contains(x, y) {
		h.Close()
		return nil
	}
	return h.activate(row)
}

func (h *Header) move(step int) {
	items := h.items()
	if len(items) == 0 {
		return
	}
	i := h.cursor
	for range items {
		i = (i + step + len(items)) % len(items)
		if !items[i].heading {
			h.cursor = i
			return
		}
	}
}

func (h *Header) activate(i int) tea.Cmd {
	items := h.items()
	if i < 0 || i >= len(items) || items[i].heading {
		return nil
	}
	it := items[i]
	h.Close()
	if it.product != nil {
		p := *it.product
		return func() tea.Msg { return SelectedMsg{Product: p} }
	}
	route := it.route
	return func() tea.Msg { return NavigateMsg{Route: route} }
}

func (h *Header) firstSelectable() int {
	for i, it := range h.items() {
		if !it.heading {
			return i
		}
	}
	return 0
}

// items flattens the open menu into display lines
func (h *Header) items() []item {
	if !h.IsOpen() {
		return nil
	}
	var items []item
	switch e := h.entries[h.open]; e.Kind {
	case KindProducts:
		for _, g := range h.groups {
			items = append(items, item{label: g.Name, heading: true})
			for i := range g.Products {
				p := &g.Products[i]
				items = append(items, item{label: p.Title, product: p})
			}
		}
	case KindLinks:
		for _, l := range e.Links {
			items = append(items, item{label: l.Label, route: l.Route})
		}
	}
	return items
}

// View renders the nav bar and the open mega-menu
func (h *Header) View() string {
	var b strings.Builder
	bar := h.styles.Brand.Render(h.brand)
	col := lipgloss.Width(bar)
	h.titles = h.titles[:0]
	for i, e := range h.entries {
		style := h.styles.Title
		if i == h.open {
			style = h.styles.ActiveTitle
		}
		title := e.Title
		if e.Kind != KindNone {
			title += " ▾"
		}
		bar += "   "
		col += 3
		rendered := style.Render(title)
		h.titles = append(h.titles, span{from: col, to: col + lipgloss.Width(rendered)})
		col += lipgloss.Width(rendered)
		bar += rendered
	}
	b.WriteString(h.fit(bar))

	lines := 1
	if h.IsOpen() {
		items := h.items()
		switch {
		case h.entries[h.open].Kind == KindProducts && h.loadErr != nil:
			b.WriteString("\n" + h.styles.Error.Render("  Products are unavailable right now"))
			lines++
		case h.entries[h.open].Kind == KindProducts && !h.loaded:
			b.WriteString("\n" + h.styles.Heading.Render("  Loading…"))
			lines++
		}
		for i, it := range items {
			style := h.styles.Item
			switch {
			case it.heading:
				style = h.styles.Heading
			case i == h.cursor:
				style = h.styles.ActiveItem
			}
			b.WriteString("\n" + h.fit(style.Render(it.label)))
			lines++
		}
	}
	h.height = lines
	return b.String()
}

func (h *Header) fit(s string) string {
	if h.width <= 0 {
		return s
	}
	return ansi.Truncate(s, h.width, "…")
}
