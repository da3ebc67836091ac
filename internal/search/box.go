// Package search implements the debounced product search box with its result
// dropdown. Only the response to the latest query is ever applied.
package search

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
	"shopfront/internal/eventbus"
	"shopfront/internal/schedule"
)

// DefaultDebounce is the pause after the last keystroke before searching
const DefaultDebounce = 300 * time.Millisecond

// State is the lifecycle of the current query
type State int

const (
	Idle State = iota
	Debouncing
	Pending
	Results
	Empty
	Failed
)

func (s State) String() string {
	switch s {
	case Debouncing:
		return "debouncing"
	case Pending:
		return "pending"
	case Results:
		return "results"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// SelectedMsg is emitted when the user picks a result
type SelectedMsg struct {
	Product domain.Product
}

// ResultMsg carries a finished search back into the update loop
type ResultMsg struct {
	token    int
	Query    string
	Products []domain.Product
	Err      error
}

// Options configures a Box
type Options struct {
	Debounce   time.Duration
	Timeout    time.Duration
	MaxResults int
	Width      int
	Bus        eventbus.EventBus
}

// KeyMap defines the search box bindings
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the stock bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous result")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next result")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open product")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Box is the search input plus its dropdown
type Box struct {
	input    textinput.Model
	spinner  spinner.Model
	keys     KeyMap
	styles   Styles
	searcher catalog.Searcher
	debounce *schedule.Timer
	opts     Options

	state   State
	results []domain.Product
	cursor  int
	open    bool
	err     error
	focused bool

	token  int
	cancel context.CancelFunc

	x, y   int
	width  int
	height int
}

// New creates a search box backed by searcher
func New(searcher catalog.Searcher, opts Options) *Box {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Width <= 0 {
		opts.Width = 40
	}

	ti := textinput.New()
	ti.Placeholder = "Search products"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	b := &Box{
		input:    ti,
		spinner:  sp,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		searcher: searcher,
		debounce: schedule.New(opts.Debounce),
		opts:     opts,
	}
	b.SetWidth(opts.Width)
	return b
}

func (b *Box) State() State              { return b.state }
func (b *Box) Query() string             { return b.input.Value() }
func (b *Box) Results() []domain.Product { return b.results }
func (b *Box) Cursor() int               { return b.cursor }
func (b *Box) Open() bool                { return b.open }
func (b *Box) Err() error                { return b.err }
func (b *Box) Focused() bool             { return b.focused }
func (b *Box) Keys() KeyMap              { return b.keys }
func (b *Box) InFlight() bool            { return b.cancel != nil }

// SetWidth sets the rendered width including the border
func (b *Box) SetWidth(w int) {
	b.width = w
	// border, padding and the trailing cursor cell
	b.input.Width = max(w-5-len(b.input.Prompt), 1)
}

// SetPosition records the screen origin for mouse hit tests
func (b *Box) SetPosition(x, y int) {
	b.x, b.y = x, y
}

// Contains reports whether a screen cell is inside the last rendered box
func (b *Box) Contains(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// Focus gives the box keyboard input and reopens a dropdown that has content
func (b *Box) Focus() tea.Cmd {
	b.focused = true
	if b.state == Results || b.state == Empty {
		b.open = true
	}
	return b.input.Focus()
}

// Blur drops keyboard input and hides the dropdown. The query is kept.
func (b *Box) Blur() {
	b.focused = false
	b.open = false
	b.input.Blur()
}

// Close stops the debounce timer and abandons the in-flight request
func (b *Box) Close() {
	b.debounce.Stop()
	b.cancelInFlight()
}

// SetQuery replaces the text as if typed
func (b *Box) SetQuery(q string) tea.Cmd {
	b.input.SetValue(q)
	return b.onInputChange()
}

// Update handles messages
func (b *Box) Update(msg tea.Msg) (*Box, tea.Cmd) {
	switch msg := msg.(type) {
	case schedule.TickMsg:
		if !b.debounce.Owns(msg) {
			return b, nil
		}
		return b, b.fire()

	case ResultMsg:
		b.apply(msg)
		return b, nil

	case spinner.TickMsg:
		if b.state != Pending {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		if !b.focused {
			return b, nil
		}
		return b, b.handleKey(msg)

	case tea.MouseMsg:
		return b, b.handleMouse(msg)
	}
	return b, nil
}

func (b *Box) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keys.Close):
		b.open = false
		return nil
	case key.Matches(msg, b.keys.Up):
		if b.showingResults() {
			b.cursor = (b.cursor - 1 + len(b.results)) % len(b.results)
		}
		return nil
	case key.Matches(msg, b.keys.Down):
		if b.showingResults() {
			b.cursor = (b.cursor + 1) % len(b.results)
		}
		return nil
	case key.Matches(msg, b.keys.Select):
		if b.showingResults() {
			return b.selectResult(b.cursor)
		}
		return nil
	}

	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if b.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, b.onInputChange())
}

func (b *Box) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if !b.Contains(msg.X, msg.Y) {
		b.open = false
		return nil
	}
	if row := msg.Y - b.y - inputHeight; b.showingResults() && row >= 0 && row < len(b.results) {
		return b.selectResult(row)
	}
	return nil
}

// onInputChange restarts the debounce for the current text
func (b *Box) onInputChange() tea.Cmd {
	if strings.TrimSpace(b.input.Value()) == "" {
		b.reset()
		return nil
	}
	b.state = Debouncing
	return b.debounce.Start()
}

// fire issues the request for the current text, superseding any in flight
func (b *Box) fire() tea.Cmd {
	query := b.input.Value()
	if strings.TrimSpace(query) == "" {
		b.reset()
		return nil
	}

	b.cancelInFlight()
	b.token++
	b.state = Pending

	ctx := context.Background()
	var cancel context.CancelFunc
	if b.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	b.cancel = cancel

	token, searcher := b.token, b.searcher
	search := func() tea.Msg {
		products, err := searcher.SearchProducts(ctx, strings.TrimSpace(query))
		return ResultMsg{token: token, Query: query, Products: products, Err: err}
	}
	return tea.Batch(search, b.spinner.Tick)
}

// apply installs a result only if it answers the latest query
func (b *Box) apply(r ResultMsg) {
	if r.token != b.token || r.Query != b.input.Value() {
		log.Printf("search: discarding stale result for %q", r.Query)
		return
	}
	b.cancelInFlight()

	if r.Err != nil {
		log.Printf("search: query %q failed: %v", r.Query, r.Err)
		b.results = nil
		b.cursor = 0
		b.open = false
		b.err = r.Err
		b.state = Failed
		b.publish(r.Query, 0, r.Err)
		return
	}

	products := r.Products
	if b.opts.MaxResults > 0 && len(products) > b.opts.MaxResults {
		products = products[:b.opts.MaxResults]
	}
	b.results = products
	b.cursor = 0
	b.err = nil
	b.open = b.focused
	if len(products) == 0 {
		b.state = Empty
	} else {
		b.state = Results
	}
	b.publish(r.Query, len(products), nil)
}

func (b *Box) selectResult(i int) tea.Cmd {
	p := b.results[i]
	b.input.SetValue("")
	b.reset()
	return func() tea.Msg { return SelectedMsg{Product: p} }
}

// reset returns to Idle, dropping results and anything pending
func (b *Box) reset() {
	b.debounce.Stop()
	b.cancelInFlight()
	b.token++
	b.results = nil
	b.cursor = 0
	b.open = false
	b.err = nil
	b.state = Idle
}

// showingResults reports whether the dropdown lists products
func (b *Box) showingResults() bool {
	return b.open && b.state != Pending && b.state != Empty && len(b.results) > 0
}

func (b *Box) cancelInFlight() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Box) publish(query string, matches int, err error) {
	if b.opts.Bus == nil {
		return
	}
	b.opts.Bus.Publish(eventbus.SearchSettledEvent{Query: query, Matches: matches, Err: err})
}
