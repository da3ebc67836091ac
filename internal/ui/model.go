package ui

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shopfront/internal/carousel"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/domain"
	"shopfront/internal/eventbus"
	"shopfront/internal/menu"
	"shopfront/internal/meta"
	"shopfront/internal/schedule"
	"shopfront/internal/search"
	"shopfront/internal/ui/views"
)

// statusTTL is how long a transient status message stays visible
const statusTTL = 3 * time.Second

// Catalog is the content API as seen by the shell
type Catalog interface {
	catalog.Lister
	catalog.Searcher
}

// focusArea is the component receiving keyboard input
type focusArea int

const (
	focusCarousel focusArea = iota
	focusSearch
	focusMenu
)

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	catalog Catalog
	cache   *catalog.Cache

	// Components
	header   *menu.Header
	carousel *carousel.Model
	search   *search.Box
	meta     *meta.Applier

	width  int
	height int
	keys   KeyMap
	help   help.Model
	focus  focusArea

	products []domain.Product
	loading  bool
	loadErr  error

	route     string
	pageTitle string
	selected  *domain.Product

	statusMessage string
	statusKind    views.StatusKind
	statusTimer   *schedule.Timer

	showHelp     bool
	inPagerMode  bool
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	footer       []menu.SocialLink
	titleCaser   cases.Caser

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, cat Catalog, cache *catalog.Cache) *Model {
	styles := views.NewStyles()

	m := &Model{
		bus:         bus,
		config:      cfg,
		catalog:     cat,
		cache:       cache,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		route:       "/",
		statusTimer: schedule.New(statusTTL),
		renderer:    views.NewRenderer(styles),
		helpOps:     NewHelpOps(nil),
		titleCaser:  cases.Title(language.English),
	}

	m.header = menu.NewHeader(cfg.Brand, navEntries(cfg.Nav), cache, cat.ListProducts)
	m.carousel = carousel.New(carouselOptions(cfg.Carousel), nil)
	m.carousel.Focus()
	m.search = search.New(cat, search.Options{
		Debounce:   cfg.Search.Debounce(),
		Timeout:    cfg.API.Timeout(),
		MaxResults: cfg.Search.MaxResults,
		Bus:        bus,
	})
	m.meta = meta.NewApplier(cfg.Brand)
	m.footer = socialLinks(cfg.Social)

	m.helpRenderer = NewHelpRenderer(
		helpSection{"Products", m.carousel.Keys().FullHelp()[0]},
		helpSection{"Search", m.search.Keys().ShortHelp()},
		helpSection{"Menus", m.header.Keys().FullHelp()[0]},
		helpSection{"Other", []key.Binding{m.keys.Back, m.keys.Refresh, m.keys.Help, m.keys.Quit}},
	)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Init loads the product listing and starts the carousel
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(
		m.loadProducts(),
		m.carousel.Init(),
		m.meta.Apply(m.homeMetadata()),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.header.SetWidth(msg.Width)
		m.search.SetWidth(min(msg.Width, 60))
		m.carousel.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Inline help popup swallows keys until closed
	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return nil
	}

	switch m.focus {
	case focusSearch:
		switch {
		case key.Matches(msg, m.keys.Back) && !m.search.Open():
			m.focusOn(focusCarousel)
			return nil
		case key.Matches(msg, m.keys.Menu):
			m.focusOn(focusMenu)
			return m.updateHeader(msg)
		}
		return m.updateSearch(msg)

	case focusMenu:
		cmd := m.updateHeader(msg)
		if !m.header.IsOpen() && m.focus == focusMenu {
			m.focusOn(focusCarousel)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Search):
		return m.focusOn(focusSearch)
	case key.Matches(msg, m.keys.Menu):
		m.focusOn(focusMenu)
		return m.updateHeader(msg)
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	case key.Matches(msg, m.keys.Help):
		return m.openHelp()
	case key.Matches(msg, m.keys.Back):
		if m.route != "/" {
			return m.navigateHome()
		}
		return nil
	}

	var cmd tea.Cmd
	m.carousel, cmd = m.carousel.Update(msg)
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		return nil
	}

	// An in-flight drag owns the pointer
	if m.carousel.Captures() {
		var cmd tea.Cmd
		m.carousel, cmd = m.carousel.Update(msg)
		return cmd
	}

	var cmds []tea.Cmd
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		switch {
		case m.header.Contains(msg.X, msg.Y):
			m.focusOn(focusMenu)
		case m.search.Contains(msg.X, msg.Y):
			cmds = append(cmds, m.focusOn(focusSearch))
		case m.carousel.Contains(msg.X, msg.Y):
			m.focusOn(focusCarousel)
		}

		cmds = append(cmds, m.updateHeader(msg))
		if !m.header.IsOpen() && m.focus == focusMenu {
			m.focusOn(focusCarousel)
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Every pointer event reaches the carousel so it sees hover enter/leave
	var cmd tea.Cmd
	m.carousel, cmd = m.carousel.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case productsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Printf("Failed to load products: %v", msg.err)
			m.loadErr = msg.err
			return m, m.setStatus("Could not load products, press r to retry", views.StatusError)
		}
		m.loadErr = nil
		m.products = msg.products
		m.header.SetProducts(msg.products)
		m.carousel.SetSlides(m.cards(msg.products))
		if m.bus != nil {
			m.bus.Publish(eventbus.ProductsLoadedEvent{Count: len(msg.products)})
		}
		return m, m.setStatus(fmt.Sprintf("Loaded %d products", len(msg.products)), views.StatusSuccess)

	case carousel.SelectedMsg:
		if msg.Index < 0 || msg.Index >= len(m.products) {
			return m, nil
		}
		return m, m.selectProduct(m.products[msg.Index], "carousel")

	case search.SelectedMsg:
		m.focusOn(focusCarousel)
		return m, m.selectProduct(msg.Product, "search")

	case menu.SelectedMsg:
		m.focusOn(focusCarousel)
		return m, m.selectProduct(msg.Product, "menu")

	case menu.NavigateMsg:
		m.focusOn(focusCarousel)
		return m, m.navigate(msg.Route)

	case search.ResultMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case schedule.TickMsg:
		if m.statusTimer.Owns(msg) {
			m.statusMessage = ""
			return m, nil
		}
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.carousel, cmd = m.carousel.Update(msg)
		cmds = append(cmds, cmd)
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to the inline popup
			log.Printf("Help pager failed: %v", msg.err)
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		// Components may own other message types (header product loads)
		var cmd tea.Cmd
		m.header, cmd = m.header.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ConfigSavedEvent:
		return m.setStatus("Config saved to "+e.Path, views.StatusSuccess)
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, views.StatusError)
	}
	return nil
}

func (m *Model) updateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) updateHeader(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.header, cmd = m.header.Update(msg)
	return cmd
}

// focusOn moves keyboard focus, blurring whatever had it
func (m *Model) focusOn(area focusArea) tea.Cmd {
	if m.focus == area {
		return nil
	}
	switch m.focus {
	case focusSearch:
		m.search.Blur()
	case focusMenu:
		m.header.Close()
	case focusCarousel:
		m.carousel.Blur()
	}
	m.focus = area
	switch area {
	case focusSearch:
		return m.search.Focus()
	case focusCarousel:
		m.carousel.Focus()
	}
	return nil
}

func (m *Model) selectProduct(p domain.Product, source string) tea.Cmd {
	m.route = p.Route()
	m.pageTitle = p.Title
	m.selected = &p
	if m.bus != nil {
		m.bus.Publish(eventbus.ProductSelectedEvent{Product: p, Source: source})
	}
	log.Printf("Navigating to %s (%s)", m.route, source)
	return m.meta.Apply(meta.Metadata{Title: p.Title, Description: p.Summary})
}

func (m *Model) navigate(route string) tea.Cmd {
	if route == "" || route == "/" {
		return m.navigateHome()
	}
	m.route = route
	m.selected = nil
	m.pageTitle = m.titleCaser.String(strings.ReplaceAll(path.Base(route), "-", " "))
	log.Printf("Navigating to %s", route)
	return m.meta.Apply(meta.Metadata{Title: m.pageTitle})
}

func (m *Model) navigateHome() tea.Cmd {
	m.route = "/"
	m.selected = nil
	m.pageTitle = ""
	return m.meta.Apply(m.homeMetadata())
}

func (m *Model) homeMetadata() meta.Metadata {
	return meta.Metadata{Title: m.config.Brand, Description: "Biometric security products"}
}

// refresh drops the cached listing and loads it again
func (m *Model) refresh() tea.Cmd {
	m.cache.Invalidate()
	m.header.Invalidate()
	if m.bus != nil {
		m.bus.Publish(eventbus.CacheInvalidatedEvent{})
	}
	m.loading = true
	return tea.Batch(m.loadProducts(), m.setStatus("Refreshing products…", views.StatusLoading))
}

func (m *Model) loadProducts() tea.Cmd {
	cache, cat, timeout := m.cache, m.catalog, m.config.API.Timeout()
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		products, err := cache.Products(ctx, cat.ListProducts)
		return productsLoadedMsg{products: products, err: err}
	}
}

func (m *Model) cards(products []domain.Product) []carousel.Slide {
	slides := make([]carousel.Slide, 0, len(products))
	for _, p := range products {
		slides = append(slides, views.NewProductCard(p, m.renderer.Styles()))
	}
	return slides
}

func (m *Model) setStatus(text string, kind views.StatusKind) tea.Cmd {
	m.statusMessage = text
	m.statusKind = kind
	return m.statusTimer.Start()
}

func (m *Model) openHelp() tea.Cmd {
	if m.program == nil {
		m.showHelp = true
		return nil
	}
	return m.fetchHelpPager(m.helpRenderer.Render(0))
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	m.carousel.Close()
	m.search.Close()
	return tea.Quit
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	styles := m.renderer.Styles()
	var top []string
	y := 0
	add := func(s string) {
		top = append(top, s)
		y += lipgloss.Height(s)
	}

	m.header.SetPosition(y)
	add(m.header.View())
	add("")

	m.search.SetPosition(0, y)
	add(m.search.View())
	add("")

	add(styles.Section.Render("Featured products"))
	switch {
	case m.loading && len(m.products) == 0:
		add(styles.StatusLoading.Render("Loading products…"))
	case m.loadErr != nil && len(m.products) == 0:
		add(styles.StatusError.Render("Products are unavailable right now"))
	case len(m.products) == 0:
		add(styles.Dim.Render("No products yet"))
	default:
		m.carousel.SetPosition(0, y)
		add(m.carousel.View())
	}

	status, kind := m.statusMessage, m.statusKind
	if m.search.State() == search.Failed {
		status, kind = "Search is unavailable, try again", views.StatusError
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Top:           strings.Join(top, "\n"),
		Route:         m.route,
		PageTitle:     m.pageTitle,
		Product:       m.selected,
		Footer:        menu.RenderFooter(m.config.Brand, m.footer, m.width),
		StatusMessage: status,
		StatusKind:    kind,
		HelpView:      m.help.View(m.activeKeys()),
		ShowHelp:      m.showHelp,
		HelpContent:   m.helpRenderer.Render(m.height),
	})
}

// activeKeys returns the bindings of the focused component for the status bar
func (m *Model) activeKeys() help.KeyMap {
	switch m.focus {
	case focusSearch:
		return m.search.Keys()
	case focusMenu:
		return m.header.Keys()
	}
	return m.keys
}
