package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/carousel"
	"shopfront/internal/catalog"
	"shopfront/internal/config"
	"shopfront/internal/domain"
	"shopfront/internal/eventbus"
	"shopfront/internal/menu"
	"shopfront/internal/search"
)

type fakeCatalog struct {
	mu        sync.Mutex
	products  []domain.Product
	listErr   error
	searchErr error
	lists     int
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return nil, nil
}

func sampleProducts() []domain.Product {
	access := &domain.Category{Name: "Access"}
	return []domain.Product{
		{ID: "1", Title: "FaceGate", Slug: "facegate", Images: []string{"/f.png"}, Category: &domain.Category{Name: "Face", Parent: access}},
		{ID: "2", Title: "PalmSecure", Slug: "palmsecure", Category: &domain.Category{Name: "Palm", Parent: access}},
		{ID: "3", Title: "Kiosk", Slug: "kiosk"},
	}
}

func newTestModel(t *testing.T, cat *fakeCatalog) (*Model, eventbus.EventBus) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Carousel.AutoPlay = false
	cfg.Search.DebounceMS = 1

	bus := eventbus.New()
	t.Cleanup(bus.Close)

	m := NewModel(bus, cfg, cat, catalog.NewCache())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, bus
}

func loaded(t *testing.T) (*Model, *fakeCatalog, eventbus.EventBus) {
	t.Helper()
	cat := &fakeCatalog{products: sampleProducts()}
	m, bus := newTestModel(t, cat)
	m.Update(m.loadProducts()())
	return m, cat, bus
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and every command nested in batches
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func subscribe(bus eventbus.EventBus, t eventbus.EventType) <-chan eventbus.DomainEvent {
	ch := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(t, func(e eventbus.DomainEvent) { ch <- e })
	return ch
}

func receive(t *testing.T, ch <-chan eventbus.DomainEvent) eventbus.DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
		return nil
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := NewModel(nil, config.DefaultConfig(), &fakeCatalog{}, catalog.NewCache())
	assert.Equal(t, "Loading...", m.View())
}

func TestLoadProductsFillsCarousel(t *testing.T) {
	cat := &fakeCatalog{products: sampleProducts()}
	m, bus := newTestModel(t, cat)
	events := subscribe(bus, eventbus.EventProductsLoaded)

	m.Update(m.loadProducts()())

	assert.Len(t, m.carousel.Slides(), 3)
	assert.Equal(t, 3, receive(t, events).(eventbus.ProductsLoadedEvent).Count)

	view := m.View()
	assert.Contains(t, view, "FaceGate")
	assert.Contains(t, view, "Featured products")
	assert.Contains(t, view, "Loaded 3 products")
}

func TestLoadFailureIsShown(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{listErr: errors.New("offline")})
	m.Update(m.loadProducts()())

	assert.Error(t, m.loadErr)
	assert.Contains(t, m.View(), "Products are unavailable right now")
}

func TestSlashFocusesSearch(t *testing.T) {
	m, _, _ := loaded(t)

	m.Update(keyPress("/"))
	require.Equal(t, focusSearch, m.focus)

	m.Update(keyPress("q"))
	m.Update(keyPress("r"))
	assert.Equal(t, "qr", m.search.Query())

	// esc with the dropdown closed hands focus back to the carousel
	m.Update(keyPress("esc"))
	assert.Equal(t, focusCarousel, m.focus)
	assert.Equal(t, "qr", m.search.Query())
}

func TestCarouselEnterOpensProduct(t *testing.T) {
	m, _, bus := loaded(t)
	events := subscribe(bus, eventbus.EventProductSelected)

	m.Update(keyPress("l"))
	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, carousel.SelectedMsg{Index: 1}, msg)

	m.Update(msg)
	assert.Equal(t, "/products/palmsecure", m.route)
	e := receive(t, events).(eventbus.ProductSelectedEvent)
	assert.Equal(t, "carousel", e.Source)
	assert.Equal(t, "palmsecure", e.Product.Slug)
	assert.Contains(t, m.View(), "/products/palmsecure")

	m.Update(keyPress("esc"))
	assert.Equal(t, "/", m.route)
	assert.Nil(t, m.selected)
}

func TestSearchSelectionRoutes(t *testing.T) {
	m, _, _ := loaded(t)
	m.Update(keyPress("/"))

	_, cmd := m.Update(search.SelectedMsg{Product: sampleProducts()[2]})
	assert.NotNil(t, cmd, "window title changes")
	assert.Equal(t, "/products/kiosk", m.route)
	assert.Equal(t, focusCarousel, m.focus)
}

func TestSelectingSameProductKeepsTitle(t *testing.T) {
	m, _, _ := loaded(t)

	_, cmd := m.Update(search.SelectedMsg{Product: sampleProducts()[0]})
	require.NotNil(t, cmd)
	_, cmd = m.Update(menu.SelectedMsg{Product: sampleProducts()[0]})
	assert.Nil(t, cmd)
}

func TestNavigateToLinkRoute(t *testing.T) {
	m, _, _ := loaded(t)

	m.Update(menu.NavigateMsg{Route: "/solutions/access-control"})
	assert.Equal(t, "/solutions/access-control", m.route)
	assert.Equal(t, "Access Control", m.pageTitle)
	assert.Contains(t, m.View(), "This page is available on the website.")
}

func TestTabOpensMenus(t *testing.T) {
	m, _, _ := loaded(t)

	m.Update(keyPress("tab"))
	assert.Equal(t, focusMenu, m.focus)
	assert.Equal(t, 0, m.header.OpenIndex())
	assert.Contains(t, m.View(), "FaceGate")

	m.Update(keyPress("esc"))
	assert.Equal(t, focusCarousel, m.focus)
	assert.False(t, m.header.IsOpen())
}

func TestRefreshInvalidatesCache(t *testing.T) {
	m, cat, bus := loaded(t)
	events := subscribe(bus, eventbus.EventCacheInvalidated)
	require.True(t, m.cache.Cached())

	_, cmd := m.Update(keyPress("r"))
	require.NotNil(t, cmd)
	assert.False(t, m.cache.Cached())
	receive(t, events)

	m.Update(m.loadProducts()())
	assert.Equal(t, 2, cat.lists)
	assert.True(t, m.cache.Cached())
}

func TestHelpFallsBackToInlinePopup(t *testing.T) {
	m, _, _ := loaded(t)

	m.Update(keyPress("?"))
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Shopfront Help")

	m.Update(keyPress("esc"))
	assert.False(t, m.showHelp)

	m.Update(helpPagerMsg{err: errors.New("no tty")})
	assert.True(t, m.showHelp)
}

func TestQuit(t *testing.T) {
	m, _, _ := loaded(t)
	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestSearchFailureShowsHint(t *testing.T) {
	cat := &fakeCatalog{products: sampleProducts(), searchErr: errors.New("timeout")}
	m, _ := newTestModel(t, cat)
	m.Update(m.loadProducts()())
	m.Update(keyPress("/"))

	_, cmd := m.Update(keyPress("x"))
	for _, msg := range run(cmd) {
		_, fired := m.Update(msg)
		for _, res := range run(fired) {
			m.Update(res)
		}
	}

	require.Equal(t, search.Failed, m.search.State())
	assert.Contains(t, m.View(), "Search is unavailable, try again")
}

func TestClickSearchBoxFocusesIt(t *testing.T) {
	m, _, _ := loaded(t)
	m.View()

	// header on row 0, blank row 1, search box from row 2
	m.Update(tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, focusSearch, m.focus)
}

func TestConfigSavedEventSetsStatus(t *testing.T) {
	m, _, _ := loaded(t)
	m.Update(EventMsg{Event: eventbus.ConfigSavedEvent{Path: "/tmp/c.toml"}})
	assert.Contains(t, m.View(), "Config saved to /tmp/c.toml")
}
