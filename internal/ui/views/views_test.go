package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"shopfront/internal/domain"
)

func TestProductCardPlaceholder(t *testing.T) {
	card := NewProductCard(domain.Product{Title: "CardLink RFID Reader"}, NewStyles())
	out := card.Render(30)

	assert.Contains(t, out, PlaceholderGlyph+" no image")
	assert.Contains(t, out, "—")
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 30, ansi.StringWidth(line))
	}
	assert.Equal(t, 5, lipgloss.Height(out))
}

func TestProductCardImagesAndCategory(t *testing.T) {
	p := domain.Product{
		Title:    "FaceGate X2",
		Images:   []string{"/a.png", " ", "/b.png"},
		Category: &domain.Category{Name: "Face", Parent: &domain.Category{Name: "Access"}},
	}
	out := NewProductCard(p, NewStyles()).Render(30)
	assert.Contains(t, out, "▣ 2 images")
	assert.Contains(t, out, "Access › Face")
	assert.NotContains(t, out, PlaceholderGlyph)
}

func TestProductCardNarrow(t *testing.T) {
	out := NewProductCard(domain.Product{Title: "FaceGate"}, NewStyles()).Render(3)
	assert.Equal(t, "Fac", out)
}

func TestRenderDetail(t *testing.T) {
	r := NewRenderer(NewStyles())
	out := r.RenderDetail(domain.Product{Title: "Kiosk", Slug: "kiosk", Summary: "Self-service"}, 60)
	assert.Contains(t, out, "Kiosk")
	assert.Contains(t, out, "Self-service")
	assert.Contains(t, out, "/products/kiosk")
	assert.Contains(t, out, PlaceholderGlyph)
}

func TestStatusBar(t *testing.T) {
	r := NewRenderer(NewStyles())
	out := r.RenderStatusBar(ViewState{Width: 60, Route: "/products/kiosk", StatusMessage: "Loaded 3 products", HelpView: "? help"})
	assert.Equal(t, 1, lipgloss.Height(out))
	assert.Equal(t, 60, lipgloss.Width(out))
	assert.True(t, strings.HasPrefix(out, "/products/kiosk  Loaded 3 products"))
	assert.True(t, strings.HasSuffix(out, "? help"))
}

func TestPopupOverlayKeepsSurroundings(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	base := strings.Repeat(strings.Repeat("x", 40)+"\n", 11) + strings.Repeat("x", 40)
	out := pr.RenderPopupOverlay(base, "hi", 12, 40)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 12)
	assert.Equal(t, strings.Repeat("x", 40), lines[0])
	for _, line := range lines {
		assert.Equal(t, 40, ansi.StringWidth(line))
	}
	assert.Contains(t, out, "hi")
}

func TestRenderShowsProductDetail(t *testing.T) {
	r := NewRenderer(NewStyles())
	p := domain.Product{Title: "Kiosk", Slug: "kiosk"}
	out := r.Render(ViewState{Width: 60, Height: 20, Top: "top", Route: p.Route(), Product: &p, Footer: "© Sentinel"})
	assert.True(t, strings.HasPrefix(out, "top\n"))
	assert.Contains(t, out, "/products/kiosk")
	assert.Contains(t, out, "© Sentinel")
}
