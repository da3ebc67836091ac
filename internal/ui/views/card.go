package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"shopfront/internal/domain"
)

// PlaceholderGlyph stands in for a product image that is missing
const PlaceholderGlyph = "◌"

// ProductCard is a carousel slide showing one product
type ProductCard struct {
	Product domain.Product
	styles  *Styles
}

// NewProductCard creates a card for p
func NewProductCard(p domain.Product, styles *Styles) ProductCard {
	return ProductCard{Product: p, styles: styles}
}

// Render draws the card into exactly width cells
func (c ProductCard) Render(width int) string {
	inner := width - 4 // border and padding
	if inner < 1 {
		return ansi.Truncate(c.Product.Title, width, "")
	}

	lines := []string{
		c.styles.CardTitle.Render(ansi.Truncate(c.Product.Title, inner, "…")),
		c.styles.Dim.Render(ansi.Truncate(orDash(c.Product.CategoryPath()), inner, "…")),
		ansi.Truncate(c.imageLine(), inner, "…"),
	}
	return c.styles.Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (c ProductCard) imageLine() string {
	if !c.Product.HasImages() {
		return c.styles.Placeholder.Render(PlaceholderGlyph + " no image")
	}
	n := 0
	for _, img := range c.Product.Images {
		if strings.TrimSpace(img) != "" {
			n++
		}
	}
	if n == 1 {
		return "▣ 1 image"
	}
	return fmt.Sprintf("▣ %d images", n)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
