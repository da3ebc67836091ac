package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopfront/internal/domain"
)

// RenderDetail renders the product detail panel
func (r *Renderer) RenderDetail(p domain.Product, width int) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(p.Title))
	b.WriteString("\n")
	if path := p.CategoryPath(); path != "" {
		b.WriteString(r.styles.Dim.Render(path))
		b.WriteString("\n")
	}
	if p.Summary != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(width-4, 10)).Render(p.Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if p.HasImages() {
		for _, img := range p.Images {
			if strings.TrimSpace(img) == "" {
				continue
			}
			b.WriteString("▣ " + img + "\n")
		}
	} else {
		b.WriteString(r.styles.Placeholder.Render(PlaceholderGlyph + " no images available"))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Route.Render(p.Route()))

	return r.styles.Detail.Width(max(width-2, 10)).Render(b.String())
}

// RenderPage renders a content route that has no terminal view of its own
func (r *Renderer) RenderPage(title, route string, width int) string {
	body := r.styles.Title.Render(title) + "\n\n" +
		r.styles.Dim.Render("This page is available on the website.") + "\n" +
		r.styles.Route.Render(route)
	return r.styles.Detail.Width(max(width-2, 10)).Render(body)
}
