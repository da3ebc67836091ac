package menu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the header and footer
type Styles struct {
	Brand       lipgloss.Style
	Title       lipgloss.Style
	ActiveTitle lipgloss.Style
	Heading     lipgloss.Style
	Item        lipgloss.Style
	ActiveItem  lipgloss.Style
	Error       lipgloss.Style
	Social      lipgloss.Style
}

// DefaultStyles returns the stock look
func DefaultStyles() Styles {
	return Styles{
		Brand:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Title:       lipgloss.NewStyle(),
		ActiveTitle: lipgloss.NewStyle().Bold(true).Underline(true),
		Heading:     lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("241")),
		Item:        lipgloss.NewStyle().PaddingLeft(4),
		ActiveItem:  lipgloss.NewStyle().PaddingLeft(4).Bold(true).Foreground(lipgloss.Color("99")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Social:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// SocialLink is a footer profile link
type SocialLink struct {
	Platform Platform
	URL      string
}

// RenderFooter renders the brand line and the social links
func RenderFooter(brand string, links []SocialLink, width int) string {
	st := DefaultStyles()
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, st.Social.Render(l.Platform.Glyph()+" "+l.Platform.Label()))
	}
	left := "© " + brand
	right := strings.Join(parts, "  ")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}
