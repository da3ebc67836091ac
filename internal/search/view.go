package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// inputHeight is the bordered input line
const inputHeight = 3

// Styles for the search box
type Styles struct {
	Input        lipgloss.Style
	FocusedInput lipgloss.Style
	Item         lipgloss.Style
	Selected     lipgloss.Style
	Category     lipgloss.Style
	Empty        lipgloss.Style
	Pending      lipgloss.Style
}

// DefaultStyles returns the stock look
func DefaultStyles() Styles {
	border := lipgloss.RoundedBorder()
	return Styles{
		Input:        lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("241")).Padding(0, 1),
		FocusedInput: lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color("99")).Padding(0, 1),
		Item:         lipgloss.NewStyle().PaddingLeft(2),
		Selected:     lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(lipgloss.Color("99")),
		Category:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:        lipgloss.NewStyle().PaddingLeft(2).Italic(true).Foreground(lipgloss.Color("241")),
		Pending:      lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("241")),
	}
}

// View renders the input and, when open, the dropdown below it
func (b *Box) View() string {
	style := b.styles.Input
	if b.focused {
		style = b.styles.FocusedInput
	}
	lines := []string{style.Width(b.width - 2).Render(b.input.View())}

	switch {
	case b.state == Pending:
		lines = append(lines, b.styles.Pending.Render(b.spinner.View()+" Searching…"))
	case b.open && b.state == Empty:
		lines = append(lines, b.styles.Empty.Render(NoResultsText(b.input.Value())))
	case b.showingResults():
		for i, p := range b.results {
			lines = append(lines, b.renderItem(i, p.Title, p.CategoryPath()))
		}
	}

	out := strings.Join(lines, "\n")
	b.height = lipgloss.Height(out)
	return out
}

func (b *Box) renderItem(i int, title, category string) string {
	style := b.styles.Item
	marker := "  "
	if i == b.cursor {
		style = b.styles.Selected
		marker = "› "
	}
	line := marker + title
	if category != "" {
		line += "  " + b.styles.Category.Render(category)
	}
	return style.Render(ansi.Truncate(line, b.width-2, "…"))
}

// NoResultsText is the message shown when a query matches nothing
func NoResultsText(query string) string {
	return fmt.Sprintf("No products found for \"%s\"", query)
}
