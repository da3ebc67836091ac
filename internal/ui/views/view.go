package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shopfront/internal/domain"
)

// StatusKind colors the status message
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusLoading
	StatusSuccess
	StatusError
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	// Top is the interactive part of the screen (header, search, carousel),
	// already rendered by the components that own mouse hit areas.
	Top string

	Route     string
	PageTitle string
	Product   *domain.Product

	Footer        string
	StatusMessage string
	StatusKind    StatusKind
	HelpView      string

	ShowHelp    bool
	HelpContent string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render renders the complete view
func (r *Renderer) Render(state ViewState) string {
	sections := []string{state.Top}

	switch {
	case state.Product != nil:
		sections = append(sections, "", r.RenderDetail(*state.Product, state.Width))
	case state.Route != "" && state.Route != "/":
		sections = append(sections, "", r.RenderPage(state.PageTitle, state.Route, state.Width))
	}

	if state.Footer != "" {
		sections = append(sections, "", r.styles.Footer.Render(state.Footer))
	}
	sections = append(sections, "", r.RenderStatusBar(state))

	content := strings.Join(sections, "\n")
	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(content, state.HelpContent, state.Height, state.Width)
	}
	return content
}

// RenderStatusBar renders the route, the status message and the key help
func (r *Renderer) RenderStatusBar(state ViewState) string {
	route := state.Route
	if route == "" {
		route = "/"
	}
	left := r.styles.Route.Render(route)

	var msg string
	if state.StatusMessage != "" {
		style := r.styles.Status
		switch state.StatusKind {
		case StatusError:
			style = r.styles.StatusError
		case StatusLoading:
			style = r.styles.StatusLoading
		case StatusSuccess:
			style = r.styles.StatusSuccess
		}
		msg = "  " + style.Render(state.StatusMessage)
	}

	line := left + msg
	if state.HelpView == "" {
		return line
	}
	gap := state.Width - lipgloss.Width(line) - lipgloss.Width(state.HelpView)
	if gap < 2 {
		return line + "\n" + state.HelpView
	}
	return line + strings.Repeat(" ", gap) + state.HelpView
}
