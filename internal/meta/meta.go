// Package meta keeps the terminal window title in step with the page being
// shown.
package meta

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Metadata describes the current page
type Metadata struct {
	Title       string
	Description string
}

// Applier emits a title update only when the metadata actually changes
type Applier struct {
	suffix  string
	current Metadata
	applied bool
}

// NewApplier creates an applier that appends " | suffix" to every title
func NewApplier(suffix string) *Applier {
	return &Applier{suffix: suffix}
}

// Apply returns the command that sets the window title, or nil when md is
// what was applied last
func (a *Applier) Apply(md Metadata) tea.Cmd {
	if a.applied && md == a.current {
		return nil
	}
	a.current = md
	a.applied = true
	return tea.SetWindowTitle(a.title(md))
}

// Current returns the last applied metadata
func (a *Applier) Current() Metadata {
	return a.current
}

func (a *Applier) title(md Metadata) string {
	title := strings.TrimSpace(md.Title)
	switch {
	case title == "":
		return a.suffix
	case a.suffix == "" || title == a.suffix:
		return title
	default:
		return title + " | " + a.suffix
	}
}
