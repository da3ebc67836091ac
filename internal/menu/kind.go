// Package menu builds the header navigation: the nav bar, its mega-menus and
// the footer social links.
package menu

import (
	"fmt"
	"strings"
)

// Kind selects what a nav entry's mega-menu shows
type Kind int

const (
	KindNone Kind = iota
	KindProducts
	KindLinks
)

var kindNames = map[string]Kind{
	"":         KindNone,
	"none":     KindNone,
	"products": KindProducts,
	"links":    KindLinks,
}

// ParseKind maps a configured kind name to a Kind
func ParseKind(s string) (Kind, error) {
	k, ok := kindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return KindNone, fmt.Errorf("unknown menu kind %q", s)
	}
	return k, nil
}

func (k Kind) String() string {
	switch k {
	case KindProducts:
		return "products"
	case KindLinks:
		return "links"
	default:
		return "none"
	}
}

// Platform is a supported social network
type Platform int

const (
	Facebook Platform = iota + 1
	LinkedIn
	X
	YouTube
	Instagram
)

type platformInfo struct {
	name  string
	label string
	glyph string
}

var platforms = map[Platform]platformInfo{
	Facebook:  {"facebook", "Facebook", "f"},
	LinkedIn:  {"linkedin", "LinkedIn", "in"},
	X:         {"x", "X", "𝕏"},
	YouTube:   {"youtube", "YouTube", "▶"},
	Instagram: {"instagram", "Instagram", "◎"},
}

// ParsePlatform maps a configured platform name to a Platform
func ParsePlatform(s string) (Platform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "twitter" {
		return X, nil
	}
	for p, info := range platforms {
		if info.name == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown social platform %q", s)
}

func (p Platform) String() string { return platforms[p].name }
func (p Platform) Label() string  { return platforms[p].label }
func (p Platform) Glyph() string  { return platforms[p].glyph }
