package ui

import (
	"log"

	"shopfront/internal/carousel"
	"shopfront/internal/config"
	"shopfront/internal/menu"
)

func carouselOptions(c config.CarouselSettings) carousel.Options {
	opts := carousel.Options{
		AutoPlay:         c.AutoPlay,
		AutoPlayInterval: c.AutoPlayInterval(),
		ShowDots:         c.ShowDots,
		ShowArrows:       c.ShowArrows,
		SlidesToShow:     c.SlidesToShow,
		DotStyle: carousel.DotStyle{
			Size:        c.Dots.Size,
			ActiveSize:  c.Dots.ActiveSize,
			Color:       c.Dots.Color,
			ActiveColor: c.Dots.ActiveColor,
			Position:    carousel.DotPosition(c.Dots.Position),
		},
	}
	for _, r := range c.Responsive {
		opts.Responsive = append(opts.Responsive, carousel.Rule{
			Breakpoint:   r.Breakpoint,
			SlidesToShow: r.SlidesToShow,
			ShowDots:     r.ShowDots,
		})
	}
	return opts
}

func navEntries(nav []config.NavEntry) []menu.Entry {
	entries := make([]menu.Entry, 0, len(nav))
	for _, n := range nav {
		kind, err := menu.ParseKind(n.Kind)
		if err != nil {
			log.Printf("Nav entry %q: %v", n.Title, err)
		}
		e := menu.Entry{Title: n.Title, Kind: kind}
		for _, l := range n.Links {
			e.Links = append(e.Links, menu.Link{Label: l.Label, Route: l.Route})
		}
		entries = append(entries, e)
	}
	return entries
}

func socialLinks(social []config.SocialLink) []menu.SocialLink {
	links := make([]menu.SocialLink, 0, len(social))
	for _, s := range social {
		p, err := menu.ParsePlatform(s.Platform)
		if err != nil {
			log.Printf("Skipping social link: %v", err)
			continue
		}
		links = append(links, menu.SocialLink{Platform: p, URL: s.URL})
	}
	return links
}
