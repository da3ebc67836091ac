package domain

import "strings"

// Product represents a catalog item as served by the content API
type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Slug     string    `json:"slug"`
	Images   []string  `json:"images"`
	Summary  string    `json:"summary,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// Category is a product category, optionally nested one level under a parent
type Category struct {
	Name   string    `json:"name"`
	Parent *Category `json:"parent,omitempty"`
}

// Route returns the detail route of the product
func (p Product) Route() string {
	return "/products/" + p.Slug
}

// CategoryPath renders "Parent › Name", "Name" or "" when uncategorized
func (p Product) CategoryPath() string {
	if p.Category == nil || p.Category.Name == "" {
		return ""
	}
	if p.Category.Parent != nil && p.Category.Parent.Name != "" {
		return p.Category.Parent.Name + " › " + p.Category.Name
	}
	return p.Category.Name
}

// HasImages reports whether the product has at least one non-empty image
func (p Product) HasImages() bool {
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			return true
		}
	}
	return false
}

// ProductList is the envelope returned by the content API
type ProductList struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data"`
}
