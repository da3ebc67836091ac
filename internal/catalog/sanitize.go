package catalog

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"shopfront/internal/domain"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// PlainText strips markup from CMS-authored text and collapses whitespace
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(textSanitizer().Sanitize(trimmed))
	return strings.Join(strings.Fields(cleaned), " ")
}

// Sanitize returns a copy of p whose display fields are plain text
func Sanitize(p domain.Product) domain.Product {
	p.Title = PlainText(p.Title)
	p.Summary = PlainText(p.Summary)
	p.Category = sanitizeCategory(p.Category)
	return p
}

func sanitizeCategory(c *domain.Category) *domain.Category {
	if c == nil {
		return nil
	}
	return &domain.Category{
		Name:   PlainText(c.Name),
		Parent: sanitizeCategory(c.Parent),
	}
}
