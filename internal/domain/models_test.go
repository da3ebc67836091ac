package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCategoryPath(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{"uncategorized", Product{}, ""},
		{"flat", Product{Category: &Category{Name: "Readers"}}, "Readers"},
		{"nested", Product{Category: &Category{Name: "Readers", Parent: &Category{Name: "Access Control"}}}, "Access Control › Readers"},
		{"empty parent", Product{Category: &Category{Name: "Readers", Parent: &Category{}}}, "Readers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.CategoryPath())
		})
	}
}

func TestProductRouteAndImages(t *testing.T) {
	p := Product{Slug: "fp-520", Images: []string{"", "  "}}
	assert.Equal(t, "/products/fp-520", p.Route())
	assert.False(t, p.HasImages())

	p.Images = append(p.Images, "https://cdn.example.com/fp-520.png")
	assert.True(t, p.HasImages())
}
