package menu

import "shopfront/internal/domain"

// OtherGroup collects products without a category
const OtherGroup = "Other"

// Group is one column of the products mega-menu
type Group struct {
	Name     string
	Products []domain.Product
}

// GroupByCategory buckets products by category path. Groups and their
// members keep first-appearance order.
func GroupByCategory(products []domain.Product) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, p := range products {
		name := p.CategoryPath()
		if name == "" {
			name = OtherGroup
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
