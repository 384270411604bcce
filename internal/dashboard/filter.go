package dashboard

import (
	"strings"

	"aroundyou/internal/models"
)

// ProductFilter narrows the loaded product list. Zero values match everything.
type ProductFilter struct {
	Query    string `query:"q"`
	Category string `query:"category"`
}

// Match applies a case-insensitive substring search over the product name,
// description and shop name, and an exact category match.
func (f ProductFilter) Match(p *models.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), q) {
		return true
	}
	return strings.Contains(strings.ToLower(p.ShopName()), q)
}

// FilterProducts returns the products matching f, in their original order.
func FilterProducts(products []models.Product, f ProductFilter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if f.Match(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// Categories derives the distinct categories of the loaded products.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
