package dashboard_test

import (
	"testing"

	"aroundyou/internal/dashboard"
	"aroundyou/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestProductFilter_Match(t *testing.T) {
	shop := &models.Shop{ShopName: "Fresh Valley Groceries"}
	sauce := models.Product{Name: "Pasta Sauce", Category: "Grocery", Shop: shop}
	mango := models.Product{Name: "Mango", Description: strPtr("Sindhri, sweet and ripe"), Category: "Fruit"}

	tests := []struct {
		name    string
		filter  dashboard.ProductFilter
		product models.Product
		want    bool
	}{
		{"empty filter", dashboard.ProductFilter{}, sauce, true},
		{"name substring ignores case", dashboard.ProductFilter{Query: "past"}, sauce, true},
		{"upper case query", dashboard.ProductFilter{Query: "SAUCE"}, sauce, true},
		{"description", dashboard.ProductFilter{Query: "sindhri"}, mango, true},
		{"shop name", dashboard.ProductFilter{Query: "valley"}, sauce, true},
		{"no shop loaded", dashboard.ProductFilter{Query: "valley"}, mango, false},
		{"no match", dashboard.ProductFilter{Query: "rice"}, sauce, false},
		{"category exact", dashboard.ProductFilter{Category: "Grocery"}, sauce, true},
		{"category is case sensitive", dashboard.ProductFilter{Category: "grocery"}, sauce, false},
		{"category and query", dashboard.ProductFilter{Query: "past", Category: "Fruit"}, sauce, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(&tt.product))
		})
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	products := []models.Product{
		{Category: "Restaurant"}, {Category: "Grocery"}, {Category: "Restaurant"}, {Category: "Electronics"},
	}
	assert.Equal(t, []string{"Restaurant", "Grocery", "Electronics"}, dashboard.Categories(products))
	assert.Equal(t, []string{}, dashboard.Categories(nil))
}
