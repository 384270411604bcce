// Package discovery serves the public shop discovery page: a static catalog of
// sample shops with category counts, and the map view model around the visitor.
package discovery

import "strings"

// ViewMode selects how the discovery page lays out shops.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewMap  ViewMode = "map"
)

// ParseViewMode returns the mode named by s, defaulting to the grid.
func ParseViewMode(s string) ViewMode {
	if ViewMode(strings.ToLower(s)) == ViewMap {
		return ViewMap
	}
	return ViewGrid
}

// Category is a discovery filter chip.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Shop is a discovery card.
type Shop struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Rating       float64  `json:"rating"`
	DeliveryTime string   `json:"delivery_time"`
	Distance     string   `json:"distance"`
	Tags         []string `json:"tags"`
	FreeDelivery bool     `json:"free_delivery"`
	IsOpen       bool     `json:"is_open"`
}

var categories = []Category{
	{ID: "all", Name: "All Shops", Count: 47},
	{ID: "restaurant", Name: "Restaurants", Count: 18},
	{ID: "grocery", Name: "Groceries", Count: 12},
	{ID: "electronics", Name: "Electronics", Count: 8},
	{ID: "pharmacy", Name: "Pharmacy", Count: 6},
	{ID: "fashion", Name: "Fashion", Count: 3},
}

var sampleShops = []Shop{
	{
		Name: "Fresh Valley Groceries", Category: "Grocery Store", Rating: 4.6,
		DeliveryTime: "15-25 min", Distance: "0.8 km",
		Tags: []string{"Fresh Produce", "Organic", "24/7"}, FreeDelivery: true, IsOpen: true,
	},
	{
		Name: "Spice Garden Restaurant", Category: "Pakistani Cuisine", Rating: 4.4,
		DeliveryTime: "20-35 min", Distance: "1.2 km",
		Tags: []string{"Halal", "Spicy", "Family"}, FreeDelivery: false, IsOpen: true,
	},
	{
		Name: "Tech Hub Electronics", Category: "Electronics", Rating: 4.8,
		DeliveryTime: "30-45 min", Distance: "2.1 km",
		Tags: []string{"Gadgets", "Repair", "Warranty"}, FreeDelivery: true, IsOpen: true,
	},
	{
		Name: "Midnight Pharmacy", Category: "Healthcare", Rating: 4.2,
		DeliveryTime: "10-20 min", Distance: "0.5 km",
		Tags: []string{"24/7", "Prescription", "Emergency"}, FreeDelivery: false, IsOpen: false,
	},
	{
		Name: "Fashion Forward", Category: "Clothing", Rating: 4.7,
		DeliveryTime: "25-40 min", Distance: "1.8 km",
		Tags: []string{"Trendy", "Affordable", "Local"}, FreeDelivery: true, IsOpen: true,
	},
	{
		Name: "Coffee Corner Café", Category: "Beverages", Rating: 4.5,
		DeliveryTime: "10-15 min", Distance: "0.3 km",
		Tags: []string{"Coffee", "Pastries", "Cozy"}, FreeDelivery: false, IsOpen: true,
	},
}

// Categories returns the filter chips with selected marked. An unknown or
// empty id selects "all".
func Categories(selected string) []Category {
	known := false
	for _, c := range categories {
		if c.ID == selected {
			known = true
		}
	}
	if !known {
		selected = "all"
	}

	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Selected = c.ID == selected
		out[i] = c
	}
	return out
}

// SearchShops returns the sample shops whose name or category contains query,
// ignoring case. The category chips do not narrow the result.
func SearchShops(query string) []Shop {
	q := strings.ToLower(query)
	out := make([]Shop, 0, len(sampleShops))
	for _, s := range sampleShops {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Category), q) {
			out = append(out, s)
		}
	}
	return out
}

// Query is the discovery page input.
type Query struct {
	Search   string `query:"q"`
	Category string `query:"category"`
	View     string `query:"view"`
	Lng      string `query:"lng"`
	Lat      string `query:"lat"`
}

// Page is the rendered discovery page. Map is set only in map mode.
type Page struct {
	Query      string     `json:"query"`
	View       ViewMode   `json:"view"`
	Categories []Category `json:"categories"`
	Shops      []Shop     `json:"shops"`
	Map        *MapView   `json:"map,omitempty"`
}

// Discover renders the page for q. mapboxToken feeds the map view.
func Discover(q Query, mapboxToken string) Page {
	page := Page{
		Query:      q.Search,
		View:       ParseViewMode(q.View),
		Categories: Categories(q.Category),
		Shops:      SearchShops(q.Search),
	}
	if page.View == ViewMap {
		m := NewMapView(mapboxToken, ParseLocation(q.Lng, q.Lat))
		page.Map = &m
	}
	return page
}
