package dashboard

import "aroundyou/internal/models"

// ProductView is a product as rendered on the consumer dashboard.
type ProductView struct {
	models.Product
	CanAddToCart bool `json:"can_add_to_cart"`
	InCart       int  `json:"in_cart"`
}

// OrderView is an order with its totals check exposed.
type OrderView struct {
	models.Order
	TotalsConsistent bool `json:"totals_consistent"`
}

func orderViews(orders []models.Order) []OrderView {
	out := make([]OrderView, len(orders))
	for i := range orders {
		out[i] = OrderView{Order: orders[i], TotalsConsistent: orders[i].TotalsConsistent()}
	}
	return out
}
