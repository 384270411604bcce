package dashboard

// Cart accumulates requested quantities per product id. It is never persisted
// and nothing consumes it yet; it backs the item-count badge.
type Cart struct {
	quantities map[string]int
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{quantities: make(map[string]int)}
}

// Add increments the quantity of productID and returns the new quantity.
func (c *Cart) Add(productID string) int {
	c.quantities[productID]++
	return c.quantities[productID]
}

// Quantity returns how many of productID are in the cart.
func (c *Cart) Quantity(productID string) int {
	return c.quantities[productID]
}

// Count is the total number of items across all products.
func (c *Cart) Count() int {
	total := 0
	for _, qty := range c.quantities {
		total += qty
	}
	return total
}

// Items returns a copy of the product id to quantity mapping.
func (c *Cart) Items() map[string]int {
	out := make(map[string]int, len(c.quantities))
	for id, qty := range c.quantities {
		out[id] = qty
	}
	return out
}

// CartView is the serialized cart.
type CartView struct {
	Items map[string]int `json:"items"`
	Count int            `json:"count"`
}

func (c *Cart) view() CartView {
	return CartView{Items: c.Items(), Count: c.Count()}
}
