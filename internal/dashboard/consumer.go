package dashboard

import (
	"context"
	"fmt"
	"sync"

	"aroundyou/internal/logging"
	"aroundyou/internal/metrics"
	"aroundyou/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Consumer is the state of one consumer's dashboard.
type Consumer struct {
	profile *models.UserProfile
	backend Backend
	log     zerolog.Logger

	mu       sync.Mutex
	shops    []models.Shop
	products []models.Product
	orders   []models.Order
	cart     *Cart
	loading  bool
	notices  noticeQueue
}

// ConsumerView is everything the consumer dashboard renders.
type ConsumerView struct {
	Profile    *models.UserProfile `json:"profile"`
	Loading    bool                `json:"loading"`
	Shops      []models.Shop       `json:"shops"`
	Products   []ProductView       `json:"products"`
	Categories []string            `json:"categories"`
	Orders     []OrderView         `json:"orders"`
	Cart       CartView            `json:"cart"`
	Notices    []Notice            `json:"notices"`
}

// NewConsumer creates an empty, not yet mounted consumer dashboard.
func NewConsumer(profile *models.UserProfile, backend Backend) *Consumer {
	return &Consumer{
		profile:  profile,
		backend:  backend,
		log:      logging.Component("consumer_dashboard").With().Str("user_id", profile.UserID).Logger(),
		shops:    []models.Shop{},
		products: []models.Product{},
		orders:   []models.Order{},
		cart:     NewCart(),
		loading:  true,
	}
}

// Mount fetches open shops, purchasable products and the order history
// concurrently. Each fetch stands alone: a failure only leaves its own list untouched.
func (c *Consumer) Mount(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { c.FetchShops(ctx); return nil })
	g.Go(func() error { c.FetchProducts(ctx); return nil })
	g.Go(func() error { c.FetchOrders(ctx); return nil })
	_ = g.Wait()
}

// FetchShops replaces the shop list with the currently open shops.
func (c *Consumer) FetchShops(ctx context.Context) {
	shops, err := c.backend.Shops.ListOpen(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.fetchFailed("shops", err)
		return
	}
	c.shops = nonNil(shops)
}

// FetchProducts replaces the product list and clears the loading flag.
func (c *Consumer) FetchProducts(ctx context.Context) {
	products, err := c.backend.Products.ListPurchasable(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.fetchFailed("products", err)
		return
	}
	c.products = nonNil(products)
}

// FetchOrders replaces the order history, newest first.
func (c *Consumer) FetchOrders(ctx context.Context) {
	orders, err := c.backend.Orders.ListByConsumer(ctx, c.profile.UserID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.fetchFailed("orders", err)
		return
	}
	c.orders = nonNil(orders)
}

// fetchFailed records a failed fetch. Callers hold mu.
func (c *Consumer) fetchFailed(list string, err error) {
	c.log.Error().Err(err).Str("list", list).Msg("fetch failed")
	metrics.FetchFailures.WithLabelValues(list).Inc()
	c.notices.failure("Error loading " + list)
}

// AddToCart increments the cart quantity of a listed, purchasable product and
// returns the new quantity. Stock is not re-checked and not used as a cap.
func (c *Consumer) AddToCart(productID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	product := c.findProduct(productID)
	if product == nil || !product.Purchasable() {
		return 0, fmt.Errorf("%w: %s", ErrNotPurchasable, productID)
	}
	qty := c.cart.Add(productID)
	metrics.CartAdds.Inc()
	c.notices.success("Added to cart")
	return qty, nil
}

func (c *Consumer) findProduct(productID string) *models.Product {
	for i := range c.products {
		if c.products[i].ProductID == productID {
			return &c.products[i]
		}
	}
	return nil
}

// Cart returns the current cart contents.
func (c *Consumer) Cart() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.view()
}

// Products returns the loaded products narrowed by filter, and the categories
// of the whole unfiltered list.
func (c *Consumer) Products(filter ProductFilter) ([]ProductView, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.productViews(filter), Categories(c.products)
}

// productViews renders the filtered product list. Callers hold mu.
func (c *Consumer) productViews(filter ProductFilter) []ProductView {
	filtered := FilterProducts(c.products, filter)
	out := make([]ProductView, len(filtered))
	for i := range filtered {
		out[i] = ProductView{
			Product:      filtered[i],
			CanAddToCart: filtered[i].Purchasable(),
			InCart:       c.cart.Quantity(filtered[i].ProductID),
		}
	}
	return out
}

// View renders the dashboard with the product list narrowed by filter and
// hands out the pending notices.
func (c *Consumer) View(filter ProductFilter) ConsumerView {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ConsumerView{
		Profile:    c.profile,
		Loading:    c.loading,
		Shops:      append([]models.Shop{}, c.shops...),
		Products:   c.productViews(filter),
		Categories: Categories(c.products),
		Orders:     orderViews(c.orders),
		Cart:       c.cart.view(),
		Notices:    c.notices.drain(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
