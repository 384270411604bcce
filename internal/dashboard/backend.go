// Package dashboard holds the per-user state behind the consumer and merchant
// dashboards: fetched lists, the cart, the selected shop, form drafts and the
// transient notices produced by user actions.
package dashboard

import (
	"context"
	"errors"

	"aroundyou/internal/models"
)

var (
	// ErrNotPurchasable is returned when adding a product that is not listed,
	// unavailable or out of stock.
	ErrNotPurchasable = errors.New("product cannot be added to the cart")
	// ErrNoShopSelected is returned by shop-scoped actions before a shop is selected.
	ErrNoShopSelected = errors.New("no shop selected")
	// ErrUnknownShop is returned when selecting a shop the merchant does not own.
	ErrUnknownShop = errors.New("shop is not one of the merchant's shops")
	// ErrUnknownProduct is returned when updating a product outside the selected shop.
	ErrUnknownProduct = errors.New("product is not listed in the selected shop")
	// ErrUnknownOrder is returned when changing an order outside the selected shop.
	ErrUnknownOrder = errors.New("order is not listed in the selected shop")
)

// ShopSource is the remote shops table.
type ShopSource interface {
	ListOpen(ctx context.Context) ([]models.Shop, error)
	ListByMerchant(ctx context.Context, merchantUserID string) ([]models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) (*models.Shop, error)
}

// ProductSource is the remote products table.
type ProductSource interface {
	ListPurchasable(ctx context.Context) ([]models.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
}

// OrderSource is the remote orders table.
type OrderSource interface {
	ListByConsumer(ctx context.Context, consumerID string) ([]models.Order, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}

// Backend bundles the tables the dashboards talk to.
type Backend struct {
	Shops    ShopSource
	Products ProductSource
	Orders   OrderSource
}
