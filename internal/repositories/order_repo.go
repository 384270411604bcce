package repositories

import (
	"context"

	"aroundyou/internal/models"
)

// OrderRepository defines the interface for order data access.
// Lists are ordered by order_date, newest first, with items and their products embedded.
type OrderRepository interface {
	// ListByConsumer also embeds the shop of each order.
	ListByConsumer(ctx context.Context, consumerID string) ([]models.Order, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}
