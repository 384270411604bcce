package services

import (
	"context"
	"errors"
	"fmt"

	"aroundyou/internal/events"
	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
)

// ErrInvalidStatus is returned for a status outside the known set.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher events.Publisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher events.Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// ListByConsumer retrieves a consumer's order history, newest first.
func (s *OrderService) ListByConsumer(ctx context.Context, consumerID string) ([]models.Order, error) {
	return s.orderRepo.ListByConsumer(ctx, consumerID)
}

// ListByShop retrieves a shop's orders, newest first.
func (s *OrderService) ListByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	return s.orderRepo.ListByShop(ctx, shopID)
}

// Create stores an order as given. Totals are taken verbatim.
func (s *OrderService) Create(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	return s.orderRepo.Create(ctx, order)
}

// UpdateStatus overwrites the status of an order. Any known status may replace
// any other; there is no transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", orderID, err)
	}

	events.Emit(ctx, s.publisher, events.OrderStatusChanged, map[string]interface{}{
		"order_id": orderID,
		"status":   string(status),
	})
	return nil
}
