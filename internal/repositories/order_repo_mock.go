package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"aroundyou/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders   map[string]models.Order
	shops    ShopRepository
	products ProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(shops ShopRepository, products ProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		shops:    shops,
		products: products,
	}
}

// ListByConsumer returns a consumer's orders, newest first, with shop and items embedded.
func (r *MockOrderRepository) ListByConsumer(ctx context.Context, consumerID string) ([]models.Order, error) {
	orders := r.filter(func(o *models.Order) bool { return o.ConsumerID == consumerID })
	for i := range orders {
		if shop, err := r.shops.GetByID(ctx, orders[i].ShopID); err == nil {
			orders[i].Shop = shop
		}
		r.embedProducts(ctx, &orders[i])
	}
	return orders, nil
}

// ListByShop returns the orders of one shop, newest first, with items embedded.
func (r *MockOrderRepository) ListByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	orders := r.filter(func(o *models.Order) bool { return o.ShopID == shopID })
	for i := range orders {
		r.embedProducts(ctx, &orders[i])
	}
	return orders, nil
}

func (r *MockOrderRepository) filter(keep func(*models.Order) bool) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if keep(&order) {
			order.Items = append([]models.OrderItem(nil), order.Items...)
			orders = append(orders, order)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderID < orders[j].OrderID
		}
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}

func (r *MockOrderRepository) embedProducts(ctx context.Context, order *models.Order) {
	for i := range order.Items {
		if product, err := r.products.GetByID(ctx, order.Items[i].ProductID); err == nil {
			order.Items[i].Product = product
		}
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.OrderID == "" {
		order.OrderID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].OrderItemID == "" {
			order.Items[i].OrderItemID = uuid.New().String()
		}
		order.Items[i].OrderID = order.OrderID
	}
	stored := *order
	stored.Shop = nil
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	for i := range stored.Items {
		stored.Items[i].Product = nil
	}
	r.orders[order.OrderID] = stored
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	order.Status = status
	r.orders[id] = order
	return nil
}
