package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aroundyou/internal/models"

	"github.com/google/uuid"
)

// MockShopRepository is an in-memory implementation of ShopRepository.
type MockShopRepository struct {
	shops map[string]models.Shop
	order []string // insertion order
	mu    sync.RWMutex
}

// NewMockShopRepository creates a new instance of MockShopRepository.
func NewMockShopRepository() *MockShopRepository {
	return &MockShopRepository{
		shops: make(map[string]models.Shop),
	}
}

// ListByStatus returns every shop in the given status.
func (r *MockShopRepository) ListByStatus(_ context.Context, status models.ShopStatus) ([]models.Shop, error) {
	return r.filter(func(s *models.Shop) bool { return s.Status == status }), nil
}

// ListByMerchant returns the shops owned by merchantUserID.
func (r *MockShopRepository) ListByMerchant(_ context.Context, merchantUserID string) ([]models.Shop, error) {
	return r.filter(func(s *models.Shop) bool { return s.MerchantUserID == merchantUserID }), nil
}

func (r *MockShopRepository) filter(keep func(*models.Shop) bool) []models.Shop {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shops := make([]models.Shop, 0, len(r.order))
	for _, id := range r.order {
		shop := r.shops[id]
		if keep(&shop) {
			shops = append(shops, shop)
		}
	}
	return shops
}

// GetByID returns a shop by its ID.
func (r *MockShopRepository) GetByID(_ context.Context, id string) (*models.Shop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, ok := r.shops[id]
	if !ok {
		return nil, fmt.Errorf("shop %s: %w", id, ErrNotFound)
	}
	return &shop, nil
}

// Create adds a new shop.
func (r *MockShopRepository) Create(_ context.Context, shop *models.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if shop.ShopID == "" {
		shop.ShopID = uuid.New().String()
	}
	if _, exists := r.shops[shop.ShopID]; !exists {
		r.order = append(r.order, shop.ShopID)
	}
	now := time.Now()
	shop.CreatedAt = now
	shop.UpdatedAt = now
	r.shops[shop.ShopID] = *shop
	return nil
}
