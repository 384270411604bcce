package services

import (
	"context"

	"aroundyou/internal/events"
	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
)

// ShopService forwards shop queries and inserts to the store.
type ShopService struct {
	repo      repositories.ShopRepository
	publisher events.Publisher
}

// NewShopService creates a new ShopService.
func NewShopService(repo repositories.ShopRepository, publisher events.Publisher) *ShopService {
	return &ShopService{repo: repo, publisher: publisher}
}

// ListOpen returns the shops currently open.
func (s *ShopService) ListOpen(ctx context.Context) ([]models.Shop, error) {
	return s.repo.ListByStatus(ctx, models.ShopStatusOpen)
}

// ListByMerchant returns the shops owned by merchantUserID.
func (s *ShopService) ListByMerchant(ctx context.Context, merchantUserID string) ([]models.Shop, error) {
	return s.repo.ListByMerchant(ctx, merchantUserID)
}

// Create inserts a new open shop at the placeholder location and returns the stored row.
func (s *ShopService) Create(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	shop.Status = models.ShopStatusOpen
	shop.Location = models.PlaceholderLocation
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	events.Emit(ctx, s.publisher, events.ShopCreated, map[string]interface{}{
		"shop_id":          shop.ShopID,
		"merchant_user_id": shop.MerchantUserID,
		"shop_name":        shop.ShopName,
	})
	return shop, nil
}
