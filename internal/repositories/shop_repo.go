package repositories

import (
	"context"

	"aroundyou/internal/models"
)

// ShopRepository defines data access for shops. Lists come back in creation order.
type ShopRepository interface {
	ListByStatus(ctx context.Context, status models.ShopStatus) ([]models.Shop, error)
	ListByMerchant(ctx context.Context, merchantUserID string) ([]models.Shop, error)
	GetByID(ctx context.Context, id string) (*models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) error
}
