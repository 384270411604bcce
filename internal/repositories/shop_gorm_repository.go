package repositories

import (
	"context"
	"errors"
	"fmt"

	"aroundyou/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMShopRepository is a GORM implementation of ShopRepository.
type GORMShopRepository struct {
	db *gorm.DB
}

// NewGORMShopRepository creates a new instance of GORMShopRepository.
func NewGORMShopRepository(db *gorm.DB) *GORMShopRepository {
	return &GORMShopRepository{db: db}
}

// ListByStatus retrieves every shop in the given status.
func (r *GORMShopRepository) ListByStatus(ctx context.Context, status models.ShopStatus) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at, shop_id").
		Find(&shops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s shops: %w", status, err)
	}
	return shops, nil
}

// ListByMerchant retrieves the shops owned by one merchant.
func (r *GORMShopRepository) ListByMerchant(ctx context.Context, merchantUserID string) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).
		Where("merchant_user_id = ?", merchantUserID).
		Order("created_at, shop_id").
		Find(&shops).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shops of merchant %s: %w", merchantUserID, err)
	}
	return shops, nil
}

// GetByID retrieves a single shop.
func (r *GORMShopRepository) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "shop_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("shop %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get shop %s: %w", id, err)
	}
	return &shop, nil
}

// Create inserts a shop and fills in the generated fields.
func (r *GORMShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	if shop.ShopID == "" {
		shop.ShopID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}
