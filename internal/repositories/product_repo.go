package repositories

import (
	"context"

	"aroundyou/internal/models"
)

// ProductRepository defines data access for products. Lists come back in creation order.
type ProductRepository interface {
	// ListPurchasable returns available, in-stock products with their shop embedded.
	ListPurchasable(ctx context.Context) ([]models.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update writes the mutable fields of a product. The shop reference is never written.
	Update(ctx context.Context, product *models.Product) error
}
