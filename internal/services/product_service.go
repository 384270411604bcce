package services

import (
	"context"

	"aroundyou/internal/events"
	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher events.Publisher
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher events.Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// ListPurchasable retrieves available, in-stock products with their shops.
func (s *ProductService) ListPurchasable(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListPurchasable(ctx)
}

// ListByShop retrieves every product of one shop.
func (s *ProductService) ListByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	return s.repo.ListByShop(ctx, shopID)
}

// Create inserts a product as available and returns the stored row.
func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.IsAvailable = true
	if product.Currency == "" {
		product.Currency = models.DefaultCurrency
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	events.Emit(ctx, s.publisher, events.ProductCreated, map[string]interface{}{
		"product_id": product.ProductID,
		"shop_id":    product.ShopID,
		"name":       product.Name,
	})
	return product, nil
}

// Update writes the mutable fields of a product.
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	return s.repo.Update(ctx, product)
}
