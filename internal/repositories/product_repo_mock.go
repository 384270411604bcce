package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aroundyou/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Shops are resolved through the shop repository to embed them in listings.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	shops    ShopRepository
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository(shops ShopRepository) *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		shops:    shops,
	}
}

// ListPurchasable returns available, in-stock products with their shop embedded.
func (r *MockProductRepository) ListPurchasable(ctx context.Context) ([]models.Product, error) {
	products := r.filter(func(p *models.Product) bool { return p.IsAvailable && p.StockQuantity > 0 })
	for i := range products {
		shop, err := r.shops.GetByID(ctx, products[i].ShopID)
		if err == nil {
			products[i].Shop = shop
		}
	}
	return products, nil
}

// ListByShop returns all products of one shop.
func (r *MockProductRepository) ListByShop(_ context.Context, shopID string) ([]models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.ShopID == shopID }), nil
}

func (r *MockProductRepository) filter(keep func(*models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		product := r.products[id]
		if keep(&product) {
			products = append(products, product)
		}
	}
	return products
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ProductID == "" {
		product.ProductID = uuid.New().String()
	}
	if _, exists := r.products[product.ProductID]; !exists {
		r.order = append(r.order, product.ProductID)
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	stored := *product
	stored.Shop = nil
	r.products[product.ProductID] = stored
	return nil
}

// Update modifies an existing product, keeping its original shop.
func (r *MockProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ProductID]
	if !ok {
		return fmt.Errorf("product %s: %w", product.ProductID, ErrNotFound)
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Currency = product.Currency
	existing.Category = product.Category
	existing.SubCategory = product.SubCategory
	existing.StockQuantity = product.StockQuantity
	existing.IsAvailable = product.IsAvailable
	existing.UpdatedAt = time.Now()
	r.products[product.ProductID] = existing
	return nil
}
