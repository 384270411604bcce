package repositories

import (
	"context"
	"errors"
	"fmt"

	"aroundyou/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// ListPurchasable retrieves every product a consumer could add to a cart.
func (r *GORMProductRepository) ListPurchasable(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Where("is_available = ?", true).
		Where("stock_quantity > ?", 0).
		Order("created_at, product_id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list purchasable products: %w", err)
	}
	return products, nil
}

// ListByShop retrieves all products of one shop regardless of stock.
func (r *GORMProductRepository) ListByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at, product_id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products of shop %s: %w", shopID, err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ProductID == "" {
		product.ProductID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("Shop").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes the mutable columns. A map is used so that false and 0 are written too.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("product_id = ?", product.ProductID).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"currency":       product.Currency,
			"category":       product.Category,
			"sub_category":   product.SubCategory,
			"stock_quantity": product.StockQuantity,
			"is_available":   product.IsAvailable,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ProductID, ErrNotFound)
	}
	return nil
}
