package repositories

import (
	"context"
	"fmt"

	"aroundyou/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// ListByConsumer retrieves a consumer's order history.
func (r *GORMOrderRepository) ListByConsumer(ctx context.Context, consumerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Items.Product").
		Where("consumer_id = ?", consumerID).
		Order("order_date desc, order_id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of consumer %s: %w", consumerID, err)
	}
	return orders, nil
}

// ListByShop retrieves the orders placed against one shop.
func (r *GORMOrderRepository) ListByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("shop_id = ?", shopID).
		Order("order_date desc, order_id").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of shop %s: %w", shopID, err)
	}
	return orders, nil
}

// Create inserts an order together with its items.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.OrderID == "" {
		order.OrderID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].OrderItemID == "" {
			order.Items[i].OrderItemID = uuid.New().String()
		}
		order.Items[i].OrderID = order.OrderID
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Shop", "Items").Create(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		return tx.Omit("Product").Create(&order.Items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the status column of one order.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return nil
}
