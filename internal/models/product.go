package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is preset on the product form.
const DefaultCurrency = "PKR"

// Product is a sellable item of exactly one shop.
type Product struct {
	ProductID     string          `json:"product_id" gorm:"column:product_id;primaryKey;type:varchar(36)"`
	ShopID        string          `json:"shop_id" gorm:"index;type:varchar(36)"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Currency      string          `json:"currency" gorm:"type:varchar(8)"`
	Category      string          `json:"category"`
	SubCategory   *string         `json:"sub_category"`
	StockQuantity int             `json:"stock_quantity"`
	IsAvailable   bool            `json:"is_available"`
	Shop          *Shop           `json:"shop,omitempty" gorm:"foreignKey:ShopID;references:ShopID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// Purchasable reports whether a consumer may add the product to a cart.
func (p *Product) Purchasable() bool {
	return p.IsAvailable && p.StockQuantity > 0
}

// ShopName returns the embedded shop's name, or "" when the shop was not loaded.
func (p *Product) ShopName() string {
	if p.Shop == nil {
		return ""
	}
	return p.Shop.ShopName
}
