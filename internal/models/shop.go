package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopStatus is the lifecycle status of a shop.
type ShopStatus string

const (
	ShopStatusOpen    ShopStatus = "open"
	ShopStatusClosed  ShopStatus = "closed"
	ShopStatusHoliday ShopStatus = "holiday"
)

// DefaultFreeDeliveryThreshold applies when the merchant leaves the field blank.
var DefaultFreeDeliveryThreshold = decimal.NewFromInt(600)

// PlaceholderLocation is written for every new shop until addresses are geocoded.
const PlaceholderLocation = "POINT(74.3587 31.5204)"

// Shop is a merchant-owned storefront.
type Shop struct {
	ShopID                string          `json:"shop_id" gorm:"column:shop_id;primaryKey;type:varchar(36)"`
	MerchantUserID        string          `json:"merchant_user_id" gorm:"index;type:varchar(36)"`
	ShopName              string          `json:"shop_name"`
	Description           *string         `json:"description"`
	Category              string          `json:"category"`
	Status                ShopStatus      `json:"status" gorm:"index;type:varchar(16)"`
	Address               string          `json:"address"`
	PhoneNumber           *string         `json:"phone_number"`
	Email                 *string         `json:"email"`
	LogoURL               *string         `json:"logo_url"`
	CoverImageURL         *string         `json:"cover_image_url"`
	Location              string          `json:"location"`
	FreeDeliveryThreshold decimal.Decimal `json:"free_delivery_threshold" gorm:"type:decimal(12,2)"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func (Shop) TableName() string { return "shops" }
