package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment status of an order. Any status may follow
// any other; merchants assign it freely.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every assignable status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReadyForPickup,
	OrderStatusOutForDelivery,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// DeliveryType is how an order reaches the consumer.
type DeliveryType string

const (
	DeliveryTypePickup       DeliveryType = "pickup"
	DeliveryTypeShopDelivery DeliveryType = "shop_delivery"
)

// OrderItem is a point-in-time copy of a product inside an order.
type OrderItem struct {
	OrderItemID string          `json:"order_item_id" gorm:"column:order_item_id;primaryKey;type:varchar(36)"`
	OrderID     string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID   string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2)"`
	TotalPrice  decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2)"`
	Product     *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ProductID"`
}

func (OrderItem) TableName() string { return "order_items" }

// Order is a consumer purchase against one shop.
type Order struct {
	OrderID      string          `json:"order_id" gorm:"column:order_id;primaryKey;type:varchar(36)"`
	ConsumerID   string          `json:"consumer_id" gorm:"index;type:varchar(36)"`
	ShopID       string          `json:"shop_id" gorm:"index;type:varchar(36)"`
	OrderDate    time.Time       `json:"order_date" gorm:"index"`
	Status       OrderStatus     `json:"status" gorm:"type:varchar(32)"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2)"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(12,2)"`
	FinalAmount  decimal.Decimal `json:"final_amount" gorm:"type:decimal(12,2)"`
	DeliveryType DeliveryType    `json:"delivery_type" gorm:"type:varchar(16)"`
	Shop         *Shop           `json:"shop,omitempty" gorm:"foreignKey:ShopID;references:ShopID"`
	Items        []OrderItem     `json:"order_items,omitempty" gorm:"foreignKey:OrderID;references:OrderID"`
}

func (Order) TableName() string { return "orders" }

// TotalsConsistent reports whether the stored amounts satisfy
// final_amount = sum(items.total_price) + delivery_fee and
// total_amount = sum(items.total_price). Nothing enforces this on write.
func (o *Order) TotalsConsistent() bool {
	itemsTotal := decimal.Zero
	for _, item := range o.Items {
		itemsTotal = itemsTotal.Add(item.TotalPrice)
	}
	if len(o.Items) > 0 && !itemsTotal.Equal(o.TotalAmount) {
		return false
	}
	return o.FinalAmount.Equal(o.TotalAmount.Add(o.DeliveryFee))
}
