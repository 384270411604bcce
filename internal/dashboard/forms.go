package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"aroundyou/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// FormNumber is the raw content of a number input. It accepts a JSON number or
// a JSON string and keeps the text as typed.
type FormNumber string

func (n *FormNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FormNumber(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("form number: %w", err)
	}
	*n = FormNumber(num.String())
	return nil
}

// ShopForm is the new-shop form of the merchant dashboard.
type ShopForm struct {
	ShopName              string     `json:"shop_name"`
	Description           string     `json:"description"`
	Category              string     `json:"category"`
	Address               string     `json:"address"`
	PhoneNumber           string     `json:"phone_number"`
	Email                 string     `json:"email"`
	FreeDeliveryThreshold FormNumber `json:"free_delivery_threshold"`
}

// NewShopForm returns the form in its reset state.
func NewShopForm() ShopForm {
	return ShopForm{FreeDeliveryThreshold: FormNumber(models.DefaultFreeDeliveryThreshold.String())}
}

// Threshold coerces the typed threshold like parseInt: an optional sign and
// the leading run of digits are used and anything after them is ignored. A
// value without leading digits, or one that reads as zero, falls back to the
// default.
func (f ShopForm) Threshold() decimal.Decimal {
	s := strings.TrimSpace(string(f.FreeDeliveryThreshold))
	sign := ""
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return models.DefaultFreeDeliveryThreshold
	}
	v, err := decimal.NewFromString(sign + s[:end])
	if err != nil || v.IsZero() {
		return models.DefaultFreeDeliveryThreshold
	}
	return v
}

// Shop builds the insert payload for merchantUserID.
func (f ShopForm) Shop(merchantUserID string) *models.Shop {
	return &models.Shop{
		MerchantUserID:        merchantUserID,
		ShopName:              f.ShopName,
		Description:           optional(f.Description),
		Category:              f.Category,
		Address:               f.Address,
		PhoneNumber:           optional(f.PhoneNumber),
		Email:                 optional(f.Email),
		FreeDeliveryThreshold: f.Threshold(),
	}
}

// ProductForm is the new-product form of the merchant dashboard. Price and
// stock come from number inputs, so only numeric text is accepted.
type ProductForm struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         FormNumber `json:"price" validate:"required,numeric"`
	Category      string     `json:"category"`
	SubCategory   string     `json:"sub_category"`
	StockQuantity FormNumber `json:"stock_quantity" validate:"required,numeric"`
	Currency      string     `json:"currency"`
}

// NewProductForm returns the form in its reset state.
func NewProductForm() ProductForm {
	return ProductForm{Currency: models.DefaultCurrency}
}

// Product validates the number inputs and builds the insert payload for shopID.
func (f ProductForm) Product(shopID string) (*models.Product, error) {
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid product form: %w", err)
	}
	price, err := decimal.NewFromString(string(f.Price))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", f.Price, err)
	}
	stock, err := strconv.ParseFloat(string(f.StockQuantity), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stock quantity %q: %w", f.StockQuantity, err)
	}
	currency := f.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &models.Product{
		ShopID:        shopID,
		Name:          f.Name,
		Description:   optional(f.Description),
		Price:         price,
		Currency:      currency,
		Category:      f.Category,
		SubCategory:   optional(f.SubCategory),
		StockQuantity: int(math.Trunc(stock)),
	}, nil
}

// ProductUpdate carries the fields a merchant may change on an existing
// product. Nil fields are left as they are.
type ProductUpdate struct {
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	IsAvailable   *bool            `json:"is_available"`
}

func (u ProductUpdate) apply(p *models.Product) {
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.StockQuantity != nil {
		p.StockQuantity = *u.StockQuantity
	}
	if u.IsAvailable != nil {
		p.IsAvailable = *u.IsAvailable
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
