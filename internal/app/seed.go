package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aroundyou/internal/models"
	"aroundyou/internal/services"

	"github.com/shopspring/decimal"
)

// Demo credentials created by Seed.
const (
	SeedMerchantEmail = "merchant@aroundyou.pk"
	SeedConsumerEmail = "consumer@aroundyou.pk"
	SeedPassword      = "aroundyou"
)

type seedProduct struct {
	name     string
	category string
	price    string
	stock    int
}

type seedShop struct {
	name     string
	category string
	address  string
	status   models.ShopStatus
	products []seedProduct
}

var seedShops = []seedShop{
	{
		name: "Fresh Valley Groceries", category: "Grocery", address: "Block 4, Clifton, Karachi",
		status: models.ShopStatusOpen,
		products: []seedProduct{
			{"Pasta Sauce", "Grocery", "450", 24},
			{"Basmati Rice 5kg", "Grocery", "2150", 10},
			{"Fresh Milk 1L", "Dairy", "220", 0},
		},
	},
	{
		name: "Spice Garden Restaurant", category: "Restaurant", address: "Zamzama Boulevard, Karachi",
		status: models.ShopStatusOpen,
		products: []seedProduct{
			{"Chicken Biryani", "Restaurant", "650", 40},
			{"Garlic Naan", "Restaurant", "80", 100},
		},
	},
	{
		name: "Midnight Pharmacy", category: "Pharmacy", address: "Tariq Road, Karachi",
		status: models.ShopStatusClosed,
		products: []seedProduct{
			{"Paracetamol 500mg", "Pharmacy", "120", 60},
		},
	},
}

// Seed provisions a demo merchant and consumer with shops, products and
// orders. It does nothing when the demo merchant already exists.
func Seed(ctx context.Context, a *App) error {
	merchant, err := a.Auth.Register(ctx, services.Registration{
		Email: SeedMerchantEmail, Password: SeedPassword, FirstName: "Bilal", UserType: models.UserTypeMerchant,
	})
	if errors.Is(err, services.ErrEmailTaken) {
		a.log.Info().Msg("demo data already present")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed merchant: %w", err)
	}
	consumer, err := a.Auth.Register(ctx, services.Registration{
		Email: SeedConsumerEmail, Password: SeedPassword, FirstName: "Ayesha", UserType: models.UserTypeConsumer,
	})
	if err != nil {
		return fmt.Errorf("seed consumer: %w", err)
	}

	for i, s := range seedShops {
		shop, err := createSeedShop(ctx, a, merchant.UserID, s)
		if err != nil {
			return fmt.Errorf("seed shop %s: %w", s.name, err)
		}

		var created []*models.Product
		for _, p := range s.products {
			product, err := a.Products.Create(ctx, &models.Product{
				ShopID:        shop.ShopID,
				Name:          p.name,
				Price:         decimal.RequireFromString(p.price),
				Category:      p.category,
				StockQuantity: p.stock,
			})
			if err != nil {
				return fmt.Errorf("seed product %s: %w", p.name, err)
			}
			created = append(created, product)
		}

		if err := a.Orders.Create(ctx, seedOrder(consumer.UserID, shop.ShopID, created[0], i)); err != nil {
			return fmt.Errorf("seed order for %s: %w", s.name, err)
		}
	}

	a.log.Info().Str("merchant", SeedMerchantEmail).Str("consumer", SeedConsumerEmail).Msg("demo data seeded")
	return nil
}

// createSeedShop goes through the shop service for open shops. The service
// always opens a shop, so other statuses are written to the store directly.
func createSeedShop(ctx context.Context, a *App, merchantUserID string, s seedShop) (*models.Shop, error) {
	shop := &models.Shop{
		MerchantUserID:        merchantUserID,
		ShopName:              s.name,
		Category:              s.category,
		Address:               s.address,
		FreeDeliveryThreshold: models.DefaultFreeDeliveryThreshold,
	}
	if s.status == models.ShopStatusOpen {
		return a.Shops.Create(ctx, shop)
	}
	shop.Status = s.status
	shop.Location = models.PlaceholderLocation
	if err := a.Store.Shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func seedOrder(consumerID, shopID string, product *models.Product, age int) *models.Order {
	qty := 2
	itemsTotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
	fee := decimal.NewFromInt(150)
	deliveryType := models.DeliveryTypeShopDelivery
	if itemsTotal.GreaterThanOrEqual(models.DefaultFreeDeliveryThreshold) {
		fee = decimal.Zero
	}
	if age%2 == 1 {
		deliveryType = models.DeliveryTypePickup
		fee = decimal.Zero
	}
	return &models.Order{
		ConsumerID:   consumerID,
		ShopID:       shopID,
		OrderDate:    time.Now().Add(-time.Duration(age) * 24 * time.Hour),
		Status:       models.OrderStatuses[age%len(models.OrderStatuses)],
		TotalAmount:  itemsTotal,
		DeliveryFee:  fee,
		FinalAmount:  itemsTotal.Add(fee),
		DeliveryType: deliveryType,
		Items: []models.OrderItem{{
			ProductID:  product.ProductID,
			Quantity:   qty,
			UnitPrice:  product.Price,
			TotalPrice: itemsTotal,
		}},
	}
}
