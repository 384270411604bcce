package dashboard_test

import (
	"context"
	"testing"
	"time"

	"aroundyou/internal/dashboard"
	"aroundyou/internal/events"
	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
	"aroundyou/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	shops    *repositories.MockShopRepository
	products *repositories.MockProductRepository
	orders   *repositories.MockOrderRepository
	recorder *events.Recorder
	backend  dashboard.Backend
}

func newFixture() *fixture {
	shops := repositories.NewMockShopRepository()
	products := repositories.NewMockProductRepository(shops)
	orders := repositories.NewMockOrderRepository(shops, products)
	rec := &events.Recorder{}
	return &fixture{
		shops:    shops,
		products: products,
		orders:   orders,
		recorder: rec,
		backend: dashboard.Backend{
			Shops:    services.NewShopService(shops, rec),
			Products: services.NewProductService(products, rec),
			Orders:   services.NewOrderService(orders, rec),
		},
	}
}

func (f *fixture) shop(t *testing.T, merchantID, name string, status models.ShopStatus) models.Shop {
	t.Helper()
	shop := &models.Shop{
		MerchantUserID:        merchantID,
		ShopName:              name,
		Category:              "Grocery",
		Status:                status,
		Address:               "Block 5, Clifton",
		FreeDeliveryThreshold: decimal.NewFromInt(600),
	}
	require.NoError(t, f.shops.Create(context.Background(), shop))
	return *shop
}

func (f *fixture) product(t *testing.T, shopID, name, category string, stock int, available bool) models.Product {
	t.Helper()
	product := &models.Product{
		ShopID:        shopID,
		Name:          name,
		Price:         decimal.RequireFromString("250.00"),
		Currency:      models.DefaultCurrency,
		Category:      category,
		StockQuantity: stock,
		IsAvailable:   available,
	}
	require.NoError(t, f.products.Create(context.Background(), product))
	return *product
}

func (f *fixture) order(t *testing.T, consumerID, shopID string, placed time.Time, status models.OrderStatus) models.Order {
	t.Helper()
	order := &models.Order{
		ConsumerID:   consumerID,
		ShopID:       shopID,
		OrderDate:    placed,
		Status:       status,
		TotalAmount:  decimal.NewFromInt(500),
		DeliveryFee:  decimal.NewFromInt(100),
		FinalAmount:  decimal.NewFromInt(600),
		DeliveryType: models.DeliveryTypeShopDelivery,
	}
	require.NoError(t, f.orders.Create(context.Background(), order))
	return *order
}

var testSession = dashboard.Session{ID: "session-1"}

func consumerProfile() *models.UserProfile {
	return &models.UserProfile{UserID: "consumer-1", Email: "ayesha@example.com", UserType: models.UserTypeConsumer}
}

func merchantProfile() *models.UserProfile {
	return &models.UserProfile{UserID: "merchant-1", Email: "bilal@example.com", UserType: models.UserTypeMerchant}
}

func messages(notices []dashboard.Notice) []string {
	out := make([]string, len(notices))
	for i, n := range notices {
		out[i] = n.Message
	}
	return out
}
