package repositories_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"aroundyou/internal/models"
	"aroundyou/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store struct {
	users    repositories.UserRepository
	shops    repositories.ShopRepository
	products repositories.ProductRepository
	orders   repositories.OrderRepository
}

func gormStore(t *testing.T) store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := repositories.OpenDB("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return store{
		users:    repositories.NewGORMUserRepository(db),
		shops:    repositories.NewGORMShopRepository(db),
		products: repositories.NewGORMProductRepository(db),
		orders:   repositories.NewGORMOrderRepository(db),
	}
}

func mockStore(*testing.T) store {
	shops := repositories.NewMockShopRepository()
	products := repositories.NewMockProductRepository(shops)
	return store{
		users:    repositories.NewMockUserRepository(),
		shops:    shops,
		products: products,
		orders:   repositories.NewMockOrderRepository(shops, products),
	}
}

// forEachStore runs fn against the GORM and the in-memory implementations.
func forEachStore(t *testing.T, fn func(t *testing.T, s store)) {
	t.Run("gorm", func(t *testing.T) { fn(t, gormStore(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, mockStore(t)) })
}

func newShop(merchantID, name string, status models.ShopStatus) *models.Shop {
	return &models.Shop{
		MerchantUserID:        merchantID,
		ShopName:              name,
		Category:              "Grocery",
		Status:                status,
		Location:              models.PlaceholderLocation,
		FreeDeliveryThreshold: decimal.NewFromInt(600),
	}
}

func newProduct(shopID, name string, stock int, available bool) *models.Product {
	return &models.Product{
		ShopID:        shopID,
		Name:          name,
		Price:         decimal.NewFromInt(250),
		Currency:      models.DefaultCurrency,
		Category:      "Grocery",
		StockQuantity: stock,
		IsAvailable:   available,
	}
}

func TestUserRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store) {
		ctx := context.Background()

		account := &models.Account{Email: "ayesha@example.com", PasswordHash: "hash"}
		require.NoError(t, s.users.CreateAccount(ctx, account))
		assert.NotEmpty(t, account.ID)
		assert.Error(t, s.users.CreateAccount(ctx, &models.Account{Email: "ayesha@example.com", PasswordHash: "x"}))

		got, err := s.users.GetAccountByEmail(ctx, "ayesha@example.com")
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)

		_, err = s.users.GetAccountByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		_, err = s.users.GetProfile(ctx, account.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		first := "Ayesha"
		require.NoError(t, s.users.CreateProfile(ctx, &models.UserProfile{
			UserID: account.ID, Email: account.Email, FirstName: &first, UserType: models.UserTypeConsumer,
		}))
		profile, err := s.users.GetProfile(ctx, account.ID)
		require.NoError(t, err)
		assert.True(t, profile.IsConsumer())
		require.NotNil(t, profile.FirstName)
		assert.Equal(t, "Ayesha", *profile.FirstName)
		assert.Nil(t, profile.LastName)
	})
}

func TestUserRepository_CreateAccountWithProfileIsAtomic(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store) {
		ctx := context.Background()

		account := &models.Account{Email: "bilal@example.com", PasswordHash: "hash"}
		profile := &models.UserProfile{Email: "bilal@example.com", UserType: models.UserTypeMerchant}
		require.NoError(t, s.users.CreateAccountWithProfile(ctx, account, profile))
		assert.NotEmpty(t, account.ID)
		assert.Equal(t, account.ID, profile.UserID)
		stored, err := s.users.GetProfile(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, models.UserTypeMerchant, stored.UserType)

		// The profile row already exists, so the account insert must not stick.
		require.NoError(t, s.users.CreateProfile(ctx, &models.UserProfile{UserID: "u-taken", UserType: models.UserTypeConsumer}))
		err = s.users.CreateAccountWithProfile(ctx,
			&models.Account{ID: "u-taken", Email: "ayesha@example.com", PasswordHash: "hash"},
			&models.UserProfile{Email: "ayesha@example.com", UserType: models.UserTypeConsumer})
		require.Error(t, err)
		_, err = s.users.GetAccountByEmail(ctx, "ayesha@example.com")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		retry := &models.Account{Email: "ayesha@example.com", PasswordHash: "hash"}
		require.NoError(t, s.users.CreateAccountWithProfile(ctx, retry,
			&models.UserProfile{Email: "ayesha@example.com", UserType: models.UserTypeConsumer}))
	})
}

func TestShopRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store) {
		ctx := context.Background()
		open := newShop("m-1", "Fresh Valley", models.ShopStatusOpen)
		closed := newShop("m-1", "Midnight Pharmacy", models.ShopStatusClosed)
		foreign := newShop("m-2", "Tech Hub", models.ShopStatusOpen)
		for _, shop := range []*models.Shop{open, closed, foreign} {
			require.NoError(t, s.shops.Create(ctx, shop))
			assert.NotEmpty(t, shop.ShopID)
		}

		listed, err := s.shops.ListByStatus(ctx, models.ShopStatusOpen)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{open.ShopID, foreign.ShopID}, shopIDs(listed))

		again, err := s.shops.ListByStatus(ctx, models.ShopStatusOpen)
		require.NoError(t, err)
		assert.Equal(t, shopIDs(listed), shopIDs(again), "repeated fetches return the same order")

		mine, err := s.shops.ListByMerchant(ctx, "m-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{open.ShopID, closed.ShopID}, shopIDs(mine))

		got, err := s.shops.GetByID(ctx, closed.ShopID)
		require.NoError(t, err)
		assert.Equal(t, models.ShopStatusClosed, got.Status)
		assert.True(t, decimal.NewFromInt(600).Equal(got.FreeDeliveryThreshold))

		_, err = s.shops.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestProductRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store) {
		ctx := context.Background()
		shop := newShop("m-1", "Fresh Valley", models.ShopStatusOpen)
		require.NoError(t, s.shops.Create(ctx, shop))

		sauce := newProduct(shop.ShopID, "Pasta Sauce", 5, true)
		soldOut := newProduct(shop.ShopID, "Fresh Milk", 0, true)
		hidden := newProduct(shop.ShopID, "Olive Oil", 3, false)
		for _, p := range []*models.Product{sauce, soldOut, hidden} {
			require.NoError(t, s.products.Create(ctx, p))
		}

		purchasable, err := s.products.ListPurchasable(ctx)
		require.NoError(t, err)
		require.Len(t, purchasable, 1)
		assert.Equal(t, sauce.ProductID, purchasable[0].ProductID)
		assert.Equal(t, "Fresh Valley", purchasable[0].ShopName())

		all, err := s.products.ListByShop(ctx, shop.ShopID)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		other := newShop("m-2", "Other", models.ShopStatusOpen)
		require.NoError(t, s.shops.Create(ctx, other))
		soldOut.StockQuantity = 12
		soldOut.IsAvailable = false
		soldOut.ShopID = other.ShopID
		require.NoError(t, s.products.Update(ctx, soldOut))

		stored, err := s.products.GetByID(ctx, soldOut.ProductID)
		require.NoError(t, err)
		assert.Equal(t, 12, stored.StockQuantity)
		assert.False(t, stored.IsAvailable)
		assert.Equal(t, shop.ShopID, stored.ShopID, "updates never move a product to another shop")

		err = s.products.Update(ctx, newProduct(shop.ShopID, "Ghost", 1, true))
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestOrderRepository(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store) {
		ctx := context.Background()
		shop := newShop("m-1", "Spice Garden", models.ShopStatusOpen)
		require.NoError(t, s.shops.Create(ctx, shop))
		biryani := newProduct(shop.ShopID, "Chicken Biryani", 10, true)
		require.NoError(t, s.products.Create(ctx, biryani))

		now := time.Now().UTC().Truncate(time.Second)
		older := &models.Order{
			ConsumerID: "c-1", ShopID: shop.ShopID, OrderDate: now.Add(-24 * time.Hour),
			Status: models.OrderStatusCompleted, TotalAmount: decimal.NewFromInt(500),
			DeliveryFee: decimal.NewFromInt(100), FinalAmount: decimal.NewFromInt(600),
			DeliveryType: models.DeliveryTypeShopDelivery,
			Items: []models.OrderItem{{
				ProductID: biryani.ProductID, Quantity: 2,
				UnitPrice: decimal.NewFromInt(250), TotalPrice: decimal.NewFromInt(500),
			}},
		}
		newer := &models.Order{
			ConsumerID: "c-1", ShopID: shop.ShopID, OrderDate: now,
			Status: models.OrderStatusPending, TotalAmount: decimal.NewFromInt(250),
			FinalAmount: decimal.NewFromInt(250), DeliveryType: models.DeliveryTypePickup,
		}
		stranger := &models.Order{
			ConsumerID: "c-2", ShopID: shop.ShopID, OrderDate: now.Add(time.Hour),
			Status: models.OrderStatusPending, DeliveryType: models.DeliveryTypePickup,
		}
		for _, o := range []*models.Order{older, newer, stranger} {
			require.NoError(t, s.orders.Create(ctx, o))
		}

		history, err := s.orders.ListByConsumer(ctx, "c-1")
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, newer.OrderID, history[0].OrderID, "newest first")
		assert.Equal(t, older.OrderID, history[1].OrderID)
		require.NotNil(t, history[1].Shop)
		assert.Equal(t, "Spice Garden", history[1].Shop.ShopName)
		require.Len(t, history[1].Items, 1)
		require.NotNil(t, history[1].Items[0].Product)
		assert.Equal(t, "Chicken Biryani", history[1].Items[0].Product.Name)
		assert.True(t, history[1].TotalsConsistent())

		byShop, err := s.orders.ListByShop(ctx, shop.ShopID)
		require.NoError(t, err)
		assert.Len(t, byShop, 3)
		assert.Equal(t, stranger.OrderID, byShop[0].OrderID)

		require.NoError(t, s.orders.UpdateStatus(ctx, older.OrderID, models.OrderStatusPending))
		history, err = s.orders.ListByConsumer(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, history[1].Status, "any status may follow any other")
		assert.Equal(t, models.OrderStatusPending, history[0].Status)

		err = s.orders.UpdateStatus(ctx, "missing", models.OrderStatusCompleted)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestOrderRepository_NewestFirstRegardlessOfInsertOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s store) {
		ctx := context.Background()
		shop := newShop("m-1", "Fresh Valley", models.ShopStatusOpen)
		require.NoError(t, s.shops.Create(ctx, shop))

		day := func(month time.Month) time.Time { return time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC) }
		ids := map[time.Month]string{}
		for _, month := range []time.Month{time.January, time.March, time.February} {
			o := &models.Order{
				ConsumerID: "c-1", ShopID: shop.ShopID, OrderDate: day(month),
				Status: models.OrderStatusPending, DeliveryType: models.DeliveryTypePickup,
			}
			require.NoError(t, s.orders.Create(ctx, o))
			ids[month] = o.OrderID
		}
		want := []string{ids[time.March], ids[time.February], ids[time.January]}

		history, err := s.orders.ListByConsumer(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, want, orderIDs(history))

		byShop, err := s.orders.ListByShop(ctx, shop.ShopID)
		require.NoError(t, err)
		assert.Equal(t, want, orderIDs(byShop))
	})
}

func orderIDs(orders []models.Order) []string {
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}
	return ids
}

func shopIDs(shops []models.Shop) []string {
	ids := make([]string, len(shops))
	for i, s := range shops {
		ids[i] = s.ShopID
	}
	return ids
}
