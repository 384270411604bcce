package dashboard_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"aroundyou/internal/dashboard"
	"aroundyou/internal/events"
	"aroundyou/internal/models"
	"aroundyou/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// gatedProducts holds ListByShop for one shop until release is closed.
type gatedProducts struct {
	dashboard.ProductSource
	shopID  string
	started chan struct{}
	release chan struct{}
}

func (g *gatedProducts) ListByShop(ctx context.Context, shopID string) ([]models.Product, error) {
	if shopID == g.shopID {
		close(g.started)
		<-g.release
	}
	return g.ProductSource.ListByShop(ctx, shopID)
}

type failingShops struct {
	dashboard.ShopSource
}

func (failingShops) Create(context.Context, *models.Shop) (*models.Shop, error) {
	return nil, errors.New("insert rejected")
}

func TestMerchant_MountSelectsFirstShop(t *testing.T) {
	f := newFixture()
	first := f.shop(t, "merchant-1", "Fresh Valley Groceries", models.ShopStatusOpen)
	second := f.shop(t, "merchant-1", "Fresh Valley Express", models.ShopStatusClosed)
	f.shop(t, "merchant-2", "Someone Else's Shop", models.ShopStatusOpen)
	f.product(t, first.ShopID, "Pasta Sauce", "Grocery", 5, true)
	f.product(t, first.ShopID, "Old Stock", "Grocery", 0, false)
	f.product(t, second.ShopID, "Eggs", "Grocery", 12, true)
	f.order(t, "consumer-1", first.ShopID, time.Now(), models.OrderStatusPending)
	f.order(t, "consumer-1", first.ShopID, time.Now().Add(-time.Hour), models.OrderStatusCompleted)

	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())
	view := m.View()

	assert.False(t, view.Loading)
	require.Len(t, view.Shops, 2, "closed shops are listed for their owner")
	require.NotNil(t, view.SelectedShopID)
	assert.Equal(t, first.ShopID, *view.SelectedShopID)
	assert.Len(t, view.Products, 2, "unavailable products are listed for their owner")
	assert.Len(t, view.Orders, 2)

	overview, err := m.Overview()
	require.NoError(t, err)
	assert.Equal(t, dashboard.Overview{
		ShopID:                first.ShopID,
		Products:              2,
		Orders:                2,
		PendingOrders:         1,
		FreeDeliveryThreshold: first.FreeDeliveryThreshold,
	}, overview)
}

func TestMerchant_NoShops(t *testing.T) {
	f := newFixture()
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	view := m.View()
	assert.Empty(t, view.Shops)
	assert.Nil(t, view.SelectedShopID)
	assert.Nil(t, view.Overview)
	assert.Equal(t, "600", string(view.ShopForm.FreeDeliveryThreshold))
	assert.Equal(t, "PKR", view.ProductForm.Currency)

	_, err := m.Overview()
	assert.ErrorIs(t, err, dashboard.ErrNoShopSelected)

	_, err = m.CreateProduct(context.Background(), dashboard.ProductForm{Name: "Tea", Price: "100", StockQuantity: "5"})
	assert.ErrorIs(t, err, dashboard.ErrNoShopSelected)

	assert.ErrorIs(t, m.SelectShop(context.Background(), "not-mine"), dashboard.ErrUnknownShop)
}

func TestMerchant_FetchShopsIsIdempotent(t *testing.T) {
	f := newFixture()
	f.shop(t, "merchant-1", "A", models.ShopStatusOpen)
	f.shop(t, "merchant-1", "B", models.ShopStatusOpen)

	m := dashboard.NewMerchant(merchantProfile(), f.backend)
	m.FetchShops(context.Background())
	first := m.View().Shops
	m.FetchShops(context.Background())
	assert.Equal(t, first, m.View().Shops)
}

func TestMerchant_CreateShop(t *testing.T) {
	f := newFixture()
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	form := dashboard.NewShopForm()
	form.ShopName = "Spice Garden Restaurant"
	form.Category = "Restaurant"
	form.Address = "Zamzama Boulevard"
	form.FreeDeliveryThreshold = ""

	shop, err := m.CreateShop(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, models.ShopStatusOpen, shop.Status)
	assert.Equal(t, models.PlaceholderLocation, shop.Location)
	assert.Equal(t, "merchant-1", shop.MerchantUserID)
	assert.True(t, decimal.NewFromInt(600).Equal(shop.FreeDeliveryThreshold))

	view := m.View()
	require.Len(t, view.Shops, 1)
	require.NotNil(t, view.SelectedShopID)
	assert.Equal(t, shop.ShopID, *view.SelectedShopID)
	assert.Equal(t, dashboard.NewShopForm(), view.ShopForm, "form is reset")
	assert.Equal(t, []string{"Shop created successfully!"}, messages(view.Notices))
	assert.Len(t, f.recorder.Named(events.ShopCreated), 1)
}

func TestMerchant_CreateShopFailureKeepsDraft(t *testing.T) {
	f := newFixture()
	backend := f.backend
	backend.Shops = failingShops{ShopSource: f.backend.Shops}
	m := dashboard.NewRegistry(backend).Merchant(context.Background(), testSession, merchantProfile())

	form := dashboard.NewShopForm()
	form.ShopName = "Midnight Pharmacy"
	_, err := m.CreateShop(context.Background(), form)
	require.Error(t, err)

	view := m.View()
	assert.Empty(t, view.Shops)
	assert.Equal(t, form, view.ShopForm)
	assert.Equal(t, []dashboard.Notice{{Level: dashboard.LevelError, Message: "Error creating shop"}}, view.Notices)
}

func TestMerchant_CreateProduct(t *testing.T) {
	f := newFixture()
	shop := f.shop(t, "merchant-1", "Tech Hub Electronics", models.ShopStatusOpen)
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	form := dashboard.NewProductForm()
	form.Name = "Wireless Mouse"
	form.Category = "Electronics"
	form.Price = "1499.50"
	form.StockQuantity = "12"

	product, err := m.CreateProduct(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, shop.ShopID, product.ShopID)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, "PKR", product.Currency)
	assert.Equal(t, 12, product.StockQuantity)
	assert.Equal(t, "1499.5", product.Price.String())

	view := m.View()
	require.Len(t, view.Products, 1)
	assert.Equal(t, product.ProductID, view.Products[0].ProductID)
	assert.Equal(t, dashboard.NewProductForm(), view.ProductForm)
	assert.Equal(t, []string{"Product added successfully!"}, messages(view.Notices))
	assert.Len(t, f.recorder.Named(events.ProductCreated), 1)
}

func TestMerchant_CreateProductRejectsNonNumeric(t *testing.T) {
	f := newFixture()
	f.shop(t, "merchant-1", "Tech Hub Electronics", models.ShopStatusOpen)
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	form := dashboard.NewProductForm()
	form.Name = "Keyboard"
	form.Price = "cheap"
	form.StockQuantity = "3"

	_, err := m.CreateProduct(context.Background(), form)
	require.Error(t, err)

	view := m.View()
	assert.Empty(t, view.Products)
	assert.Equal(t, form, view.ProductForm)
	assert.Equal(t, []string{"Error creating product"}, messages(view.Notices))
}

func TestMerchant_UpdateProduct(t *testing.T) {
	f := newFixture()
	shop := f.shop(t, "merchant-1", "Fashion Forward", models.ShopStatusOpen)
	p := f.product(t, shop.ShopID, "Lawn Suit", "Fashion", 4, true)
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	stock := 0
	unavailable := false
	updated, err := m.UpdateProduct(context.Background(), p.ProductID, dashboard.ProductUpdate{StockQuantity: &stock, IsAvailable: &unavailable})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, shop.ShopID, updated.ShopID)

	stored, err := f.products.GetByID(context.Background(), p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.StockQuantity)
	assert.Equal(t, "Lawn Suit", stored.Name)

	negative := -1
	_, err = m.UpdateProduct(context.Background(), p.ProductID, dashboard.ProductUpdate{StockQuantity: &negative})
	assert.Error(t, err)

	_, err = m.UpdateProduct(context.Background(), "other", dashboard.ProductUpdate{})
	assert.ErrorIs(t, err, dashboard.ErrUnknownProduct)
}

func TestMerchant_SetOrderStatus(t *testing.T) {
	f := newFixture()
	shop := f.shop(t, "merchant-1", "Coffee Corner Café", models.ShopStatusOpen)
	target := f.order(t, "consumer-1", shop.ShopID, time.Now(), models.OrderStatusPending)
	other := f.order(t, "consumer-2", shop.ShopID, time.Now().Add(-time.Minute), models.OrderStatusPending)
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	require.NoError(t, m.SetOrderStatus(context.Background(), target.OrderID, models.OrderStatusCompleted))

	view := m.View()
	require.Len(t, view.Orders, 2)
	statuses := map[string]models.OrderStatus{}
	for _, o := range view.Orders {
		statuses[o.OrderID] = o.Status
	}
	assert.Equal(t, models.OrderStatusCompleted, statuses[target.OrderID])
	assert.Equal(t, models.OrderStatusPending, statuses[other.OrderID])
	assert.Equal(t, []string{"Order status updated successfully!"}, messages(view.Notices))

	changed := f.recorder.Named(events.OrderStatusChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, target.OrderID, changed[0].Payload["order_id"])

	// Going backwards is allowed.
	require.NoError(t, m.SetOrderStatus(context.Background(), target.OrderID, models.OrderStatusPending))
}

func TestMerchant_SetOrderStatusFailureLeavesOrders(t *testing.T) {
	f := newFixture()
	shop := f.shop(t, "merchant-1", "Coffee Corner Café", models.ShopStatusOpen)
	order := f.order(t, "consumer-1", shop.ShopID, time.Now(), models.OrderStatusPending)

	orders := new(mockOrderSource)
	orders.On("ListByShop", mock.Anything, shop.ShopID).Return([]models.Order{order}, nil)
	orders.On("UpdateStatus", mock.Anything, order.OrderID, models.OrderStatusCompleted).Return(errors.New("timeout"))

	backend := f.backend
	backend.Orders = orders
	m := dashboard.NewRegistry(backend).Merchant(context.Background(), testSession, merchantProfile())
	before := m.View().Orders

	err := m.SetOrderStatus(context.Background(), order.OrderID, models.OrderStatusCompleted)
	require.Error(t, err)

	view := m.View()
	assert.Equal(t, before, view.Orders)
	assert.Equal(t, []string{"Error updating order status"}, messages(view.Notices))
	orders.AssertExpectations(t)
}

func TestMerchant_SetOrderStatusRejectsForeignOrders(t *testing.T) {
	f := newFixture()
	mine := f.shop(t, "merchant-1", "Coffee Corner Café", models.ShopStatusOpen)
	theirs := f.shop(t, "merchant-2", "Tea Stall", models.ShopStatusOpen)
	own := f.order(t, "consumer-1", mine.ShopID, time.Now(), models.OrderStatusPending)
	foreign := f.order(t, "consumer-1", theirs.ShopID, time.Now(), models.OrderStatusPending)
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	err := m.SetOrderStatus(context.Background(), foreign.OrderID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, dashboard.ErrUnknownOrder)

	stored, err := f.orders.ListByShop(context.Background(), theirs.ShopID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.OrderStatusPending, stored[0].Status)
	assert.Empty(t, f.recorder.Named(events.OrderStatusChanged))

	view := m.View()
	require.Len(t, view.Orders, 1)
	assert.Equal(t, own.OrderID, view.Orders[0].OrderID)
	assert.Equal(t, models.OrderStatusPending, view.Orders[0].Status)
	assert.Equal(t, []string{"Error updating order status"}, messages(view.Notices))
}

func TestMerchant_SetOrderStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	shop := f.shop(t, "merchant-1", "Coffee Corner Café", models.ShopStatusOpen)
	order := f.order(t, "consumer-1", shop.ShopID, time.Now(), models.OrderStatusPending)
	m := dashboard.NewRegistry(f.backend).Merchant(context.Background(), testSession, merchantProfile())

	err := m.SetOrderStatus(context.Background(), order.OrderID, "shipped")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
	assert.Equal(t, models.OrderStatusPending, m.View().Orders[0].Status)
}

func TestMerchant_StaleSelectionIsDiscarded(t *testing.T) {
	f := newFixture()
	slow := f.shop(t, "merchant-1", "Slow Shop", models.ShopStatusOpen)
	fast := f.shop(t, "merchant-1", "Fast Shop", models.ShopStatusOpen)
	f.product(t, slow.ShopID, "Slow Product", "Grocery", 1, true)
	f.product(t, fast.ShopID, "Fast Product", "Grocery", 1, true)

	gate := &gatedProducts{
		ProductSource: f.backend.Products,
		shopID:        slow.ShopID,
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	backend := f.backend
	backend.Products = gate

	m := dashboard.NewMerchant(merchantProfile(), backend)
	m.FetchShops(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, m.SelectShop(context.Background(), slow.ShopID))
	}()
	<-gate.started

	require.NoError(t, m.SelectShop(context.Background(), fast.ShopID))
	close(gate.release)
	wg.Wait()

	view := m.View()
	require.NotNil(t, view.SelectedShopID)
	assert.Equal(t, fast.ShopID, *view.SelectedShopID)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Fast Product", view.Products[0].Name)
}
