package dashboard

import (
	"context"
	"fmt"
	"sync"

	"aroundyou/internal/logging"
	"aroundyou/internal/metrics"
	"aroundyou/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Merchant is the state of one merchant's dashboard.
type Merchant struct {
	profile *models.UserProfile
	backend Backend
	log     zerolog.Logger

	mu           sync.Mutex
	shops        []models.Shop
	selected     string
	generation   uint64
	products     []models.Product
	orders       []models.Order
	loading      bool
	shopDraft    ShopForm
	productDraft ProductForm
	notices      noticeQueue
}

// Overview is the summary of the selected shop.
type Overview struct {
	ShopID                string          `json:"shop_id"`
	Products              int             `json:"products"`
	Orders                int             `json:"orders"`
	PendingOrders         int             `json:"pending_orders"`
	FreeDeliveryThreshold decimal.Decimal `json:"free_delivery_threshold"`
}

// MerchantView is everything the merchant dashboard renders.
type MerchantView struct {
	Profile        *models.UserProfile `json:"profile"`
	Loading        bool                `json:"loading"`
	Shops          []models.Shop       `json:"shops"`
	SelectedShopID *string             `json:"selected_shop_id"`
	Products       []models.Product    `json:"products"`
	Orders         []OrderView         `json:"orders"`
	Overview       *Overview           `json:"overview"`
	ShopForm       ShopForm            `json:"shop_form"`
	ProductForm    ProductForm         `json:"product_form"`
	Notices        []Notice            `json:"notices"`
}

// NewMerchant creates an empty, not yet mounted merchant dashboard.
func NewMerchant(profile *models.UserProfile, backend Backend) *Merchant {
	return &Merchant{
		profile:      profile,
		backend:      backend,
		log:          logging.Component("merchant_dashboard").With().Str("user_id", profile.UserID).Logger(),
		shops:        []models.Shop{},
		products:     []models.Product{},
		orders:       []models.Order{},
		loading:      true,
		shopDraft:    NewShopForm(),
		productDraft: NewProductForm(),
	}
}

// Mount fetches the merchant's shops and loads the selected shop, selecting
// the first one when nothing is selected yet.
func (m *Merchant) Mount(ctx context.Context) {
	m.FetchShops(ctx)

	m.mu.Lock()
	target := ""
	if m.findShop(m.selected) != nil {
		target = m.selected
	} else if len(m.shops) > 0 {
		target = m.shops[0].ShopID
	}
	m.mu.Unlock()

	if target != "" {
		if err := m.SelectShop(ctx, target); err != nil {
			m.log.Warn().Err(err).Msg("shop selection failed")
		}
	}
}

// FetchShops replaces the shop list with the merchant's shops.
func (m *Merchant) FetchShops(ctx context.Context) {
	shops, err := m.backend.Shops.ListByMerchant(ctx, m.profile.UserID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.fetchFailed("shops", err)
		return
	}
	m.shops = nonNil(shops)
}

// SelectShop makes shopID the selected shop and loads its products and
// orders. Responses that arrive after a newer selection are discarded.
func (m *Merchant) SelectShop(ctx context.Context, shopID string) error {
	m.mu.Lock()
	if m.findShop(shopID) == nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownShop, shopID)
	}
	m.selected = shopID
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	m.loadShop(ctx, shopID, gen)
	return nil
}

func (m *Merchant) loadShop(ctx context.Context, shopID string, gen uint64) {
	var (
		products           []models.Product
		orders             []models.Order
		productErr, ordErr error
		g                  errgroup.Group
	)
	g.Go(func() error {
		products, productErr = m.backend.Products.ListByShop(ctx, shopID)
		return nil
	})
	g.Go(func() error {
		orders, ordErr = m.backend.Orders.ListByShop(ctx, shopID)
		return nil
	})
	_ = g.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.log.Debug().Str("shop_id", shopID).Msg("discarding stale shop data")
		return
	}
	if productErr != nil {
		m.fetchFailed("products", productErr)
	} else {
		m.products = nonNil(products)
	}
	if ordErr != nil {
		m.fetchFailed("orders", ordErr)
	} else {
		m.orders = nonNil(orders)
	}
}

// fetchFailed records a failed fetch. Callers hold mu.
func (m *Merchant) fetchFailed(list string, err error) {
	m.log.Error().Err(err).Str("list", list).Msg("fetch failed")
	metrics.FetchFailures.WithLabelValues(list).Inc()
	m.notices.failure("Error loading " + list)
}

func (m *Merchant) findShop(shopID string) *models.Shop {
	for i := range m.shops {
		if m.shops[i].ShopID == shopID {
			return &m.shops[i]
		}
	}
	return nil
}

// CreateShop inserts a shop from form, selects it and resets the form. On
// failure the form is kept as typed.
func (m *Merchant) CreateShop(ctx context.Context, form ShopForm) (*models.Shop, error) {
	m.mu.Lock()
	m.shopDraft = form
	m.mu.Unlock()

	shop, err := m.backend.Shops.Create(ctx, form.Shop(m.profile.UserID))
	if err != nil {
		m.log.Error().Err(err).Msg("create shop failed")
		m.mu.Lock()
		m.notices.failure("Error creating shop")
		m.mu.Unlock()
		return nil, err
	}

	m.mu.Lock()
	m.shops = append(m.shops, *shop)
	m.shopDraft = NewShopForm()
	m.notices.success("Shop created successfully!")
	m.mu.Unlock()

	if err := m.SelectShop(ctx, shop.ShopID); err != nil {
		return nil, err
	}
	return shop, nil
}

// CreateProduct inserts a product from form into the selected shop and resets
// the form. On failure the form is kept as typed.
func (m *Merchant) CreateProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	m.mu.Lock()
	shopID := m.selected
	m.productDraft = form
	m.mu.Unlock()
	if shopID == "" {
		return nil, ErrNoShopSelected
	}

	product, err := form.Product(shopID)
	if err == nil {
		product, err = m.backend.Products.Create(ctx, product)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.log.Error().Err(err).Str("shop_id", shopID).Msg("create product failed")
		m.notices.failure("Error creating product")
		return nil, err
	}
	if m.selected == shopID {
		m.products = append(m.products, *product)
	}
	m.productDraft = NewProductForm()
	m.notices.success("Product added successfully!")
	return product, nil
}

// UpdateProduct writes the changed fields of a product of the selected shop
// and reflects them locally once the write succeeded.
func (m *Merchant) UpdateProduct(ctx context.Context, productID string, update ProductUpdate) (*models.Product, error) {
	if err := validate.Struct(update); err != nil {
		return nil, fmt.Errorf("invalid product update: %w", err)
	}

	m.mu.Lock()
	var current *models.Product
	for i := range m.products {
		if m.products[i].ProductID == productID {
			p := m.products[i]
			current = &p
			break
		}
	}
	m.mu.Unlock()
	if current == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}

	update.apply(current)
	if err := m.backend.Products.Update(ctx, current); err != nil {
		m.log.Error().Err(err).Str("product_id", productID).Msg("update product failed")
		m.mu.Lock()
		m.notices.failure("Error updating product")
		m.mu.Unlock()
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ProductID == productID {
			m.products[i] = *current
		}
	}
	m.notices.success("Product updated successfully!")
	return current, nil
}

// SetOrderStatus writes status to the order and, only once the write is
// confirmed, patches the local copy. A failed write leaves the list as it was.
// Only orders loaded for the selected shop can be changed.
func (m *Merchant) SetOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	m.mu.Lock()
	known := m.findOrder(orderID) != nil
	if !known {
		m.notices.failure("Error updating order status")
	}
	m.mu.Unlock()
	if !known {
		metrics.OrderStatusUpdates.WithLabelValues(string(status), "rejected").Inc()
		return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}

	if err := m.backend.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		m.log.Error().Err(err).Str("order_id", orderID).Str("status", string(status)).Msg("update order status failed")
		metrics.OrderStatusUpdates.WithLabelValues(string(status), "error").Inc()
		m.mu.Lock()
		m.notices.failure("Error updating order status")
		m.mu.Unlock()
		return err
	}
	metrics.OrderStatusUpdates.WithLabelValues(string(status), "success").Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if o := m.findOrder(orderID); o != nil {
		o.Status = status
	}
	m.notices.success("Order status updated successfully!")
	return nil
}

func (m *Merchant) findOrder(id string) *models.Order {
	for i := range m.orders {
		if m.orders[i].OrderID == id {
			return &m.orders[i]
		}
	}
	return nil
}

// Overview summarises the selected shop.
func (m *Merchant) Overview() (Overview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.overview()
	if o == nil {
		return Overview{}, ErrNoShopSelected
	}
	return *o, nil
}

func (m *Merchant) overview() *Overview {
	shop := m.findShop(m.selected)
	if shop == nil {
		return nil
	}
	pending := 0
	for _, o := range m.orders {
		if o.Status == models.OrderStatusPending {
			pending++
		}
	}
	return &Overview{
		ShopID:                shop.ShopID,
		Products:              len(m.products),
		Orders:                len(m.orders),
		PendingOrders:         pending,
		FreeDeliveryThreshold: shop.FreeDeliveryThreshold,
	}
}

// View renders the dashboard and hands out the pending notices.
func (m *Merchant) View() MerchantView {
	m.mu.Lock()
	defer m.mu.Unlock()

	var selected *string
	if m.selected != "" {
		id := m.selected
		selected = &id
	}
	return MerchantView{
		Profile:        m.profile,
		Loading:        m.loading,
		Shops:          append([]models.Shop{}, m.shops...),
		SelectedShopID: selected,
		Products:       append([]models.Product{}, m.products...),
		Orders:         orderViews(m.orders),
		Overview:       m.overview(),
		ShopForm:       m.shopDraft,
		ProductForm:    m.productDraft,
		Notices:        m.notices.drain(),
	}
}
