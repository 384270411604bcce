package handlers

import (
	"errors"

	"aroundyou/internal/dashboard"
	"aroundyou/internal/logging"
	"aroundyou/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// MerchantHandler serves the merchant dashboard.
type MerchantHandler struct {
	registry *dashboard.Registry
	orders   *OrderHandler
	log      zerolog.Logger
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(registry *dashboard.Registry) *MerchantHandler {
	return &MerchantHandler{
		registry: registry,
		orders:   NewOrderHandler(registry),
		log:      logging.Component("merchant_handler"),
	}
}

// RegisterRoutes registers the merchant routes behind guards, which must
// authenticate the request and load the profile.
func (h *MerchantHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	merchantRoutes := router.Group("/merchant", append(guards, merchantsOnly)...)
	merchantRoutes.Get("/", h.HandleView)
	merchantRoutes.Put("/selection", h.HandleSelectShop)
	merchantRoutes.Post("/shops", h.HandleCreateShop)
	merchantRoutes.Post("/products", h.HandleCreateProduct)
	merchantRoutes.Patch("/products/:id", h.HandleUpdateProduct)
	merchantRoutes.Get("/overview", h.HandleOverview)
	h.orders.RegisterRoutes(merchantRoutes)
}

// Admins share the merchant dashboard.
func merchantsOnly(c *fiber.Ctx) error {
	if middleware.Profile(c).IsConsumer() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Merchant dashboard is not available to consumers",
		})
	}
	return c.Next()
}

func merchantDashboard(c *fiber.Ctx, registry *dashboard.Registry) *dashboard.Merchant {
	return registry.Merchant(c.UserContext(), dashboardSession(c), middleware.Profile(c))
}

// HandleView renders the dashboard. ?refresh=true refetches the shops and the
// selected shop's lists first.
func (h *MerchantHandler) HandleView(c *fiber.Ctx) error {
	d := merchantDashboard(c, h.registry)
	if c.QueryBool("refresh") {
		d.Mount(c.UserContext())
	}
	return c.JSON(d.View())
}

// SelectionRequest picks the shop the dashboard works on.
type SelectionRequest struct {
	ShopID string `json:"shop_id" validate:"required"`
}

// HandleSelectShop selects a shop and loads its products and orders.
func (h *MerchantHandler) HandleSelectShop(c *fiber.Ctx) error {
	var req SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := validate.Struct(req); err != nil {
		if ok, resp := validationFailed(c, err); ok {
			return resp
		}
		return badBody(c, err)
	}

	d := merchantDashboard(c, h.registry)
	if err := d.SelectShop(c.UserContext(), req.ShopID); err != nil {
		if errors.Is(err, dashboard.ErrUnknownShop) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Shop not found",
				"error":   err.Error(),
			})
		}
		return err
	}
	return c.JSON(d.View())
}

// HandleCreateShop submits the new-shop form.
func (h *MerchantHandler) HandleCreateShop(c *fiber.Ctx) error {
	form := dashboard.NewShopForm()
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}

	shop, err := merchantDashboard(c, h.registry).CreateShop(c.UserContext(), form)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating shop",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Shop created successfully!",
		"shop":    shop,
	})
}

// HandleCreateProduct submits the new-product form for the selected shop.
func (h *MerchantHandler) HandleCreateProduct(c *fiber.Ctx) error {
	form := dashboard.NewProductForm()
	if err := c.BodyParser(&form); err != nil {
		return badBody(c, err)
	}

	product, err := merchantDashboard(c, h.registry).CreateProduct(c.UserContext(), form)
	if err != nil {
		if errors.Is(err, dashboard.ErrNoShopSelected) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Select a shop first",
				"error":   err.Error(),
			})
		}
		if ok, resp := validationFailed(c, err); ok {
			return resp
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error creating product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added successfully!",
		"product": product,
	})
}

// HandleUpdateProduct changes price, stock or availability of a product of the selected shop.
func (h *MerchantHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var update dashboard.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return badBody(c, err)
	}

	product, err := merchantDashboard(c, h.registry).UpdateProduct(c.UserContext(), c.Params("id"), update)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownProduct) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
				"error":   err.Error(),
			})
		}
		if ok, resp := validationFailed(c, err); ok {
			return resp
		}
		h.log.Error().Err(err).Str("product_id", c.Params("id")).Msg("error updating product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully!",
		"product": product,
	})
}

// HandleOverview summarises the selected shop.
func (h *MerchantHandler) HandleOverview(c *fiber.Ctx) error {
	overview, err := merchantDashboard(c, h.registry).Overview()
	if errors.Is(err, dashboard.ErrNoShopSelected) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Select a shop first",
			"error":   err.Error(),
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(overview)
}
