package handlers

import (
	"errors"

	"aroundyou/internal/dashboard"
	"aroundyou/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ConsumerHandler serves the consumer dashboard.
type ConsumerHandler struct {
	registry *dashboard.Registry
}

// NewConsumerHandler creates a new ConsumerHandler.
func NewConsumerHandler(registry *dashboard.Registry) *ConsumerHandler {
	return &ConsumerHandler{registry: registry}
}

// RegisterRoutes registers the consumer routes behind guards, which must
// authenticate the request and load the profile.
func (h *ConsumerHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	consumerRoutes := router.Group("/consumer", append(guards, consumersOnly)...)
	consumerRoutes.Get("/", h.HandleView)
	consumerRoutes.Get("/products", h.HandleProducts)
	consumerRoutes.Get("/cart", h.HandleCart)
	consumerRoutes.Post("/cart/:productID", h.HandleAddToCart)
}

func consumersOnly(c *fiber.Ctx) error {
	if !middleware.Profile(c).IsConsumer() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Consumer dashboard is only available to consumers",
		})
	}
	return c.Next()
}

func (h *ConsumerHandler) dashboard(c *fiber.Ctx) *dashboard.Consumer {
	return h.registry.Consumer(c.UserContext(), dashboardSession(c), middleware.Profile(c))
}

// HandleView renders the dashboard. ?refresh=true refetches every list first.
func (h *ConsumerHandler) HandleView(c *fiber.Ctx) error {
	var filter dashboard.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return badBody(c, err)
	}
	d := h.dashboard(c)
	if c.QueryBool("refresh") {
		d.Mount(c.UserContext())
	}
	return c.JSON(d.View(filter))
}

// HandleProducts returns the loaded products narrowed by ?q= and ?category=.
func (h *ConsumerHandler) HandleProducts(c *fiber.Ctx) error {
	var filter dashboard.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return badBody(c, err)
	}
	products, categories := h.dashboard(c).Products(filter)
	return c.JSON(fiber.Map{
		"products":   products,
		"categories": categories,
	})
}

// HandleCart returns the cart contents.
func (h *ConsumerHandler) HandleCart(c *fiber.Ctx) error {
	return c.JSON(h.dashboard(c).Cart())
}

// HandleAddToCart adds one unit of a product to the cart.
func (h *ConsumerHandler) HandleAddToCart(c *fiber.Ctx) error {
	d := h.dashboard(c)
	qty, err := d.AddToCart(c.Params("productID"))
	if errors.Is(err, dashboard.ErrNotPurchasable) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Product cannot be added to the cart",
			"error":   err.Error(),
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Added to cart",
		"quantity": qty,
		"cart":     d.Cart(),
	})
}
