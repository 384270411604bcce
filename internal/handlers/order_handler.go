package handlers

import (
	"errors"
	"fmt"

	"aroundyou/internal/dashboard"
	"aroundyou/internal/models"
	"aroundyou/internal/repositories"
	"aroundyou/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles order status updates from the merchant dashboard.
type OrderHandler struct {
	registry *dashboard.Registry
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(registry *dashboard.Registry) *OrderHandler {
	return &OrderHandler{
		registry: registry,
	}
}

// RegisterRoutes registers the order routes on the merchant group.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// StatusUpdate is the body of a status change.
type StatusUpdate struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an existing order. The
// dashboard reflects the change only after the store accepted it.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData StatusUpdate
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if err := validate.Struct(updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	d := merchantDashboard(c, h.registry)
	err := d.SetOrderStatus(c.UserContext(), orderID, updateData.Status)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error updating order status",
			"error":   err.Error(),
		})
	case errors.Is(err, dashboard.ErrUnknownOrder), errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated successfully!",
		"orders":  d.View().Orders,
	})
}
