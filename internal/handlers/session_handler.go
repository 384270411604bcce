package handlers

import (
	"aroundyou/internal/dashboard"
	"aroundyou/internal/logging"
	"aroundyou/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// SessionHandler exposes the current session and routes a user to the
// dashboard matching their role.
type SessionHandler struct {
	profiles middleware.ProfileLoader
	registry *dashboard.Registry
	log      zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(profiles middleware.ProfileLoader, registry *dashboard.Registry) *SessionHandler {
	return &SessionHandler{
		profiles: profiles,
		registry: registry,
		log:      logging.Component("session_handler"),
	}
}

// RegisterRoutes registers the session routes behind requireAuth.
func (h *SessionHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/session", requireAuth, h.HandleSession)
	router.Get("/dashboard", requireAuth, middleware.ProfileRequired(h.profiles), h.HandleDashboard)
}

// HandleSession returns the session user and the profile, which is null until provisioned.
func (h *SessionHandler) HandleSession(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	profile, err := h.profiles.Load(c.UserContext(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("profile fetch failed")
		return middleware.ProfileError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"profile": profile,
	})
}

// HandleDashboard mounts and renders the consumer dashboard for consumers and
// the merchant dashboard for everyone else.
func (h *SessionHandler) HandleDashboard(c *fiber.Ctx) error {
	profile := middleware.Profile(c)
	if profile.IsConsumer() {
		d := h.registry.Consumer(c.UserContext(), dashboardSession(c), profile)
		return c.JSON(fiber.Map{
			"dashboard": "consumer",
			"view":      d.View(dashboard.ProductFilter{}),
		})
	}
	d := h.registry.Merchant(c.UserContext(), dashboardSession(c), profile)
	return c.JSON(fiber.Map{
		"dashboard": "merchant",
		"view":      d.View(),
	})
}

// dashboardSession keys the dashboards by the token of the request, so they
// live exactly as long as the token.
func dashboardSession(c *fiber.Ctx) dashboard.Session {
	claims := middleware.Claims(c)
	return dashboard.Session{ID: claims.TokenID, Expires: claims.ExpiresAt}
}
