package handlers

import (
	"errors"

	"aroundyou/internal/logging"
	"aroundyou/internal/middleware"
	"aroundyou/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// SessionDropper forgets the state held for a signed-out session.
type SessionDropper interface {
	Drop(sessionID string)
}

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    SessionDropper
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions SessionDropper) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		log:         logging.Component("auth_handler"),
	}
}

// RegisterRoutes registers the authentication routes. Logout sits behind requireAuth.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", requireAuth, h.HandleLogout)
}

// HandleRegister creates an account and its profile.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var reg services.Registration
	if err := c.BodyParser(&reg); err != nil {
		h.log.Warn().Err(err).Msg("error parsing register request body")
		return badBody(c, err)
	}

	if err := validate.Struct(reg); err != nil {
		if ok, resp := validationFailed(c, err); ok {
			return resp
		}
		return badBody(c, err)
	}

	profile, err := h.authService.Register(c.UserContext(), reg)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		h.log.Error().Err(err).Msg("error registering user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"profile": profile,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Warn().Err(err).Msg("error parsing login request body")
		return badBody(c, err)
	}

	if err := validate.Struct(req); err != nil {
		if ok, resp := validationFailed(c, err); ok {
			return resp
		}
		return badBody(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.log.Info().Err(err).Str("email", req.Email).Msg("login rejected")
		status := fiber.StatusUnauthorized
		if !errors.Is(err, services.ErrInvalidCredentials) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleLogout revokes the current token and drops the dashboards of this
// session. Other sessions of the same user stay signed in.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if err := h.authService.Logout(c.UserContext(), claims); err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("error signing out")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not sign out",
			"error":   err.Error(),
		})
	}
	h.sessions.Drop(claims.TokenID)

	return c.JSON(fiber.Map{
		"message":  "Signed out",
		"redirect": middleware.AuthRoute,
	})
}
