package middleware

import (
	"context"
	"strings"

	"aroundyou/internal/logging"
	"aroundyou/internal/models"
	"aroundyou/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	claimsKey  = "claims"
	profileKey = "profile"

	// AuthRoute is where unauthenticated clients are sent.
	AuthRoute = "/auth"
)

// TokenValidator verifies session tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*services.Claims, error)
}

// ProfileLoader fetches the profile behind a session. A nil profile with a nil
// error means the profile has not been provisioned.
type ProfileLoader interface {
	Load(ctx context.Context, userID string) (*models.UserProfile, error)
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{
		"message":  message,
		"redirect": AuthRoute,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(tokens TokenValidator) fiber.Handler {
	log := logging.Component("auth")
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required", nil)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'", nil)
		}

		claims, err := tokens.ValidateToken(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug().Err(err).Msg("JWT validation failed")
			return unauthorized(c, "Invalid or expired token", err)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the session claims stored by AuthRequired.
func Claims(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}

// ProfileRequired loads the profile of the session user. Without a profile
// there is nothing to render and the request ends with 204 No Content.
func ProfileRequired(profiles ProfileLoader) fiber.Handler {
	log := logging.Component("profile")
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return unauthorized(c, "Session required", nil)
		}

		profile, err := profiles.Load(c.UserContext(), claims.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("profile fetch failed")
			return ProfileError(c, err)
		}
		if profile == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}

		c.Locals(profileKey, profile)
		return c.Next()
	}
}

// ProfileError answers a failed profile fetch.
func ProfileError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Error loading profile",
		"error":   err.Error(),
		"notices": []fiber.Map{{"level": "error", "message": "Error loading profile"}},
	})
}

// Profile returns the profile stored by ProfileRequired.
func Profile(c *fiber.Ctx) *models.UserProfile {
	profile, _ := c.Locals(profileKey).(*models.UserProfile)
	return profile
}
