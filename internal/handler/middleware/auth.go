package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fittrack/activity-service/pkg/blacklist"
	"github.com/fittrack/activity-service/pkg/jwt"
)

// AuthMiddleware verifies the bearer token and attaches the caller's
// identity to the request. Every authentication failure gets the same
// 401 body so callers cannot distinguish a bad token from a revoked or
// missing one.
func AuthMiddleware(tokenService *jwt.TokenService, tokenBlacklist *blacklist.TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return authenticationRequired(c)
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return authenticationRequired(c)
		}
		token := parts[1]

		claims, err := tokenService.ValidateToken(token)
		if err != nil {
			return authenticationRequired(c)
		}

		isBlacklisted, err := tokenBlacklist.IsBlacklisted(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to verify token status",
			})
		}
		if isBlacklisted {
			return authenticationRequired(c)
		}

		// Store identity in fiber.Locals for downstream handlers
		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("token", token)

		return c.Next()
	}
}

func authenticationRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication required",
	})
}
