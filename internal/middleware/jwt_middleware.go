package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lelang/internal/services"
	"lelang/pkg/logging"
)

// AuthRequired is a Fiber middleware that checks for a valid JWT token
// and stores the authenticated user id on the request. Requests without
// a user never reach an ownership check.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			logging.Warn("JWT validation failed", map[string]any{"error": err.Error()})
			return unauthorized(c, "Invalid or expired token")
		}

		// JSON numbers decode as float64.
		rawID, ok := claims["user_id"].(float64)
		if !ok || rawID <= 0 {
			return unauthorized(c, "Invalid token claims")
		}

		c.Locals("user_id", uint(rawID))
		c.Locals("username", claims["username"])

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":   fiber.StatusUnauthorized,
		"messages": fiber.Map{"error": message},
	})
}
