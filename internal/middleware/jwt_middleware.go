package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"culvana/internal/services"
)

// AuthRequired is a Fiber middleware that rejects requests without a valid
// session token. The token's user id is stored in the request context for
// downstream handlers.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"message": "Authorization header is required"},
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"message": "Authorization header format must be 'Bearer <token>'"},
			})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			log.Printf("Session token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{"message": "Invalid or expired token"},
			})
		}

		c.Locals("user_id", claims["user_id"])

		return c.Next()
	}
}
