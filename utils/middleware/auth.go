package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/utils/auth"
	"github.com/sahilchouksey/institucion-api/utils/response"
)

const localsActor = "actor"

// AdminGuard requires a valid admin access token. A nil manager lets every
// request through, which is how the guard is switched off.
func AdminGuard(jwtManager *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtManager == nil {
			return c.Next()
		}

		// Get token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		if claims.Role != auth.RoleAdmin {
			return response.Forbidden(c, "Admin access required")
		}

		c.Locals(localsActor, claims.Subject)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// Actor returns who made the request, empty when unauthenticated.
func Actor(c *fiber.Ctx) string {
	actor, _ := c.Locals(localsActor).(string)
	return actor
}
