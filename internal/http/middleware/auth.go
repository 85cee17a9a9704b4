package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"labpipe/internal/auth"
)

const (
	// UserIDLocalKey holds the authenticated user's id in context locals.
	UserIDLocalKey = "user_id"
	// UserRoleLocalKey holds the authenticated user's role in context locals.
	UserRoleLocalKey = "user_role"
	// UserEmailLocalKey holds the authenticated user's email in context locals.
	UserEmailLocalKey = "user_email"
)

// Auth verifies the Authorization bearer token on every request it guards.
//
// Missing header, malformed header, bad signature, and expired token all
// produce the same 401 payload; no detail about which check failed is
// leaked to the caller.
func Auth(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return unauthorized(c)
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(UserIDLocalKey, claims.UserID())
		c.Locals(UserRoleLocalKey, string(claims.Role))
		c.Locals(UserEmailLocalKey, claims.Email)
		return c.Next()
	}
}

// UserID returns the authenticated user's id from context locals, or "".
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}

func unauthorized(c *fiber.Ctx) error {
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"request_id": rid,
		"error": fiber.Map{
			"code":    "UNAUTHORIZED",
			"message": "missing or invalid credentials",
		},
	})
}
