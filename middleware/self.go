package middleware

import "github.com/gofiber/fiber/v2"

// SelfOnly rejects requests whose :param differs from the caller's user id.
// It must run after JWTMiddleware.
func SelfOnly(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Params(param) != CurrentUserID(c) {
			return ErrorResponse(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}
