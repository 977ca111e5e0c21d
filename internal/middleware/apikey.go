package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// APIKey guards the gateway with a shared service key. The configured
// value is a bcrypt hash so the plaintext key never appears in the
// environment; callers present the key as a bearer token. An empty hash
// disables the check.
func APIKey(keyHash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if keyHash == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(token)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid api key")
		}

		return c.Next()
	}
}
