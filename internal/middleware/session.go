package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bankist/bankist/internal/account"
	"github.com/bankist/bankist/internal/auth"
)

// UsernameKey is the Locals key under which the authenticated username is
// stored for downstream handlers.
const UsernameKey = "username"

// Session validates the bearer token and requires it to match the store's
// active session. A verified token for a logged-out or superseded session is
// rejected, which keeps the single-session model honest at the HTTP edge.
func Session(tokens *auth.Service, store *account.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])

		username, err := tokens.Verify(token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		current, err := store.Current()
		if err != nil || current.Username != username {
			return fiber.NewError(http.StatusUnauthorized, "session expired")
		}

		c.Locals(UsernameKey, username)
		return c.Next()
	}
}
