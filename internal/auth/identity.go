package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/pkg/util"
)

// HeaderUserID carries the caller's identity. There is no credential
// verification on this surface; upstream infrastructure is trusted to set
// the header.
const HeaderUserID = "X-User-ID"

const localsUserKey = "auth.user_id"

// Identity extracts the caller's user ID from the request header and
// stashes it on the request. Requests without the header still proceed;
// endpoints that need an identity call RequireUserID.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := strings.TrimSpace(c.Get(HeaderUserID)); id != "" {
			c.Locals(localsUserKey, id)
		}
		return c.Next()
	}
}

// UserID returns the caller's user ID, or empty when the header was absent.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localsUserKey).(string); ok {
		return id
	}
	return ""
}

// RequireUserID returns the caller's user ID or an unauthorized error.
func RequireUserID(c *fiber.Ctx) (string, error) {
	id := UserID(c)
	if id == "" {
		return "", util.NewUnauthorized("user identity required")
	}
	return id, nil
}
