package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrNoUserInContext = errors.New("no authenticated user in context")

// Locals keys set by the auth middleware. Handlers read them only through
// the accessors below.
const (
	LocalUserID    = "user_id"
	LocalUserRole  = "user_role"
	LocalAdminTier = "role_admin_tier"
	LocalSessionID = "session_id"
)

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocalUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserInContext
	}
	return uuid.Parse(raw)
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalUserRole).(string)
	return role
}

func IsAdminTier(c *fiber.Ctx) bool {
	tier, _ := c.Locals(LocalAdminTier).(bool)
	return tier
}

func GetSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
