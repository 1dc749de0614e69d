package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "virtualab_backend/internals/features/users/user/model"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

// AuthMiddleware resolves the session token (Bearer header or cookie),
// loads the user + role, and stores the identity in locals. Missing or
// dead sessions are a plain 401, never an error log.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := helperAuth.ExtractSessionToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing session token")
		}

		sess, err := helperAuth.ResolveSession(db.WithContext(c.Context()), token)
		if err != nil {
			log.Printf("[ERROR] session resolve: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
		if sess == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired session")
		}

		var user userModel.UserModel
		if err := db.WithContext(c.Context()).Preload("Role").
			First(&user, "id = ?", sess.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user not found")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "account is deactivated")
		}

		c.Locals(helperAuth.LocalUserID, user.ID.String())
		c.Locals(helperAuth.LocalUserRole, user.Role.RoleName)
		c.Locals(helperAuth.LocalAdminTier, user.Role.AdminTier)
		c.Locals(helperAuth.LocalSessionID, sess.ID.String())

		return c.Next()
	}
}
