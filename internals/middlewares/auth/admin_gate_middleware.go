package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	auditDTO "virtualab_backend/internals/features/audit/dto"
	"virtualab_backend/internals/features/audit/model"
	auditService "virtualab_backend/internals/features/audit/service"
	helperAuth "virtualab_backend/internals/helpers/auth"
)

// AdminGate blocks non-admin-tier users and records the attempt as a
// high-severity security event (privilege escalation).
func AdminGate(logger *auditService.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.IsAdminTier(c) {
			return c.Next()
		}

		var userID *uuid.UUID
		if id, err := helperAuth.GetUserID(c); err == nil {
			userID = &id
		}
		logger.LogSecurityEvent(c.Context(), userID, c.IP(), c.Get(fiber.HeaderUserAgent),
			auditDTO.SecurityEventPayload{
				Severity: model.SeverityHigh,
				Event:    "privilege_escalation_attempt",
				Context: map[string]interface{}{
					"path":   c.Path(),
					"method": c.Method(),
					"role":   helperAuth.GetUserRole(c),
				},
			})

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "forbidden: admin access required",
		})
	}
}
