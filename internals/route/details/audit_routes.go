package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditController "virtualab_backend/internals/features/audit/controller"
)

func AuditRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := auditController.NewActivityLogController(db)

	r.Get("/activity-logs", ctrl.List)
}
