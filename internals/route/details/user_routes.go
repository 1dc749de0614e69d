package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "virtualab_backend/internals/features/audit/service"
	userController "virtualab_backend/internals/features/users/user/controller"
	helper "virtualab_backend/internals/helpers"
)

func UserAdminRoutes(r fiber.Router, db *gorm.DB, audit *auditService.Logger) {
	ctrl := userController.NewUserController(db, helper.Validate(), audit)

	r.Get("/users", ctrl.List)
	r.Get("/users/:id", ctrl.GetByID)
	r.Put("/users/:id", ctrl.Update)
	r.Post("/parent-links", ctrl.CreateParentLink)
	r.Put("/parent-links/:id/verify", ctrl.VerifyParentLink)
}
