package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "virtualab_backend/internals/features/audit/service"
	fileController "virtualab_backend/internals/features/files/controller"
	helper "virtualab_backend/internals/helpers"
	"virtualab_backend/internals/helpers/storage"
)

func FileRoutes(r fiber.Router, db *gorm.DB, audit *auditService.Logger, store storage.Storage) {
	ctrl := fileController.NewFileController(db, helper.Validate(), audit, store)

	r.Post("/files", ctrl.Upload)
	r.Get("/files", ctrl.List)
	r.Delete("/files/:id", ctrl.Delete)
}
