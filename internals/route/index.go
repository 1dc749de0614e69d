package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "virtualab_backend/internals/features/audit/service"
	"virtualab_backend/internals/helpers/storage"
	authMW "virtualab_backend/internals/middlewares/auth"
	"virtualab_backend/internals/middlewares/ratelimit"
	routeDetails "virtualab_backend/internals/route/details"
)

// SetupRoutes mounts everything. Three surfaces:
//
//	/api        public (auth endpoints, health)
//	/api/u      any authenticated user
//	/api/a      admin tier only
func SetupRoutes(app *fiber.App, db *gorm.DB, audit *auditService.Logger, store storage.Storage, counters ratelimit.CounterStore) {
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, audit)

	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMW.AuthMiddleware(db),
		ratelimit.New(120, time.Minute, counters, audit),
	)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMW.AuthMiddleware(db),
		authMW.AdminGate(audit),
		ratelimit.New(240, time.Minute, counters, audit),
	)

	log.Println("[INFO] Mounting LMS routes...")
	routeDetails.LmsUserRoutes(private, db, audit)
	routeDetails.LmsAdminRoutes(admin, db, audit)

	log.Println("[INFO] Mounting file routes...")
	routeDetails.FileRoutes(private, db, audit, store)

	log.Println("[INFO] Mounting user admin routes...")
	routeDetails.UserAdminRoutes(admin, db, audit)

	log.Println("[INFO] Mounting audit routes...")
	routeDetails.AuditRoutes(admin, db)
}
