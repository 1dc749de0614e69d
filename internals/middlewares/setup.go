package middlewares

import (
	"github.com/gofiber/fiber/v2"

	auditService "virtualab_backend/internals/features/audit/service"
	loggerMW "virtualab_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base stack. Order matters: recovery first so
// downstream panics still produce a response and an audit row.
func SetupMiddlewares(app *fiber.App, audit *auditService.Logger) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMW.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(AuditRequests(audit))
}
