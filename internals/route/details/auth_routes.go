package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "virtualab_backend/internals/features/audit/service"
	authController "virtualab_backend/internals/features/users/auth/controller"
	helper "virtualab_backend/internals/helpers"
	"virtualab_backend/internals/middlewares"
	authMW "virtualab_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, audit *auditService.Logger) {
	ctrl := authController.NewAuthController(db, helper.Validate(), audit)

	api := app.Group("/api")
	api.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	api.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.LoginGoogle)
	api.Post("/password-reset/request", middlewares.LoginRateLimiter(), ctrl.RequestPasswordReset)
	api.Post("/password-reset/confirm", ctrl.ConfirmPasswordReset)

	api.Post("/logout", authMW.AuthMiddleware(db), ctrl.Logout)
	api.Get("/me", authMW.AuthMiddleware(db), ctrl.Me)
}
