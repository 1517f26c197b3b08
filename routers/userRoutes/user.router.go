package userRoutes

import (
	userController "medmacs/controllers/userControllers"
	"medmacs/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Put("/profile", middleware.JWTMiddleware, userController.UpdateProfile)
	userGroup.Get("/stats", middleware.JWTMiddleware, userController.GetStats)
}
