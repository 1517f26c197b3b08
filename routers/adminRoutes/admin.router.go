package adminRoutes

import (
	adminControllers "medmacs/controllers/admin"
	"medmacs/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/dashboard", adminControllers.GetDashboard)
	adminGroup.Get("/users", adminControllers.GetUsers)
	adminGroup.Patch("/users/:user_id/block", adminControllers.SetUserBlocked)
	adminGroup.Patch("/users/:user_id/role", adminControllers.SetUserRole)

	adminGroup.Post("/subjects", adminControllers.CreateSubject)
	adminGroup.Post("/chapters", adminControllers.CreateChapter)
	adminGroup.Post("/questions", adminControllers.CreateQuestion)
	adminGroup.Post("/questions/bulk", adminControllers.BulkCreateQuestions)
	adminGroup.Put("/questions/:question_id", adminControllers.UpdateQuestion)
	adminGroup.Delete("/questions/:question_id", adminControllers.DeleteQuestion)

	adminGroup.Post("/plans", adminControllers.CreatePlan)
	adminGroup.Post("/redeem-codes", adminControllers.GenerateRedeemCodes)
	adminGroup.Get("/redeem-codes", adminControllers.GetRedeemCodes)
}
