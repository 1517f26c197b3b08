package aiRoutes

import (
	aiControllers "medmacs/controllers/ai"
	"medmacs/middleware"
	aiValidators "medmacs/validators/ai"

	"github.com/gofiber/fiber/v2"
)

func SetupAIRoutes(app *fiber.App) {
	aiGroup := app.Group("/ai")

	aiGroup.Post("/generate", aiValidators.GenerateTest(), middleware.JWTMiddleware, aiControllers.GenerateTest)
	aiGroup.Post("/chat", aiValidators.Chat(), middleware.JWTMiddleware, aiControllers.Chat)
	aiGroup.Post("/submit", aiValidators.SubmitAITest(), middleware.JWTMiddleware, aiControllers.SubmitAITest)
}
