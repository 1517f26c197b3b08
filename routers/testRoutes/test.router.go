package testRoutes

import (
	testControllers "medmacs/controllers/test"
	"medmacs/middleware"
	testValidators "medmacs/validators/test"

	"github.com/gofiber/fiber/v2"
)

func SetupTestRoutes(app *fiber.App) {
	testGroup := app.Group("/tests")

	testGroup.Post("/submit", testValidators.SubmitTest(), middleware.JWTMiddleware, testControllers.SubmitTest)
	testGroup.Get("/attempts", middleware.JWTMiddleware, testControllers.GetMyAttempts)
	testGroup.Get("/results/:attempt_id", middleware.JWTMiddleware, testControllers.GetResult)
	testGroup.Get("/leaderboard", middleware.JWTMiddleware, testControllers.GetLeaderboard)
}
