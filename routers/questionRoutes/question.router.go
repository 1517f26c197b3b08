package questionRoutes

import (
	questionControllers "medmacs/controllers/question"
	"medmacs/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoutes(app *fiber.App) {
	questionGroup := app.Group("/questions")

	questionGroup.Get("/subjects", middleware.JWTMiddleware, questionControllers.GetSubjects)
	questionGroup.Get("/subjects/:subject_id/chapters", middleware.JWTMiddleware, questionControllers.GetChapters)
	questionGroup.Get("/chapters/:chapter_id", middleware.JWTMiddleware, questionControllers.GetChapterQuestions)
	questionGroup.Post("/:question_id/check", middleware.JWTMiddleware, questionControllers.CheckAnswer)
}
