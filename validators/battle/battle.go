package battleValidator

import (
	"medmacs/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateRoom validator middleware
func CreateRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubjectID     uint `json:"subject_id"`
			MaxPlayers    int  `json:"max_players"`
			QuestionCount int  `json:"question_count"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SubjectID == 0 {
			errors["subject_id"] = "Subject is required!"
		}
		if reqData.MaxPlayers < 0 || reqData.MaxPlayers > 8 {
			errors["max_players"] = "Max players must be between 2 and 8!"
		}
		if reqData.QuestionCount < 0 || reqData.QuestionCount > 30 {
			errors["question_count"] = "Question count must be between 5 and 30!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
