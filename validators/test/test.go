package testValidator

import (
	"medmacs/middleware"
	"medmacs/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitTest validator middleware
func SubmitTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Source  string `json:"source"`
			Answers []struct {
				QuestionID     uint   `json:"question_id"`
				SelectedAnswer string `json:"selected_answer"`
				TimeTakenMs    int    `json:"time_taken_ms"`
			} `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, answer := range reqData.Answers {
			if answer.QuestionID == 0 {
				errors["answers"] = "Every answer needs a question id!"
				break
			}
		}
		if reqData.Source != "" &&
			reqData.Source != models.AttemptSourceMock &&
			reqData.Source != models.AttemptSourcePractice {
			errors["source"] = "Source must be MOCK or PRACTICE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
