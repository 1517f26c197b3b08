package aiValidator

import (
	"medmacs/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GenerateTest validator middleware
func GenerateTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Topic         string `json:"topic"`
			QuestionCount int    `json:"questionCount"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Topic) == "" {
			errors["topic"] = "Topic is required!"
		}
		if reqData.QuestionCount < 0 || reqData.QuestionCount > 50 {
			errors["questionCount"] = "Question count must be between 1 and 50!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Chat validator middleware
func Chat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question string `json:"question"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Question) == "" {
			errors["question"] = "Question is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// SubmitAITest validator middleware
func SubmitAITest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []struct {
				Question      string `json:"question"`
				CorrectAnswer string `json:"correct_answer"`
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
			if answer.Question == "" || answer.CorrectAnswer == "" {
				errors["answers"] = "Every answer needs its question and correct answer!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
