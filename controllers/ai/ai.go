package aiController

import (
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"
	"medmacs/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GenerateTest proxies a generation request to the AI service and returns the
// produced questions. Single attempt; a failed upstream call is terminal for
// this request (the client shows a toast and may retry manually).
func GenerateTest(c *fiber.Ctx) error {
	reqData := new(struct {
		Topic         string `json:"topic"`
		Difficulty    string `json:"difficulty"`
		QuestionCount int    `json:"questionCount"`
		CustomPrompt  string `json:"customPrompt"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Topic == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Topic is required!", nil)
	}
	if reqData.QuestionCount < 1 || reqData.QuestionCount > 50 {
		reqData.QuestionCount = 10
	}
	if reqData.Difficulty == "" {
		reqData.Difficulty = "MEDIUM"
	}

	questions, err := utils.GenerateAITest(reqData.Topic, reqData.Difficulty, reqData.QuestionCount, reqData.CustomPrompt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "AI test generation failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test generated!", fiber.Map{
		"topic":     reqData.Topic,
		"questions": questions,
	})
}

// Chat forwards a topic-scoped study question to the AI chat endpoint
func Chat(c *fiber.Ctx) error {
	reqData := new(struct {
		Topic    string `json:"topic"`
		Question string `json:"question"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Question == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question is required!", nil)
	}

	answer, err := utils.AskAIChat(reqData.Topic, reqData.Question)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "AI chat failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer generated!", fiber.Map{
		"answer": answer,
	})
}

// SubmitAITest grades a completed AI-generated test. These questions never
// enter the bank, so the submission carries the generated correct answers and
// grading strips option-label prefixes from both sides: the AI may label
// options "A) ..." at generation while the UI re-labels them before display.
func SubmitAITest(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData := new(struct {
		Topic   string `json:"topic"`
		Answers []struct {
			Question       string `json:"question"`
			CorrectAnswer  string `json:"correct_answer"`
			SelectedAnswer string `json:"selected_answer"`
			TimeTakenMs    int    `json:"time_taken_ms"`
		} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No answers submitted!", nil)
	}

	score := 0
	questionAttempts := make([]models.QuestionAttempt, 0, len(reqData.Answers))
	classifications := make([]string, len(reqData.Answers))
	for i, answer := range reqData.Answers {
		classification := utils.ClassifyAnswerNormalized(answer.SelectedAnswer, answer.CorrectAnswer)
		classifications[i] = classification
		if classification == models.AnswerCorrect {
			score++
		}

		questionAttempts = append(questionAttempts, models.QuestionAttempt{
			SelectedAnswer: answer.SelectedAnswer,
			IsCorrect:      classification == models.AnswerCorrect,
			Classification: classification,
			TimeTakenMs:    answer.TimeTakenMs,
		})
	}

	total := len(reqData.Answers)
	percentage := utils.Percentage(score, total)

	attempt := models.TestAttempt{
		UserID:         userID,
		Username:       user.Username,
		Source:         models.AttemptSourceAI,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		CompletedAt:    time.Now(),
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving AI attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit test!", nil)
	}

	for i := range questionAttempts {
		questionAttempts[i].TestAttemptID = attempt.ID
	}
	if err := db.Create(&questionAttempts).Error; err != nil {
		log.Printf("Error saving AI question attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit test!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test submitted!", fiber.Map{
		"attempt":         attempt,
		"score":           score,
		"total":           total,
		"percentage":      percentage,
		"classifications": classifications,
		"remark":          utils.RemarkFor(percentage),
	})
}
