package testController

import (
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"
	"medmacs/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

type submittedAnswer struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	TimeTakenMs    int    `json:"time_taken_ms"`
}

// SubmitTest evaluates and stores a completed mock/practice test. Correctness
// is always recomputed here from the question bank; the client's own grading
// is never trusted at write time.
func SubmitTest(c *fiber.Ctx) error {
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
		Source    string            `json:"source"`
		SubjectID uint              `json:"subject_id"`
		Answers   []submittedAnswer `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No answers submitted!", nil)
	}
	if reqData.Source == "" {
		reqData.Source = models.AttemptSourceMock
	}

	// Load the authoritative questions in one query
	questionIDs := make([]uint, len(reqData.Answers))
	for i, a := range reqData.Answers {
		questionIDs[i] = a.QuestionID
	}

	var questions []models.Question
	if err := db.Where("id IN ? AND is_deleted = ?", questionIDs, false).Find(&questions).Error; err != nil {
		log.Printf("Error loading questions for attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit test!", nil)
	}

	questionByID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	score := 0
	questionAttempts := make([]models.QuestionAttempt, 0, len(reqData.Answers))
	for _, answer := range reqData.Answers {
		question, found := questionByID[answer.QuestionID]
		if !found {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown question in submission!", nil)
		}

		classification := utils.ClassifyAnswer(answer.SelectedAnswer, question.CorrectAnswer)
		if classification == models.AnswerCorrect {
			score++
		}

		questionAttempts = append(questionAttempts, models.QuestionAttempt{
			QuestionID:     answer.QuestionID,
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
		Source:         reqData.Source,
		SubjectID:      reqData.SubjectID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		CompletedAt:    time.Now(),
	}

	if err := db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving attempt: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit test!", nil)
	}

	for i := range questionAttempts {
		questionAttempts[i].TestAttemptID = attempt.ID
	}
	if err := db.Create(&questionAttempts).Error; err != nil {
		log.Printf("Error saving question attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit test!", nil)
	}

	remark := utils.RemarkFor(percentage)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Test submitted!", fiber.Map{
		"attempt":    attempt,
		"score":      score,
		"total":      total,
		"percentage": percentage,
		"remark":     remark,
	})
}

// GetResult returns a stored attempt with per-question review data. The
// stored classification is trusted as-is; it is not recomputed on read.
func GetResult(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	attemptID, err := c.ParamsInt("attempt_id")
	if err != nil || attemptID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	db := database.Database.Db

	var attempt models.TestAttempt
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", attemptID, userID, false).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	var questionAttempts []models.QuestionAttempt
	if err := db.Where("test_attempt_id = ? AND is_deleted = ?", attempt.ID, false).
		Order("id asc").Find(&questionAttempts).Error; err != nil {
		log.Printf("Error fetching question attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch result!", nil)
	}

	// Join in the question text/explanation for the review UI
	questionIDs := make([]uint, len(questionAttempts))
	for i, qa := range questionAttempts {
		questionIDs[i] = qa.QuestionID
	}
	var questions []models.Question
	db.Where("id IN ?", questionIDs).Find(&questions)
	questionByID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	type reviewRow struct {
		QuestionAttempt models.QuestionAttempt `json:"question_attempt"`
		QuestionText    string                 `json:"question_text"`
		CorrectAnswer   string                 `json:"correct_answer"`
		Explanation     string                 `json:"explanation"`
	}

	review := make([]reviewRow, len(questionAttempts))
	for i, qa := range questionAttempts {
		q := questionByID[qa.QuestionID]
		review[i] = reviewRow{
			QuestionAttempt: qa,
			QuestionText:    q.QuestionText,
			CorrectAnswer:   q.CorrectAnswer,
			Explanation:     q.Explanation,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result fetched!", fiber.Map{
		"attempt": attempt,
		"review":  review,
		"remark":  utils.RemarkFor(attempt.Percentage),
	})
}

// GetMyAttempts lists the caller's attempts, newest first
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	var attempts []models.TestAttempt
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("completed_at desc").Offset((page - 1) * limit).Limit(limit).Find(&attempts).Error; err != nil {
		log.Printf("Error fetching attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched!", attempts)
}

// GetLeaderboard builds the daily leaderboard from raw attempts: best attempt
// per user, the requested sort order, and the top-3 podium with dense tie
// ranks. Nothing is cached; every request re-derives from the day's rows.
func GetLeaderboard(c *fiber.Ctx) error {
	day := time.Now()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date! Use YYYY-MM-DD.", nil)
		}
		day = parsed
	}

	order := c.Query("sort", utils.SortByScore)
	if order != utils.SortByScore && order != utils.SortByUsername {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid sort order!", nil)
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var attempts []models.TestAttempt
	if err := database.Database.Db.
		Where("completed_at >= ? AND completed_at < ? AND is_deleted = ?", dayStart, dayEnd, false).
		Order("completed_at asc").Find(&attempts).Error; err != nil {
		log.Printf("Error fetching leaderboard attempts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	best := utils.BestAttemptPerUser(attempts)

	// Podium always ranks by score regardless of the display sort
	ranked := make([]models.TestAttempt, len(best))
	copy(ranked, best)
	utils.SortLeaderboard(ranked, utils.SortByScore)
	podium := utils.PodiumTop3(ranked)

	utils.SortLeaderboard(best, order)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched!", fiber.Map{
		"date":    dayStart.Format("2006-01-02"),
		"sort":    order,
		"entries": best,
		"podium":  podium,
	})
}
