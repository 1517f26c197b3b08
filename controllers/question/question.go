package questionController

import (
	"encoding/json"
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"

	"github.com/gofiber/fiber/v2"
)

// QuestionView is a question as served to students: no correct answer and no
// explanation until the attempt is submitted.
type QuestionView struct {
	ID           uint     `json:"id"`
	ChapterID    uint     `json:"chapter_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Difficulty   string   `json:"difficulty"`
	YearTag      string   `json:"year_tag"`
}

func toQuestionView(q models.Question) QuestionView {
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		log.Printf("Bad options JSON on question %d: %v", q.ID, err)
	}
	return QuestionView{
		ID:           q.ID,
		ChapterID:    q.ChapterID,
		QuestionText: q.QuestionText,
		Options:      options,
		Difficulty:   q.Difficulty,
		YearTag:      q.YearTag,
	}
}

// GetSubjects lists published subjects in display order
func GetSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := database.Database.Db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("order_index asc").Find(&subjects).Error; err != nil {
		log.Printf("Error fetching subjects: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects fetched successfully!", subjects)
}

// GetChapters lists published chapters of a subject
func GetChapters(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("subject_id")
	if err != nil || subjectID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	var subject models.Subject
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", subjectID, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	var chapters []models.Chapter
	if err := database.Database.Db.
		Where("subject_id = ? AND is_published = ? AND is_deleted = ?", subjectID, true, false).
		Order("order_index asc").Find(&chapters).Error; err != nil {
		log.Printf("Error fetching chapters: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters fetched successfully!", fiber.Map{
		"subject":  subject,
		"chapters": chapters,
	})
}

// GetChapterQuestions pages through a chapter's questions for practice mode
func GetChapterQuestions(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapter_id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var total int64
	db.Model(&models.Question{}).Where("chapter_id = ? AND is_published = ? AND is_deleted = ?", chapterID, true, false).Count(&total)

	var questions []models.Question
	if err := db.Where("chapter_id = ? AND is_published = ? AND is_deleted = ?", chapterID, true, false).
		Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&questions).Error; err != nil {
		log.Printf("Error fetching questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = toQuestionView(q)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"questions": views,
		"page":      page,
		"limit":     limit,
		"total":     total,
	})
}

// CheckAnswer grades one practice question instantly and reveals the
// explanation. Practice mode only; mock tests grade on submit.
func CheckAnswer(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("question_id")
	if err != nil || questionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	reqData := new(struct {
		SelectedAnswer string `json:"selected_answer"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var question models.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	isCorrect := reqData.SelectedAnswer != "" && reqData.SelectedAnswer == question.CorrectAnswer

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer checked!", fiber.Map{
		"is_correct":     isCorrect,
		"correct_answer": question.CorrectAnswer,
		"explanation":    question.Explanation,
	})
}
