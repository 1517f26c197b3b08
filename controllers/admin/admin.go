package adminController

import (
	"encoding/json"
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"
	"medmacs/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// GetDashboard returns headline counts for the admin dashboard
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)

	dayStart := time.Now().Truncate(24 * time.Hour)
	var attemptsToday int64
	db.Model(&models.TestAttempt{}).Where("completed_at >= ? AND is_deleted = ?", dayStart, false).Count(&attemptsToday)

	var activePlans int64
	db.Model(&models.UserPlan{}).Where("status = ? AND is_deleted = ?", models.PlanActive, false).Count(&activePlans)

	var openBattles int64
	db.Model(&models.BattleRoom{}).Where("status <> ? AND is_deleted = ?", models.BattleFinished, false).Count(&openBattles)

	var totalQuestions int64
	db.Model(&models.Question{}).Where("is_deleted = ?", false).Count(&totalQuestions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", fiber.Map{
		"total_users":     totalUsers,
		"attempts_today":  attemptsToday,
		"active_plans":    activePlans,
		"open_battles":    openBattles,
		"total_questions": totalQuestions,
	})
}

// GetUsers lists users with optional search on username/email
func GetUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	search := c.Query("search")

	db := database.Database.Db

	query := db.Model(&models.User{}).Where("is_deleted = ?", false)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched!", fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// SetUserBlocked blocks or unblocks a user account
func SetUserBlocked(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("user_id")
	if err != nil || targetID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		Blocked bool `json:"blocked"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsBlocked = reqData.Blocked
	user.BlockedUntil = nil
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating block state: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated!", nil)
}

// SetUserRole changes a user's role
func SetUserRole(c *fiber.Ctx) error {
	targetID, err := c.ParamsInt("user_id")
	if err != nil || targetID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Role != "USER" && reqData.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Role must be USER or ADMIN!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = reqData.Role
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated!", nil)
}

// CreateSubject adds a subject
func CreateSubject(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		OrderIndex  int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name is required!", nil)
	}

	subject := models.Subject{
		Name:        reqData.Name,
		Description: reqData.Description,
		Icon:        reqData.Icon,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&subject).Error; err != nil {
		log.Printf("Error creating subject: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created!", subject)
}

// CreateChapter adds a chapter to a subject
func CreateChapter(c *fiber.Ctx) error {
	reqData := new(struct {
		SubjectID   uint   `json:"subject_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" || reqData.SubjectID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Subject id and name are required!", nil)
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.Where("id = ? AND is_deleted = ?", reqData.SubjectID, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	chapter := models.Chapter{
		SubjectID:   reqData.SubjectID,
		Name:        reqData.Name,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := db.Create(&chapter).Error; err != nil {
		log.Printf("Error creating chapter: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created!", chapter)
}

type questionPayload struct {
	ChapterID     uint     `json:"chapter_id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	YearTag       string   `json:"year_tag"`
}

func (p *questionPayload) validate() string {
	if p.ChapterID == 0 {
		return "Chapter id is required!"
	}
	if p.QuestionText == "" {
		return "Question text is required!"
	}
	if len(p.Options) < 2 {
		return "At least two options are required!"
	}
	found := false
	for _, opt := range p.Options {
		if opt == p.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return "Correct answer must match one of the options!"
	}
	return ""
}

func (p *questionPayload) toModel() (models.Question, error) {
	optionsJSON, err := json.Marshal(p.Options)
	if err != nil {
		return models.Question{}, err
	}
	difficulty := p.Difficulty
	if difficulty == "" {
		difficulty = "MEDIUM"
	}
	return models.Question{
		ChapterID:     p.ChapterID,
		QuestionText:  p.QuestionText,
		Options:       datatypes.JSON(optionsJSON),
		CorrectAnswer: p.CorrectAnswer,
		Explanation:   p.Explanation,
		Difficulty:    difficulty,
		YearTag:       p.YearTag,
	}, nil
}

// CreateQuestion adds a single question to the bank
func CreateQuestion(c *fiber.Ctx) error {
	reqData := new(questionPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if msg := reqData.validate(); msg != "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
	}

	question, err := reqData.toModel()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created!", question)
}

// BulkCreateQuestions inserts a batch of questions in one transaction
func BulkCreateQuestions(c *fiber.Ctx) error {
	reqData := new(struct {
		Questions []questionPayload `json:"questions"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if len(reqData.Questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No questions provided!", nil)
	}

	questions := make([]models.Question, 0, len(reqData.Questions))
	for i := range reqData.Questions {
		payload := &reqData.Questions[i]
		if msg := payload.validate(); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		question, err := payload.toModel()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
		}
		questions = append(questions, question)
	}

	if err := database.Database.Db.Create(&questions).Error; err != nil {
		log.Printf("Error bulk inserting questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to insert questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Questions inserted!", fiber.Map{
		"inserted": len(questions),
	})
}

// UpdateQuestion edits an existing question
func UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("question_id")
	if err != nil || questionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	reqData := new(questionPayload)
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if reqData.QuestionText != "" {
		question.QuestionText = reqData.QuestionText
	}
	if len(reqData.Options) > 0 {
		optionsJSON, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
		}
		question.Options = datatypes.JSON(optionsJSON)
	}
	if reqData.CorrectAnswer != "" {
		question.CorrectAnswer = reqData.CorrectAnswer
	}
	if reqData.Explanation != "" {
		question.Explanation = reqData.Explanation
	}
	if reqData.Difficulty != "" {
		question.Difficulty = reqData.Difficulty
	}
	if reqData.YearTag != "" {
		question.YearTag = reqData.YearTag
	}

	if err := db.Save(&question).Error; err != nil {
		log.Printf("Error updating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated!", question)
}

// DeleteQuestion soft-deletes a question
func DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := c.ParamsInt("question_id")
	if err != nil || questionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := db.Save(&question).Error; err != nil {
		log.Printf("Error deleting question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted!", nil)
}

// CreatePlan adds a subscription plan
func CreatePlan(c *fiber.Ctx) error {
	reqData := new(struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Price        float64  `json:"price"`
		Currency     string   `json:"currency"`
		DurationDays int      `json:"duration_days"`
		Features     []string `json:"features"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" || reqData.DurationDays < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name and duration are required!", nil)
	}

	featuresJSON, err := json.Marshal(reqData.Features)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid features!", nil)
	}

	plan := models.Plan{
		Name:         reqData.Name,
		Description:  reqData.Description,
		Price:        reqData.Price,
		Currency:     reqData.Currency,
		DurationDays: reqData.DurationDays,
		Features:     datatypes.JSON(featuresJSON),
	}
	if plan.Currency == "" {
		plan.Currency = "PKR"
	}

	if err := database.Database.Db.Create(&plan).Error; err != nil {
		log.Printf("Error creating plan: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan created!", plan)
}

// GenerateRedeemCodes creates a batch of single-use codes for a plan
func GenerateRedeemCodes(c *fiber.Ctx) error {
	reqData := new(struct {
		PlanID       uint `json:"plan_id"`
		DurationDays int  `json:"duration_days"`
		Count        int  `json:"count"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Count < 1 || reqData.Count > 500 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Count must be between 1 and 500!", nil)
	}

	db := database.Database.Db

	var plan models.Plan
	if err := db.Where("id = ? AND is_deleted = ?", reqData.PlanID, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	if reqData.DurationDays < 1 {
		reqData.DurationDays = plan.DurationDays
	}

	codes := make([]models.RedeemCode, reqData.Count)
	for i := range codes {
		codes[i] = models.RedeemCode{
			Code:         utils.GenerateRedeemCode(),
			PlanID:       plan.ID,
			DurationDays: reqData.DurationDays,
		}
	}

	if err := db.Create(&codes).Error; err != nil {
		log.Printf("Error generating redeem codes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate codes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Codes generated!", codes)
}

// GetRedeemCodes lists codes, optionally filtering to unused ones
func GetRedeemCodes(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	unusedOnly := c.QueryBool("unused", false)

	db := database.Database.Db

	query := db.Model(&models.RedeemCode{}).Where("is_deleted = ?", false)
	if unusedOnly {
		query = query.Where("is_used = ?", false)
	}

	var codes []models.RedeemCode
	if err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&codes).Error; err != nil {
		log.Printf("Error fetching redeem codes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch codes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Codes fetched!", codes)
}
