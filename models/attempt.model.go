package models

import (
	"time"

	"gorm.io/gorm"
)

// Test attempt sources
const (
	AttemptSourceMock     = "MOCK"
	AttemptSourcePractice = "PRACTICE"
	AttemptSourceAI       = "AI"
	AttemptSourceBattle   = "BATTLE"
)

// TestAttempt is one user's completion of a test. Immutable once created:
// there is no update or delete path for attempts.
type TestAttempt struct {
	gorm.Model
	UserID         uint   `gorm:"index;not null" json:"user_id"`
	Username       string `json:"username"` // denormalized for leaderboard reads
	Source         string `gorm:"default:'MOCK'" json:"source"`
	SubjectID      uint   `gorm:"index" json:"subject_id"`
	Score          int    `gorm:"not null" json:"score"`
	TotalQuestions int    `gorm:"not null" json:"total_questions"`
	Percentage     int    `json:"percentage"`
	CompletedAt    time.Time `gorm:"index" json:"completed_at"`
	IsDeleted      bool      `gorm:"default:false"`
}

// Question attempt classifications
const (
	AnswerCorrect     = "CORRECT"
	AnswerIncorrect   = "INCORRECT"
	AnswerUnattempted = "UNATTEMPTED"
)

// QuestionAttempt is one answered (or skipped) question inside a TestAttempt.
// SelectedAnswer empty means the question was left unattempted.
type QuestionAttempt struct {
	gorm.Model
	TestAttemptID  uint   `gorm:"index;not null" json:"test_attempt_id"`
	QuestionID     uint   `gorm:"index;not null" json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `gorm:"default:false" json:"is_correct"`
	Classification string `json:"classification"` // CORRECT, INCORRECT, UNATTEMPTED
	TimeTakenMs    int    `gorm:"default:0" json:"time_taken_ms"`
	IsDeleted      bool   `gorm:"default:false"`
}
