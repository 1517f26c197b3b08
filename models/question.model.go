package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Subject is a top-level MDCAT subject (Biology, Chemistry, Physics, English, Logic)
type Subject struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	Icon        string `gorm:"default:''"`
	OrderIndex  int    `gorm:"default:0"`
	IsPublished bool   `gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Chapter groups questions inside a subject
type Chapter struct {
	gorm.Model
	SubjectID   uint   `gorm:"index;not null"`
	Name        string `gorm:"not null"`
	Description string
	OrderIndex  int  `gorm:"default:0"`
	IsPublished bool `gorm:"default:true"`
	IsDeleted   bool `gorm:"default:false"`
}

// Question is a single MCQ in the bank. Options is a JSON array of option
// strings; CorrectAnswer must equal one of them exactly.
type Question struct {
	gorm.Model
	ChapterID     uint           `gorm:"index;not null"`
	QuestionText  string         `gorm:"not null"`
	Options       datatypes.JSON `gorm:"not null"` // JSON array of option strings
	CorrectAnswer string         `gorm:"not null"`
	Explanation   string
	Difficulty    string `gorm:"default:'MEDIUM'"` // EASY, MEDIUM, HARD
	YearTag       string `gorm:"default:''"`       // past-paper year, if any
	IsPublished   bool   `gorm:"default:true"`
	IsDeleted     bool   `gorm:"default:false"`
}
