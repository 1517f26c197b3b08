package models

import (
	"time"

	"gorm.io/gorm"
)

// Classroom is a teacher-led study group with chat and scheduled lectures
type Classroom struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	HostID      uint   `gorm:"index;not null"`
	InviteCode  string `gorm:"unique;not null"` // shared out-of-band to join
	IsDeleted   bool   `gorm:"default:false"`
}

type ClassroomMember struct {
	gorm.Model
	ClassroomID uint   `gorm:"index;not null"`
	UserID      uint   `gorm:"index;not null"`
	Role        string `gorm:"default:'STUDENT'"` // HOST, STUDENT
	IsDeleted   bool   `gorm:"default:false"`
}

// ClassroomMessage is a persisted chat message. Delivery to connected members
// happens through the realtime hub; history reads come from this table.
type ClassroomMessage struct {
	gorm.Model
	ClassroomID uint   `gorm:"index;not null" json:"classroom_id"`
	SenderID    uint   `gorm:"index;not null" json:"sender_id"`
	SenderName  string `json:"sender_name"`
	Message     string `gorm:"not null" json:"message"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Lecture is a scheduled video session. The meeting itself runs on the
// external video SDK; we only store the meeting ID and sign join tokens.
type Lecture struct {
	gorm.Model
	ClassroomID uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	MeetingID   string `gorm:"not null"`
	ScheduledAt time.Time
	StartedAt   *time.Time
	EndedAt     *time.Time
	IsDeleted   bool `gorm:"default:false"`
}
