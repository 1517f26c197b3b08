package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string `gorm:"default:''"`
	Name                string `gorm:"default:''"`
	Username            string `gorm:"unique;not null"`
	Email               string `gorm:"unique;not null"`
	Mobile              string `gorm:"default:''"`
	Role                string `gorm:"default:'USER'"` // USER, ADMIN
	Password            string `gorm:"not null"`
	College             string
	City                string
	TargetYear          int        `gorm:"default:0"` // MDCAT attempt year
	IsEmailVerified     bool       `gorm:"default:false"`
	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}

// OTP stores one-time codes sent for email verification
type OTP struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	Code      string `gorm:"not null"`
	Purpose   string `gorm:"default:'EMAIL_VERIFY'"`
	ExpiresAt time.Time
	IsUsed    bool `gorm:"default:false"`
	IsDeleted bool `gorm:"default:false"`
}

// LoginTracking records every successful login for the admin dashboard
type LoginTracking struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	IP        string `gorm:"default:''"`
	UserAgent string `gorm:"default:''"`
	IsDeleted bool   `gorm:"default:false"`
}
