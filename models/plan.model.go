package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User plan statuses
const (
	PlanActive  = "ACTIVE"
	PlanExpired = "EXPIRED"
)

// Plan is a purchasable subscription tier
type Plan struct {
	gorm.Model
	Name         string  `gorm:"unique;not null"`
	Description  string
	Price        float64 `gorm:"not null"`
	Currency     string  `gorm:"default:'PKR'"`
	DurationDays int     `gorm:"not null"`
	Features     datatypes.JSON // JSON array of feature strings for the pricing page
	IsPublished  bool `gorm:"default:true"`
	IsDeleted    bool `gorm:"default:false"`
}

// UserPlan is a user's active (or lapsed) subscription window
type UserPlan struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null"`
	PlanID       uint   `gorm:"index;not null"`
	Plan         Plan   `gorm:"foreignKey:PlanID"`
	Status       string `gorm:"default:'ACTIVE'"` // ACTIVE, EXPIRED
	ExpiresAt    *time.Time
	ReminderSent bool `gorm:"default:false"`
	IsDeleted    bool `gorm:"default:false"`
}

// RedeemCode is a single-use code that grants a plan without checkout
type RedeemCode struct {
	gorm.Model
	Code         string `gorm:"unique;not null"`
	PlanID       uint   `gorm:"index;not null"`
	DurationDays int    `gorm:"not null"`
	IsUsed       bool   `gorm:"default:false"`
	UsedByUserID uint   `gorm:"default:0"`
	UsedAt       *time.Time
	IsDeleted    bool `gorm:"default:false"`
}

// PaymentOrder records a checkout session handed off to the hosted payment
// page. Webhook reconciliation is out of scope; orders stay PENDING until
// an admin or a redeem flow settles them.
type PaymentOrder struct {
	gorm.Model
	UserID      uint    `gorm:"index;not null"`
	PlanName    string  `gorm:"not null"`
	Duration    int     `gorm:"not null"`
	Currency    string  `gorm:"default:'PKR'"`
	Amount      float64 `gorm:"default:0"`
	CheckoutUrl string
	Status      string `gorm:"default:'PENDING'"` // PENDING, PAID, FAILED
	IsDeleted   bool   `gorm:"default:false"`
}
