package utils

import (
	"log"
	"medmacs/database"
	"medmacs/models"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePlanScheduler sets up the daily plan expiry job
func InitializePlanScheduler() {
	log.Println("[PLAN-SCHEDULER] Initializing plan scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind and expire
	c.AddFunc("0 9 * * *", func() {
		log.Println("[PLAN-SCHEDULER] Running daily plan check...")
		ProcessExpiringPlans()
		ExpirePlans()
	})

	c.Start()
	log.Println("[PLAN-SCHEDULER] Plan scheduler started - runs daily at 9 AM")
}

// ProcessExpiringPlans sends reminder emails for plans expiring in 2 days
func ProcessExpiringPlans() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	// Find plans expiring in ~2 days that haven't received a reminder
	var expiringPlans []models.UserPlan
	if err := db.
		Where("status = ? AND reminder_sent = false AND expires_at IS NOT NULL", models.PlanActive).
		Where("expires_at BETWEEN ? AND ?", now, twoDaysFromNow).
		Preload("Plan").
		Find(&expiringPlans).Error; err != nil {
		log.Printf("[PLAN-SCHEDULER] Error fetching expiring plans: %v", err)
		return
	}

	log.Printf("[PLAN-SCHEDULER] Found %d plans expiring soon", len(expiringPlans))

	for _, userPlan := range expiringPlans {
		var user models.User
		if err := db.Where("id = ?", userPlan.UserID).First(&user).Error; err != nil {
			log.Printf("[PLAN-SCHEDULER] Error fetching user %d: %v", userPlan.UserID, err)
			continue
		}

		SendPlanExpiryReminder(user.Email, user.Name, userPlan.Plan.Name, userPlan.ExpiresAt)

		db.Model(&userPlan).Update("reminder_sent", true)
		log.Printf("[PLAN-SCHEDULER] Sent expiry reminder for plan %d to %s", userPlan.ID, user.Email)
	}
}

// ExpirePlans marks lapsed plans as EXPIRED
func ExpirePlans() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&models.UserPlan{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.PlanActive, now).
		Updates(map[string]interface{}{"status": models.PlanExpired})

	if result.Error != nil {
		log.Printf("[PLAN-SCHEDULER] Error expiring plans: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[PLAN-SCHEDULER] Expired %d plans", result.RowsAffected)
	}
}
