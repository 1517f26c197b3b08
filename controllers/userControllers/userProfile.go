package userController

import (
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the caller's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", user)
}

// UpdateProfile updates the caller's editable profile fields
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name         string `json:"name"`
		ProfileImage string `json:"profile_image"`
		College      string `json:"college"`
		City         string `json:"city"`
		TargetYear   int    `json:"target_year"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.ProfileImage != "" {
		user.ProfileImage = reqData.ProfileImage
	}
	if reqData.College != "" {
		user.College = reqData.College
	}
	if reqData.City != "" {
		user.City = reqData.City
	}
	if reqData.TargetYear > 0 {
		user.TargetYear = reqData.TargetYear
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated!", user)
}

// GetStats summarizes the caller's practice history for the dashboard
func GetStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalAttempts int64
	db.Model(&models.TestAttempt{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&totalAttempts)

	var bestScore int
	row := db.Model(&models.TestAttempt{}).
		Select("COALESCE(MAX(percentage), 0)").
		Where("user_id = ? AND is_deleted = ?", userID, false).Row()
	if err := row.Scan(&bestScore); err != nil {
		log.Printf("Error scanning best score: %v", err)
	}

	var battlesPlayed int64
	db.Model(&models.BattleParticipant{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&battlesPlayed)

	var battlesWon int64
	db.Model(&models.BattleParticipant{}).Where("user_id = ? AND final_rank = ? AND is_deleted = ?", userID, 1, false).Count(&battlesWon)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched!", fiber.Map{
		"total_attempts":  totalAttempts,
		"best_percentage": bestScore,
		"battles_played":  battlesPlayed,
		"battles_won":     battlesWon,
	})
}
