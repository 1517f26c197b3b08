package planController

import (
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"
	"medmacs/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetPlans lists published plans for the pricing page
func GetPlans(c *fiber.Ctx) error {
	var plans []models.Plan
	if err := database.Database.Db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("price asc").Find(&plans).Error; err != nil {
		log.Printf("Error fetching plans: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", plans)
}

// GetMyPlan returns the caller's current plan, if any
func GetMyPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var userPlan models.UserPlan
	err := database.Database.Db.
		Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.PlanActive, false).
		Preload("Plan").Order("expires_at desc").First(&userPlan).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No active plan.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan fetched!", userPlan)
}

// activatePlan starts or extends a user's plan window
func activatePlan(userID, planID uint, durationDays int) (*models.UserPlan, error) {
	db := database.Database.Db

	start := time.Now()

	// Extend from the current expiry if a plan is already running
	var current models.UserPlan
	if err := db.Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.PlanActive, false).
		Order("expires_at desc").First(&current).Error; err == nil {
		if current.ExpiresAt != nil && current.ExpiresAt.After(start) {
			start = *current.ExpiresAt
		}
	}

	expiresAt := start.AddDate(0, 0, durationDays)

	userPlan := models.UserPlan{
		UserID:    userID,
		PlanID:    planID,
		Status:    models.PlanActive,
		ExpiresAt: &expiresAt,
	}
	if err := db.Create(&userPlan).Error; err != nil {
		return nil, err
	}
	return &userPlan, nil
}

// RedeemCode exchanges a single-use code for plan access
func RedeemCode(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Code string `json:"code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	// Codes are issued upper-case
	reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
	if reqData.Code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Code is required!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var code models.RedeemCode
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&code).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid redeem code!", nil)
	}

	if code.IsUsed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This code has already been used!", nil)
	}

	var plan models.Plan
	if err := db.Where("id = ? AND is_deleted = ?", code.PlanID, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan for this code no longer exists!", nil)
	}

	userPlan, err := activatePlan(userID, plan.ID, code.DurationDays)
	if err != nil {
		log.Printf("Error activating plan via redeem code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to redeem code!", nil)
	}

	now := time.Now()
	code.IsUsed = true
	code.UsedByUserID = userID
	code.UsedAt = &now
	if err := db.Save(&code).Error; err != nil {
		log.Printf("Error marking redeem code used: %v", err)
	}

	utils.SendPlanActivatedEmail(user.Email, user.Name, plan.Name, *userPlan.ExpiresAt)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Code redeemed! Plan activated.", fiber.Map{
		"plan":       plan,
		"expires_at": userPlan.ExpiresAt,
	})
}

// Checkout creates a hosted payment session and returns its redirect URL.
// Success/failure webhooks are handled by the payment provider; the order
// stays PENDING here.
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		PlanName string `json:"planName"`
		Duration int    `json:"duration"`
		Currency string `json:"currency"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var plan models.Plan
	if err := db.Where("name = ? AND is_published = ? AND is_deleted = ?", reqData.PlanName, true, false).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	if reqData.Duration < 1 {
		reqData.Duration = plan.DurationDays
	}
	if reqData.Currency == "" {
		reqData.Currency = plan.Currency
	}

	checkoutUrl, err := utils.CreateCheckoutSession(plan.Name, reqData.Duration, reqData.Currency, userID, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create checkout session!", nil)
	}

	order := models.PaymentOrder{
		UserID:      userID,
		PlanName:    plan.Name,
		Duration:    reqData.Duration,
		Currency:    reqData.Currency,
		Amount:      plan.Price,
		CheckoutUrl: checkoutUrl,
	}
	if err := db.Create(&order).Error; err != nil {
		log.Printf("Error saving payment order: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"url": checkoutUrl,
	})
}
