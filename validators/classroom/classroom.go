package classroomValidator

import (
	"medmacs/middleware"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateClassroom validator middleware
func CreateClassroom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Classroom name must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// JoinClassroom validator middleware
func JoinClassroom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			InviteCode string `json:"invite_code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.InviteCode) == "" {
			errors["invite_code"] = "Invite code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ScheduleLecture validator middleware
func ScheduleLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string    `json:"title"`
			ScheduledAt time.Time `json:"scheduled_at"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.ScheduledAt.IsZero() {
			errors["scheduled_at"] = "Scheduled time is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
