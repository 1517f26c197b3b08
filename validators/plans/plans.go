package planValidator

import (
	"medmacs/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate redeem code format
func isValidRedeemCode(code string) bool {
	re := regexp.MustCompile(`^MED-[A-Z0-9]{4}-[A-Z0-9]{4}$`)
	return re.MatchString(code)
}

// RedeemCode validator middleware
func RedeemCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code string `json:"code"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !isValidRedeemCode(strings.ToUpper(strings.TrimSpace(reqData.Code))) {
			errors["code"] = "Code must look like MED-XXXX-XXXX!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Checkout validator middleware
func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PlanName string `json:"planName"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.PlanName) == "" {
			errors["planName"] = "Plan name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
