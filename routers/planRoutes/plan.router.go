package planRoutes

import (
	planControllers "medmacs/controllers/plans"
	"medmacs/middleware"
	planValidators "medmacs/validators/plans"

	"github.com/gofiber/fiber/v2"
)

func SetupPlanRoutes(app *fiber.App) {
	planGroup := app.Group("/plans")

	planGroup.Get("/", planControllers.GetPlans)
	planGroup.Get("/mine", middleware.JWTMiddleware, planControllers.GetMyPlan)
	planGroup.Post("/redeem", planValidators.RedeemCode(), middleware.JWTMiddleware, planControllers.RedeemCode)
	planGroup.Post("/checkout", planValidators.Checkout(), middleware.JWTMiddleware, planControllers.Checkout)
}
