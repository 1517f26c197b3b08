package battleRoutes

import (
	battleControllers "medmacs/controllers/battle"
	"medmacs/middleware"
	battleValidators "medmacs/validators/battle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func SetupBattleRoutes(app *fiber.App) {
	battleGroup := app.Group("/battle")

	battleGroup.Post("/rooms", battleValidators.CreateRoom(), middleware.JWTMiddleware, battleControllers.CreateRoom)
	battleGroup.Get("/rooms/:room_code", middleware.JWTMiddleware, battleControllers.GetRoomStatus)

	// Reject plain HTTP requests before the websocket handler runs.
	battleGroup.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	battleGroup.Get("/ws/:room_code", battleControllers.ServeWS())
}
