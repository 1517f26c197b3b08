package classroomRoutes

import (
	classroomControllers "medmacs/controllers/classroom"
	"medmacs/middleware"
	classroomValidators "medmacs/validators/classroom"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func SetupClassroomRoutes(app *fiber.App) {
	classroomGroup := app.Group("/classrooms")

	classroomGroup.Post("/", classroomValidators.CreateClassroom(), middleware.JWTMiddleware, classroomControllers.CreateClassroom)
	classroomGroup.Post("/join", classroomValidators.JoinClassroom(), middleware.JWTMiddleware, classroomControllers.JoinClassroom)
	classroomGroup.Get("/", middleware.JWTMiddleware, classroomControllers.GetMyClassrooms)
	classroomGroup.Get("/:classroom_id/members", middleware.JWTMiddleware, classroomControllers.GetMembers)
	classroomGroup.Get("/:classroom_id/messages", middleware.JWTMiddleware, classroomControllers.GetMessages)
	classroomGroup.Post("/:classroom_id/lectures", classroomValidators.ScheduleLecture(), middleware.JWTMiddleware, classroomControllers.ScheduleLecture)
	classroomGroup.Get("/:classroom_id/lectures", middleware.JWTMiddleware, classroomControllers.GetLectures)
	classroomGroup.Get("/:classroom_id/lectures/:lecture_id/token", middleware.JWTMiddleware, classroomControllers.GetMeetingToken)

	// Reject plain HTTP requests before the websocket handler runs.
	classroomGroup.Use("/:classroom_id/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	classroomGroup.Get("/:classroom_id/ws", classroomControllers.ServeChatWS())
}
