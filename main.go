package main

import (
	"medmacs/config"
	battleController "medmacs/controllers/battle"
	classroomController "medmacs/controllers/classroom"
	"medmacs/database"
	"medmacs/realtime"
	adminRoutes "medmacs/routers/adminRoutes"
	aiRoutes "medmacs/routers/aiRoutes"
	authRoutes "medmacs/routers/authRoutes"
	battleRoutes "medmacs/routers/battleRoutes"
	classroomRoutes "medmacs/routers/classroomRoutes"
	planRoutes "medmacs/routers/planRoutes"
	questionRoutes "medmacs/routers/questionRoutes"
	testRoutes "medmacs/routers/testRoutes"
	userRoutes "medmacs/routers/userRoutes"
	"medmacs/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Single hub serves battle rooms and classroom chat channels
	hub := realtime.NewHub()
	battleController.Init(hub)
	classroomController.Init(hub)

	utils.InitializePlanScheduler()

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	testRoutes.SetupTestRoutes(app)
	aiRoutes.SetupAIRoutes(app)
	battleRoutes.SetupBattleRoutes(app)
	classroomRoutes.SetupClassroomRoutes(app)
	planRoutes.SetupPlanRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
