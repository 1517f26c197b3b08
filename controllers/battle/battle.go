package battleController

import (
	"encoding/json"
	"log"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"
	"medmacs/realtime"
	"medmacs/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

var hub *realtime.Hub

// Init wires the shared realtime hub and its persistence hook. Called once
// from main before routes are registered.
func Init(h *realtime.Hub) {
	hub = h
	hub.OnRoomFinished = persistFinishedRoom
}

// persistFinishedRoom stores the final room state: lifecycle on BattleRoom,
// ranked rows on BattleParticipant, and one TestAttempt per player so battle
// results feed the daily leaderboard.
func persistFinishedRoom(room *realtime.Room) {
	db := database.Database.Db

	now := time.Now()
	if err := db.Model(&models.BattleRoom{}).Where("id = ?", room.DBRoomID).
		Updates(map[string]interface{}{
			"status":     models.BattleFinished,
			"started_at": room.StartedAt,
			"ended_at":   now,
		}).Error; err != nil {
		log.Printf("Error closing battle room %s: %v", room.Code, err)
	}

	for _, row := range room.Scoreboard() {
		participant := models.BattleParticipant{
			BattleRoomID: room.DBRoomID,
			UserID:       row.UserID,
			Username:     row.Username,
			Score:        row.Score,
			FinalRank:    row.Rank,
		}
		if err := db.Create(&participant).Error; err != nil {
			log.Printf("Error saving battle participant %d: %v", row.UserID, err)
		}

		attempt := models.TestAttempt{
			UserID:         row.UserID,
			Username:       row.Username,
			Source:         models.AttemptSourceBattle,
			SubjectID:      room.SubjectID,
			Score:          row.Score,
			TotalQuestions: len(room.Questions),
			Percentage:     utils.Percentage(row.Score, len(room.Questions)),
			CompletedAt:    now,
		}
		if err := db.Create(&attempt).Error; err != nil {
			log.Printf("Error saving battle attempt for user %d: %v", row.UserID, err)
		}
	}
}

// CreateRoom sets up a battle room and loads its question set into the hub
func CreateRoom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		SubjectID     uint `json:"subject_id"`
		QuestionCount int  `json:"question_count"`
		MaxPlayers    int  `json:"max_players"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.QuestionCount < 1 || reqData.QuestionCount > 30 {
		reqData.QuestionCount = 10
	}
	if reqData.MaxPlayers < 2 || reqData.MaxPlayers > 8 {
		reqData.MaxPlayers = 4
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.Where("id = ? AND is_deleted = ?", reqData.SubjectID, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	// Random question draw for the room
	var questions []models.Question
	if err := db.
		Joins("JOIN chapters ON chapters.id = questions.chapter_id").
		Where("chapters.subject_id = ? AND questions.is_published = ? AND questions.is_deleted = ?", reqData.SubjectID, true, false).
		Order("RANDOM()").Limit(reqData.QuestionCount).Find(&questions).Error; err != nil {
		log.Printf("Error drawing battle questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create room!", nil)
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No questions available for this subject!", nil)
	}

	roomCode := utils.GenerateRoomCode()

	battleRoom := models.BattleRoom{
		RoomCode:      roomCode,
		HostID:        userID,
		SubjectID:     reqData.SubjectID,
		QuestionCount: len(questions),
		MaxPlayers:    reqData.MaxPlayers,
		Status:        models.BattleWaiting,
	}
	if err := db.Create(&battleRoom).Error; err != nil {
		log.Printf("Error saving battle room: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create room!", nil)
	}

	liveQuestions := make([]realtime.Question, len(questions))
	for i, q := range questions {
		var options []string
		if err := json.Unmarshal(q.Options, &options); err != nil {
			log.Printf("Bad options JSON on question %d: %v", q.ID, err)
		}
		liveQuestions[i] = realtime.Question{
			ID:      q.ID,
			Text:    q.QuestionText,
			Options: options,
			Correct: q.CorrectAnswer,
		}
	}

	hub.AddRoom(realtime.NewRoom(roomCode, battleRoom.ID, userID, reqData.SubjectID, reqData.MaxPlayers, liveQuestions))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Room created!", fiber.Map{
		"room_code":      roomCode,
		"question_count": len(questions),
		"max_players":    reqData.MaxPlayers,
	})
}

// GetRoomStatus returns the live snapshot of a room, falling back to the
// persisted record once the room has finished and left the hub
func GetRoomStatus(c *fiber.Ctx) error {
	roomCode := c.Params("room_code")

	if snap := hub.RoomSnapshot(roomCode); snap != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Room status fetched!", snap)
	}

	db := database.Database.Db

	var room models.BattleRoom
	if err := db.Where("room_code = ? AND is_deleted = ?", roomCode, false).First(&room).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Room not found!", nil)
	}

	var participants []models.BattleParticipant
	db.Where("battle_room_id = ? AND is_deleted = ?", room.ID, false).Order("final_rank asc").Find(&participants)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Room status fetched!", fiber.Map{
		"room":         room,
		"participants": participants,
	})
}

// ServeWS upgrades the connection and attaches it to the room's event loop.
// The token travels as a query param because browsers cannot set headers on
// websocket handshakes.
func ServeWS() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		roomCode := conn.Params("room_code")
		token := conn.Query("token")

		userID, err := middleware.ParseJWT(token)
		if err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": "Invalid or expired token"})
			conn.Close()
			return
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": "User not found"})
			conn.Close()
			return
		}

		hub.ServeBattle(conn, userID, user.Username, roomCode)
	})
}
