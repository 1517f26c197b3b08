package classroomController

import (
	"encoding/json"
	"log"
	"medmacs/config"
	"medmacs/database"
	"medmacs/middleware"
	"medmacs/models"
	"medmacs/realtime"
	"medmacs/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var hub *realtime.Hub

// Init wires the shared realtime hub. Called once from main.
func Init(h *realtime.Hub) {
	hub = h
}

// CreateClassroom opens a new classroom with the caller as host
func CreateClassroom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name is required!", nil)
	}

	db := database.Database.Db

	classroom := models.Classroom{
		Name:        reqData.Name,
		Description: reqData.Description,
		HostID:      userID,
		InviteCode:  utils.GenerateInviteCode(),
	}
	if err := db.Create(&classroom).Error; err != nil {
		log.Printf("Error creating classroom: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create classroom!", nil)
	}

	member := models.ClassroomMember{
		ClassroomID: classroom.ID,
		UserID:      userID,
		Role:        "HOST",
	}
	if err := db.Create(&member).Error; err != nil {
		log.Printf("Error adding host membership: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Classroom created!", classroom)
}

// JoinClassroom adds the caller as a student via invite code
func JoinClassroom(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		InviteCode string `json:"invite_code"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var classroom models.Classroom
	if err := db.Where("invite_code = ? AND is_deleted = ?", reqData.InviteCode, false).First(&classroom).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid invite code!", nil)
	}

	var existing models.ClassroomMember
	err := db.Where("classroom_id = ? AND user_id = ? AND is_deleted = ?", classroom.ID, userID, false).First(&existing).Error
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already a member of this classroom!", nil)
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Error checking membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join classroom!", nil)
	}

	member := models.ClassroomMember{
		ClassroomID: classroom.ID,
		UserID:      userID,
	}
	if err := db.Create(&member).Error; err != nil {
		log.Printf("Error joining classroom: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to join classroom!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Joined classroom!", classroom)
}

// GetMyClassrooms lists classrooms the caller belongs to
func GetMyClassrooms(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var memberships []models.ClassroomMember
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).Find(&memberships).Error; err != nil {
		log.Printf("Error fetching memberships: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classrooms!", nil)
	}

	classroomIDs := make([]uint, len(memberships))
	for i, m := range memberships {
		classroomIDs[i] = m.ClassroomID
	}

	var classrooms []models.Classroom
	if len(classroomIDs) > 0 {
		db.Where("id IN ? AND is_deleted = ?", classroomIDs, false).Find(&classrooms)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classrooms fetched!", classrooms)
}

// getMembership loads the caller's membership row
func getMembership(classroomID int, userID uint) (*models.ClassroomMember, error) {
	var member models.ClassroomMember
	if err := database.Database.Db.
		Where("classroom_id = ? AND user_id = ? AND is_deleted = ?", classroomID, userID, false).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMembers lists a classroom's members
func GetMembers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classroomID, err := c.ParamsInt("classroom_id")
	if err != nil || classroomID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid classroom id!", nil)
	}

	if _, err := getMembership(classroomID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this classroom!", nil)
	}

	db := database.Database.Db

	var members []models.ClassroomMember
	if err := db.Where("classroom_id = ? AND is_deleted = ?", classroomID, false).Find(&members).Error; err != nil {
		log.Printf("Error fetching members: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch members!", nil)
	}

	userIDs := make([]uint, len(members))
	for i, m := range members {
		userIDs[i] = m.UserID
	}
	var users []models.User
	db.Select("id", "username", "name", "profile_image").Where("id IN ?", userIDs).Find(&users)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Members fetched!", fiber.Map{
		"members": members,
		"users":   users,
	})
}

// GetMessages pages through a classroom's chat history, newest first
func GetMessages(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classroomID, err := c.ParamsInt("classroom_id")
	if err != nil || classroomID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid classroom id!", nil)
	}

	if _, err := getMembership(classroomID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this classroom!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)

	var messages []models.ClassroomMessage
	if err := database.Database.Db.
		Where("classroom_id = ? AND is_deleted = ?", classroomID, false).
		Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&messages).Error; err != nil {
		log.Printf("Error fetching messages: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched!", messages)
}

// ScheduleLecture lets the host schedule a video lecture
func ScheduleLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classroomID, err := c.ParamsInt("classroom_id")
	if err != nil || classroomID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid classroom id!", nil)
	}

	member, err := getMembership(classroomID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this classroom!", nil)
	}
	if member.Role != "HOST" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the host can schedule lectures!", nil)
	}

	reqData := new(struct {
		Title       string    `json:"title"`
		MeetingID   string    `json:"meeting_id"`
		ScheduledAt time.Time `json:"scheduled_at"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}
	if reqData.MeetingID == "" {
		reqData.MeetingID = utils.GenerateInviteCode()
	}

	lecture := models.Lecture{
		ClassroomID: uint(classroomID),
		Title:       reqData.Title,
		MeetingID:   reqData.MeetingID,
		ScheduledAt: reqData.ScheduledAt,
	}
	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		log.Printf("Error scheduling lecture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to schedule lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture scheduled!", lecture)
}

// GetLectures lists a classroom's lectures
func GetLectures(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classroomID, err := c.ParamsInt("classroom_id")
	if err != nil || classroomID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid classroom id!", nil)
	}

	if _, err := getMembership(classroomID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this classroom!", nil)
	}

	var lectures []models.Lecture
	if err := database.Database.Db.
		Where("classroom_id = ? AND is_deleted = ?", classroomID, false).
		Order("scheduled_at desc").Find(&lectures).Error; err != nil {
		log.Printf("Error fetching lectures: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched!", lectures)
}

// GetMeetingToken signs a short-lived token for the external video SDK.
// The meeting itself (signaling, media) is fully delegated to that SDK.
func GetMeetingToken(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	classroomID, err := c.ParamsInt("classroom_id")
	if err != nil || classroomID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid classroom id!", nil)
	}

	lectureID, err := c.ParamsInt("lecture_id")
	if err != nil || lectureID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
	}

	if _, err := getMembership(classroomID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not a member of this classroom!", nil)
	}

	db := database.Database.Db

	var lecture models.Lecture
	if err := db.Where("id = ? AND classroom_id = ? AND is_deleted = ?", lectureID, classroomID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	claims := jwt.MapClaims{
		"meetingId":   lecture.MeetingID,
		"displayName": user.Name,
		"userId":      userID,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(2 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.MeetingTokenKey))
	if err != nil {
		log.Printf("Error signing meeting token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create meeting token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Meeting token created!", fiber.Map{
		"meeting_id": lecture.MeetingID,
		"token":      signed,
	})
}

// ServeChatWS upgrades the connection and streams classroom chat. Messages
// are persisted first, then fanned out to every connected member.
func ServeChatWS() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		// websocket.Conn only exposes string params
		classroomID, err := strconv.Atoi(conn.Params("classroom_id"))
		if err != nil || classroomID < 1 {
			conn.Close()
			return
		}
		token := conn.Query("token")

		userID, err := middleware.ParseJWT(token)
		if err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": "Invalid or expired token"})
			conn.Close()
			return
		}

		db := database.Database.Db

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": "User not found"})
			conn.Close()
			return
		}

		var member models.ClassroomMember
		if err := db.Where("classroom_id = ? AND user_id = ? AND is_deleted = ?", classroomID, userID, false).First(&member).Error; err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": "Not a member of this classroom"})
			conn.Close()
			return
		}

		hub.ServeClassroom(conn, userID, user.Username, uint(classroomID), func(text string) ([]byte, error) {
			msg := models.ClassroomMessage{
				ClassroomID: uint(classroomID),
				SenderID:    userID,
				SenderName:  user.Username,
				Message:     text,
			}
			if err := db.Create(&msg).Error; err != nil {
				return nil, err
			}
			return json.Marshal(fiber.Map{
				"type":    "chat_message",
				"message": msg,
			})
		})
	})
}
