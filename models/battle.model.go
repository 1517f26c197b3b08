package models

import (
	"time"

	"gorm.io/gorm"
)

// Battle room phases
const (
	BattleWaiting  = "WAITING"
	BattleActive   = "ACTIVE"
	BattleFinished = "FINISHED"
)

// BattleRoom is the persisted record of a realtime battle quiz. The live
// state machine runs in the realtime hub; this row tracks lifecycle and
// final outcome so battles feed the daily leaderboard.
type BattleRoom struct {
	gorm.Model
	RoomCode      string `gorm:"unique;not null"` // short join code shared by the host
	HostID        uint   `gorm:"index;not null"`
	SubjectID     uint   `gorm:"index"`
	QuestionCount int    `gorm:"default:10"`
	MaxPlayers    int    `gorm:"default:4"`
	Status        string `gorm:"default:'WAITING'"` // WAITING, ACTIVE, FINISHED
	StartedAt     *time.Time
	EndedAt       *time.Time
	IsDeleted     bool `gorm:"default:false"`
}

// BattleParticipant is one player's membership and final score in a room
type BattleParticipant struct {
	gorm.Model
	BattleRoomID uint   `gorm:"index;not null"`
	UserID       uint   `gorm:"index;not null"`
	Username     string // denormalized for scoreboard reads
	Score        int    `gorm:"default:0"`
	FinalRank    int    `gorm:"default:0"`
	IsDeleted    bool   `gorm:"default:false"`
}
