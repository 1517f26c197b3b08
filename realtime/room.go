package realtime

import (
	"errors"
	"medmacs/models"
	"medmacs/utils"
	"time"
)

// Room event types (client -> hub)
const (
	EventJoin   = "join"
	EventReady  = "ready"
	EventAnswer = "answer"
	EventLeave  = "leave"
)

// RoomEvent is a single input to a room's state machine. All events for a
// room are applied sequentially by the hub loop, so duplicate answers are
// naturally last-write-wins.
type RoomEvent struct {
	RoomCode      string `json:"room_code"`
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	Type          string `json:"type"`
	QuestionIndex int    `json:"question_index"`
	Selected      string `json:"selected"`
	TimeMs        int    `json:"time_ms"`
}

// Question is one quiz question loaded into a live room. Correct never
// leaves the server; snapshots carry text and options only.
type Question struct {
	ID      uint
	Text    string
	Options []string
	Correct string
}

// Answer is a participant's latest answer for one question index
type Answer struct {
	Selected string
	TimeMs   int
	Correct  bool
}

// Participant is one player's live state inside a room
type Participant struct {
	UserID    uint
	Username  string
	Ready     bool
	Connected bool
	Score     int
	Answers   map[int]Answer // question index -> last submitted answer
}

var (
	ErrRoomFull       = errors.New("room is full")
	ErrRoomNotWaiting = errors.New("room is not accepting players")
	ErrRoomNotActive  = errors.New("room is not active")
	ErrNotParticipant = errors.New("user is not in this room")
	ErrWrongQuestion  = errors.New("answer is not for the current question")
)

// Room is the live state machine of one battle quiz. Apply is the only
// mutation path; the hub serializes calls so Room needs no locking of its
// own and the transitions stay unit-testable without a socket.
type Room struct {
	Code         string
	DBRoomID     uint
	HostID       uint
	SubjectID    uint
	MaxPlayers   int
	Phase        string // models.BattleWaiting / BattleActive / BattleFinished
	Questions    []Question
	Current      int // index of the question being played
	Participants map[uint]*Participant
	StartedAt    time.Time
	EndedAt      time.Time
}

// NewRoom builds a waiting room around a loaded question set
func NewRoom(code string, dbRoomID, hostID, subjectID uint, maxPlayers int, questions []Question) *Room {
	if maxPlayers < 2 {
		maxPlayers = 2
	}
	return &Room{
		Code:         code,
		DBRoomID:     dbRoomID,
		HostID:       hostID,
		SubjectID:    subjectID,
		MaxPlayers:   maxPlayers,
		Phase:        models.BattleWaiting,
		Questions:    questions,
		Participants: make(map[uint]*Participant),
	}
}

// Apply advances the room state machine by one event
func (r *Room) Apply(ev RoomEvent) error {
	switch ev.Type {
	case EventJoin:
		return r.applyJoin(ev)
	case EventReady:
		return r.applyReady(ev)
	case EventAnswer:
		return r.applyAnswer(ev)
	case EventLeave:
		return r.applyLeave(ev)
	default:
		return errors.New("unknown event type: " + ev.Type)
	}
}

func (r *Room) applyJoin(ev RoomEvent) error {
	if existing, ok := r.Participants[ev.UserID]; ok {
		// Rejoin after a dropped connection is allowed in any phase.
		existing.Connected = true
		return nil
	}
	if r.Phase != models.BattleWaiting {
		return ErrRoomNotWaiting
	}
	if len(r.Participants) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.Participants[ev.UserID] = &Participant{
		UserID:    ev.UserID,
		Username:  ev.Username,
		Connected: true,
		Answers:   make(map[int]Answer),
	}
	return nil
}

func (r *Room) applyReady(ev RoomEvent) error {
	if r.Phase != models.BattleWaiting {
		return ErrRoomNotWaiting
	}
	p, ok := r.Participants[ev.UserID]
	if !ok {
		return ErrNotParticipant
	}
	p.Ready = true

	if len(r.Participants) >= 2 && r.allReady() {
		r.Phase = models.BattleActive
		r.Current = 0
		r.StartedAt = time.Now()
	}
	return nil
}

func (r *Room) applyAnswer(ev RoomEvent) error {
	if r.Phase != models.BattleActive {
		return ErrRoomNotActive
	}
	p, ok := r.Participants[ev.UserID]
	if !ok {
		return ErrNotParticipant
	}
	if ev.QuestionIndex != r.Current {
		return ErrWrongQuestion
	}

	question := r.Questions[r.Current]
	// Overwrite any earlier answer for this index: last write wins.
	p.Answers[ev.QuestionIndex] = Answer{
		Selected: ev.Selected,
		TimeMs:   ev.TimeMs,
		Correct:  utils.ClassifyAnswer(ev.Selected, question.Correct) == models.AnswerCorrect,
	}
	p.Score = recountScore(p)

	if r.allConnectedAnswered() {
		r.advance()
	}
	return nil
}

func (r *Room) applyLeave(ev RoomEvent) error {
	p, ok := r.Participants[ev.UserID]
	if !ok {
		return ErrNotParticipant
	}
	p.Connected = false

	if r.Phase == models.BattleWaiting {
		delete(r.Participants, ev.UserID)
		return nil
	}
	if r.Phase == models.BattleActive {
		if r.connectedCount() == 0 {
			r.finish()
		} else if r.allConnectedAnswered() {
			// The leaver was the holdout for this question.
			r.advance()
		}
	}
	return nil
}

// advance moves to the next question, finishing the game past the last one
func (r *Room) advance() {
	r.Current++
	if r.Current >= len(r.Questions) {
		r.finish()
	}
}

func (r *Room) finish() {
	r.Phase = models.BattleFinished
	r.EndedAt = time.Now()
}

func (r *Room) allReady() bool {
	for _, p := range r.Participants {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (r *Room) connectedCount() int {
	n := 0
	for _, p := range r.Participants {
		if p.Connected {
			n++
		}
	}
	return n
}

func (r *Room) allConnectedAnswered() bool {
	for _, p := range r.Participants {
		if !p.Connected {
			continue
		}
		if _, ok := p.Answers[r.Current]; !ok {
			return false
		}
	}
	return r.connectedCount() > 0
}

func recountScore(p *Participant) int {
	score := 0
	for _, a := range p.Answers {
		if a.Correct {
			score++
		}
	}
	return score
}

// ScoreboardRow is one dense-ranked row of the final battle scoreboard
type ScoreboardRow struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Scoreboard returns all participants ranked the same way as the daily
// leaderboard: score descending with dense tie ranks.
func (r *Room) Scoreboard() []ScoreboardRow {
	entries := make([]models.TestAttempt, 0, len(r.Participants))
	for _, p := range r.Participants {
		entries = append(entries, models.TestAttempt{
			UserID:   p.UserID,
			Username: p.Username,
			Score:    p.Score,
		})
	}

	utils.SortLeaderboard(entries, utils.SortByScore)
	ranks := utils.DenseRanks(entries)

	rows := make([]ScoreboardRow, len(entries))
	for i, entry := range entries {
		rows[i] = ScoreboardRow{
			Rank:     ranks[i],
			UserID:   entry.UserID,
			Username: entry.Username,
			Score:    entry.Score,
		}
	}
	return rows
}

// snapshot types pushed to clients

type ParticipantView struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Ready     bool   `json:"ready"`
	Connected bool   `json:"connected"`
	Score     int    `json:"score"`
}

type QuestionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// RoomSnapshot is the state pushed to every client after each transition.
// The correct answer is deliberately absent.
type RoomSnapshot struct {
	Type         string            `json:"type"` // always "room_state"
	Code         string            `json:"code"`
	Phase        string            `json:"phase"`
	Question     *QuestionView     `json:"question,omitempty"`
	Participants []ParticipantView `json:"participants"`
	Scoreboard   []ScoreboardRow   `json:"scoreboard,omitempty"`
}

// Snapshot builds the client-facing view of the room
func (r *Room) Snapshot() RoomSnapshot {
	snap := RoomSnapshot{
		Type:  "room_state",
		Code:  r.Code,
		Phase: r.Phase,
	}

	for _, p := range r.Participants {
		snap.Participants = append(snap.Participants, ParticipantView{
			UserID:    p.UserID,
			Username:  p.Username,
			Ready:     p.Ready,
			Connected: p.Connected,
			Score:     p.Score,
		})
	}

	if r.Phase == models.BattleActive && r.Current < len(r.Questions) {
		q := r.Questions[r.Current]
		snap.Question = &QuestionView{Index: r.Current, Text: q.Text, Options: q.Options}
	}
	if r.Phase == models.BattleFinished {
		snap.Scoreboard = r.Scoreboard()
	}
	return snap
}
