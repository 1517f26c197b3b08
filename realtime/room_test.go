package realtime

import (
	"medmacs/models"
	"testing"
)

func twoQuestionRoom() *Room {
	questions := []Question{
		{ID: 1, Text: "Powerhouse of the cell?", Options: []string{"Mitochondria", "Ribosome"}, Correct: "Mitochondria"},
		{ID: 2, Text: "Universal donor blood group?", Options: []string{"O-", "AB+"}, Correct: "O-"},
	}
	return NewRoom("TEST01", 1, 10, 1, 4, questions)
}

func join(t *testing.T, r *Room, userID uint, username string) {
	t.Helper()
	if err := r.Apply(RoomEvent{Type: EventJoin, UserID: userID, Username: username}); err != nil {
		t.Fatalf("join for user %d failed: %v", userID, err)
	}
}

func TestRoom_StartsWhenAllReady(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	join(t, room, 20, "rival")

	if err := room.Apply(RoomEvent{Type: EventReady, UserID: 10}); err != nil {
		t.Fatalf("ready failed: %v", err)
	}
	if room.Phase != models.BattleWaiting {
		t.Errorf("Room started with only one player ready, phase %s", room.Phase)
	}

	if err := room.Apply(RoomEvent{Type: EventReady, UserID: 20}); err != nil {
		t.Fatalf("ready failed: %v", err)
	}
	if room.Phase != models.BattleActive {
		t.Errorf("Expected active phase after all ready, got %s", room.Phase)
	}
	if room.Current != 0 {
		t.Errorf("Expected first question active, got index %d", room.Current)
	}
}

func TestRoom_RejectsJoinWhenFull(t *testing.T) {
	room := twoQuestionRoom()
	room.MaxPlayers = 2
	join(t, room, 10, "a")
	join(t, room, 20, "b")

	err := room.Apply(RoomEvent{Type: EventJoin, UserID: 30, Username: "c"})
	if err != ErrRoomFull {
		t.Errorf("Expected ErrRoomFull, got %v", err)
	}
}

func TestRoom_AnswerScoringAndAdvance(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	join(t, room, 20, "rival")
	room.Apply(RoomEvent{Type: EventReady, UserID: 10})
	room.Apply(RoomEvent{Type: EventReady, UserID: 20})

	if err := room.Apply(RoomEvent{Type: EventAnswer, UserID: 10, QuestionIndex: 0, Selected: "Mitochondria"}); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if room.Current != 0 {
		t.Error("Room advanced before every connected player answered")
	}

	if err := room.Apply(RoomEvent{Type: EventAnswer, UserID: 20, QuestionIndex: 0, Selected: "Ribosome"}); err != nil {
		t.Fatalf("answer failed: %v", err)
	}
	if room.Current != 1 {
		t.Errorf("Expected advance to question 1, got %d", room.Current)
	}
	if room.Participants[10].Score != 1 {
		t.Errorf("Expected host score 1, got %d", room.Participants[10].Score)
	}
	if room.Participants[20].Score != 0 {
		t.Errorf("Expected rival score 0, got %d", room.Participants[20].Score)
	}

	// Stale answer for the previous question must be rejected.
	err := room.Apply(RoomEvent{Type: EventAnswer, UserID: 10, QuestionIndex: 0, Selected: "Ribosome"})
	if err != ErrWrongQuestion {
		t.Errorf("Expected ErrWrongQuestion for stale index, got %v", err)
	}
}

func TestRoom_DuplicateAnswerLastWriteWins(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	join(t, room, 20, "rival")
	room.Apply(RoomEvent{Type: EventReady, UserID: 10})
	room.Apply(RoomEvent{Type: EventReady, UserID: 20})

	room.Apply(RoomEvent{Type: EventAnswer, UserID: 10, QuestionIndex: 0, Selected: "Mitochondria"})
	// Second submission for the same index overwrites the first.
	room.Apply(RoomEvent{Type: EventAnswer, UserID: 10, QuestionIndex: 0, Selected: "Ribosome"})

	if room.Participants[10].Score != 0 {
		t.Errorf("Expected score 0 after overwrite with wrong answer, got %d", room.Participants[10].Score)
	}
	if room.Participants[10].Answers[0].Selected != "Ribosome" {
		t.Errorf("Expected last answer retained, got %s", room.Participants[10].Answers[0].Selected)
	}
}

func TestRoom_FinishesAfterLastQuestion(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	join(t, room, 20, "rival")
	room.Apply(RoomEvent{Type: EventReady, UserID: 10})
	room.Apply(RoomEvent{Type: EventReady, UserID: 20})

	for idx := 0; idx < 2; idx++ {
		room.Apply(RoomEvent{Type: EventAnswer, UserID: 10, QuestionIndex: idx, Selected: room.Questions[idx].Correct})
		room.Apply(RoomEvent{Type: EventAnswer, UserID: 20, QuestionIndex: idx, Selected: "wrong"})
	}

	if room.Phase != models.BattleFinished {
		t.Fatalf("Expected finished phase, got %s", room.Phase)
	}

	board := room.Scoreboard()
	if len(board) != 2 {
		t.Fatalf("Expected 2 scoreboard rows, got %d", len(board))
	}
	if board[0].UserID != 10 || board[0].Rank != 1 || board[0].Score != 2 {
		t.Errorf("Unexpected winner row: %+v", board[0])
	}
	if board[1].Rank != 2 {
		t.Errorf("Expected rank 2 for loser, got %d", board[1].Rank)
	}
}

func TestRoom_FinishesWhenAllPlayersLeave(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	join(t, room, 20, "rival")
	room.Apply(RoomEvent{Type: EventReady, UserID: 10})
	room.Apply(RoomEvent{Type: EventReady, UserID: 20})

	room.Apply(RoomEvent{Type: EventLeave, UserID: 10})
	if room.Phase != models.BattleActive {
		t.Errorf("Room ended while a player was still connected, phase %s", room.Phase)
	}

	room.Apply(RoomEvent{Type: EventLeave, UserID: 20})
	if room.Phase != models.BattleFinished {
		t.Errorf("Expected finished phase after everyone left, got %s", room.Phase)
	}
}

func TestRoom_LeaveDuringWaitingRemovesParticipant(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	room.Apply(RoomEvent{Type: EventLeave, UserID: 10})

	if len(room.Participants) != 0 {
		t.Errorf("Expected participant removed during waiting phase, got %d left", len(room.Participants))
	}
}

func TestRoom_SnapshotHidesCorrectAnswer(t *testing.T) {
	room := twoQuestionRoom()
	join(t, room, 10, "host")
	join(t, room, 20, "rival")
	room.Apply(RoomEvent{Type: EventReady, UserID: 10})
	room.Apply(RoomEvent{Type: EventReady, UserID: 20})

	snap := room.Snapshot()
	if snap.Question == nil {
		t.Fatal("Expected active question in snapshot")
	}
	if snap.Question.Text != "Powerhouse of the cell?" {
		t.Errorf("Unexpected question text: %s", snap.Question.Text)
	}
	// QuestionView carries text and options only; there is no field that
	// could leak the correct answer.
	if len(snap.Question.Options) != 2 {
		t.Errorf("Expected 2 options, got %d", len(snap.Question.Options))
	}
}
