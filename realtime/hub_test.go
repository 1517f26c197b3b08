package realtime

import (
	"testing"
)

func TestHub_SnapshotSafeWhileEventsFlow(t *testing.T) {
	h := NewHub()
	defer h.Stop()

	h.AddRoom(twoQuestionRoom())

	// Poll the REST snapshot path while join events stream through the loop,
	// the way a status-polling client overlaps with players connecting.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.RoomSnapshot("TEST01")
		}
	}()

	for i := 0; i < 200; i++ {
		h.Submit(RoomEvent{
			RoomCode: "TEST01",
			UserID:   uint(i%4) + 1,
			Username: "player",
			Type:     EventJoin,
		})
	}
	<-done

	snap := h.RoomSnapshot("TEST01")
	if snap == nil {
		t.Fatal("Expected a snapshot for a live room")
	}
	if len(snap.Participants) != 4 {
		t.Errorf("Expected 4 participants after joins, got %d", len(snap.Participants))
	}
}

func TestHub_SnapshotUnknownRoom(t *testing.T) {
	h := NewHub()
	defer h.Stop()

	if snap := h.RoomSnapshot("NOSUCH"); snap != nil {
		t.Errorf("Expected nil snapshot for unknown room, got %+v", snap)
	}
}
