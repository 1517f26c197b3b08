package classroomController

import "testing"

func TestServeChatWS_BuildsHandler(t *testing.T) {
	if ServeChatWS() == nil {
		t.Fatal("Expected a websocket handler, got nil")
	}
}
