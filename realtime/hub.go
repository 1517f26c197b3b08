package realtime

import (
	"encoding/json"
	"log"
	"medmacs/models"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// envelope is a raw payload addressed to every client on a channel
type envelope struct {
	channel string
	payload []byte
}

// snapshotReq asks the hub loop for a room snapshot. Room state is only ever
// touched on the loop goroutine, so reads have to go through it too.
type snapshotReq struct {
	code  string
	reply chan *RoomSnapshot
}

// Hub owns all live battle rooms and websocket clients. Every room mutation
// flows through the events channel and is applied by the single Run loop,
// which is what makes the Room reducer safe without locks.
type Hub struct {
	rooms      map[string]*Room            // room code -> live room
	clients    map[string]map[uint]*Client // channel -> userID -> client
	register   chan *Client
	unregister chan *Client
	events     chan RoomEvent
	publishCh  chan envelope
	snapshots  chan snapshotReq
	quit       chan struct{}
	mu         sync.RWMutex // guards the rooms/clients maps themselves; room contents stay loop-only

	// OnRoomFinished is called once per room when it reaches the finished
	// phase. Set before the first room is added; used to persist results.
	OnRoomFinished func(*Room)
}

// NewHub creates the hub and starts its event loop
func NewHub() *Hub {
	h := &Hub{
		rooms:      make(map[string]*Room),
		clients:    make(map[string]map[uint]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan RoomEvent, 256),
		publishCh:  make(chan envelope, 256),
		snapshots:  make(chan snapshotReq),
		quit:       make(chan struct{}),
	}
	go h.Run()
	return h
}

// Run is the hub's main event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Channel] == nil {
				h.clients[client.Channel] = make(map[uint]*Client)
			}
			// A reconnect replaces the stale client for the same user.
			if old, ok := h.clients[client.Channel][client.UserID]; ok {
				old.SafeClose()
			}
			h.clients[client.Channel][client.UserID] = client
			h.mu.Unlock()
			log.Printf("[HUB] Client %d joined channel %s", client.UserID, client.Channel)

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.Channel][client.UserID]; ok && current == client {
				delete(h.clients[client.Channel], client.UserID)
				if len(h.clients[client.Channel]) == 0 {
					delete(h.clients, client.Channel)
				}
			}
			h.mu.Unlock()
			client.SafeClose()
			log.Printf("[HUB] Client %d left channel %s", client.UserID, client.Channel)

		case ev := <-h.events:
			h.applyRoomEvent(ev)

		case env := <-h.publishCh:
			h.fanOut(env.channel, env.payload)

		case req := <-h.snapshots:
			h.mu.RLock()
			room, ok := h.rooms[req.code]
			h.mu.RUnlock()
			if !ok {
				req.reply <- nil
				continue
			}
			snap := room.Snapshot()
			req.reply <- &snap

		case <-h.quit:
			return
		}
	}
}

// Stop shuts down the event loop
func (h *Hub) Stop() {
	close(h.quit)
}

// AddRoom registers a live room with the hub
func (h *Hub) AddRoom(room *Room) {
	h.mu.Lock()
	h.rooms[room.Code] = room
	h.mu.Unlock()
}

// RoomSnapshot returns the current snapshot of a room, or nil if unknown.
// Used by the REST status endpoint. The read runs on the hub loop so it never
// observes a room mid-mutation.
func (h *Hub) RoomSnapshot(code string) *RoomSnapshot {
	req := snapshotReq{code: code, reply: make(chan *RoomSnapshot, 1)}
	select {
	case h.snapshots <- req:
		return <-req.reply
	case <-h.quit:
		return nil
	}
}

// Submit queues a room event for the hub loop
func (h *Hub) Submit(ev RoomEvent) {
	h.events <- ev
}

// Publish fans a payload out to every client on a channel
func (h *Hub) Publish(channel string, payload []byte) {
	h.publishCh <- envelope{channel: channel, payload: payload}
}

func (h *Hub) applyRoomEvent(ev RoomEvent) {
	h.mu.RLock()
	room, ok := h.rooms[ev.RoomCode]
	h.mu.RUnlock()
	if !ok {
		return
	}

	wasFinished := room.Phase == models.BattleFinished

	if err := room.Apply(ev); err != nil {
		h.sendError(battleChannel(ev.RoomCode), ev.UserID, err)
		return
	}

	h.broadcastRoom(room)

	if !wasFinished && room.Phase == models.BattleFinished {
		if h.OnRoomFinished != nil {
			// Persisting hits the database; keep it off the hub loop.
			go h.OnRoomFinished(room)
		}
		h.mu.Lock()
		delete(h.rooms, room.Code)
		h.mu.Unlock()
	}
}

func (h *Hub) broadcastRoom(room *Room) {
	payload, err := json.Marshal(room.Snapshot())
	if err != nil {
		log.Printf("[HUB] Failed to marshal snapshot for room %s: %v", room.Code, err)
		return
	}
	h.fanOut(battleChannel(room.Code), payload)
}

func (h *Hub) fanOut(channel string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[channel] {
		if !client.SafeSend(payload) {
			log.Printf("[HUB] Dropped message for user %d on %s", client.UserID, channel)
		}
	}
}

func (h *Hub) sendError(channel string, userID uint, cause error) {
	payload, _ := json.Marshal(map[string]string{"type": "error", "message": cause.Error()})
	h.mu.RLock()
	client, ok := h.clients[channel][userID]
	h.mu.RUnlock()
	if ok {
		client.SafeSend(payload)
	}
}

func battleChannel(roomCode string) string {
	return "battle:" + roomCode
}

// ClassroomChannel names the hub channel for a classroom's chat
func ClassroomChannel(classroomID uint) string {
	return "classroom:" + itoa(classroomID)
}

func itoa(n uint) string {
	if n == 0 {
		return "0"
	}
	buf := [20]byte{}
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// clientMessage is what battle clients send over the socket
type clientMessage struct {
	Type          string `json:"type"`
	QuestionIndex int    `json:"question_index"`
	Selected      string `json:"selected"`
	TimeMs        int    `json:"time_ms"`
}

// ServeBattle runs the read loop for one battle connection. Blocks until the
// socket closes; must be called from the websocket handler goroutine.
func (h *Hub) ServeBattle(conn *websocket.Conn, userID uint, username, roomCode string) {
	client := NewClient(userID, username, battleChannel(roomCode), conn)
	h.register <- client
	go client.WritePump()

	h.Submit(RoomEvent{RoomCode: roomCode, UserID: userID, Username: username, Type: EventJoin})

	defer func() {
		h.Submit(RoomEvent{RoomCode: roomCode, UserID: userID, Type: EventLeave})
		h.unregister <- client
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case EventReady, EventAnswer, EventLeave:
			h.Submit(RoomEvent{
				RoomCode:      roomCode,
				UserID:        userID,
				Username:      username,
				Type:          msg.Type,
				QuestionIndex: msg.QuestionIndex,
				Selected:      msg.Selected,
				TimeMs:        msg.TimeMs,
			})
		}
	}
}

// ServeClassroom runs the read loop for one classroom chat connection.
// Each inbound text is handed to persistMessage, whose returned payload is
// fanned out to the whole classroom. Blocks until the socket closes.
func (h *Hub) ServeClassroom(conn *websocket.Conn, userID uint, username string, classroomID uint, persistMessage func(text string) ([]byte, error)) {
	channel := ClassroomChannel(classroomID)
	client := NewClient(userID, username, channel, conn)
	h.register <- client
	go client.WritePump()

	defer func() {
		h.unregister <- client
	}()

	for {
		var msg struct {
			Message string `json:"message"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Message == "" {
			continue
		}
		payload, err := persistMessage(msg.Message)
		if err != nil {
			log.Printf("[HUB] Failed to persist classroom message from user %d: %v", userID, err)
			continue
		}
		h.Publish(channel, payload)
	}
}
