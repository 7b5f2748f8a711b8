package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lakshmikanth1222/color-wars/game/engine"
	"github.com/lakshmikanth1222/color-wars/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Chat messages longer than this are truncated.
	maxChatLen = 200
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// ClientMessage is an inbound intent from a player.
type ClientMessage struct {
	Type        string `json:"type"`
	Room        string `json:"room,omitempty"`
	Username    string `json:"username,omitempty"`
	PlayerCount int    `json:"player_count,omitempty"`
	R           *int   `json:"r,omitempty"`
	C           *int   `json:"c,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Event is an outbound message to one or more players.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// send is written by both the hub and the client's own readPump,
	// so the closed flag gates every use.
	sendMu     sync.Mutex
	send       chan []byte
	sendClosed bool

	// id doubles as the player's connection identity in the game service.
	id string

	// Set on a successful join; only the client's readPump touches them.
	roomID string
	name   string
	color  engine.Color
}

// Hub maintains the set of active clients grouped by room and routes
// their intents to the game service.
type Hub struct {
	svc service.GameService

	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

// NewHub creates a new WebSocket hub
func NewHub(svc service.GameService) *Hub {
	return &Hub{
		svc:   svc,
		rooms: make(map[string]map[*Client]bool),
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
	}
	ConnectedClients.Inc()

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// addClient registers a client under its room.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.roomID] == nil {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true

	log.Printf("Client %s registered for room %s (total clients: %d)",
		client.name, client.roomID, len(h.rooms[client.roomID]))
}

// removeClient detaches a client from its room. The send channel is
// closed here exactly once; callers must not close it themselves.
func (h *Hub) removeClient(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeClientLocked(client, roomID)
}

func (h *Hub) removeClientLocked(client *Client, roomID string) {
	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	client.closeSend()

	// Clean up empty rooms
	if len(clients) == 0 {
		delete(h.rooms, roomID)
	}

	log.Printf("Client %s unregistered from room %s (remaining clients: %d)",
		client.name, roomID, len(clients))
}

// BroadcastToRoom sends an event to every client in a room.
func (h *Hub) BroadcastToRoom(roomID string, event string, data interface{}) {
	payload, err := json.Marshal(&Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[roomID] {
		if !client.enqueue(payload) {
			// Client's send channel is full, drop it
			h.removeClientLocked(client, roomID)
		}
	}
}

// RoomClientCount reports how many clients are attached to a room.
func (h *Hub) RoomClientCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// ClientCount reports the total number of attached clients across all rooms.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for _, clients := range h.rooms {
		total += len(clients)
	}
	return total
}

// enqueue offers a payload to the client's outbound queue. It reports
// false when the queue is full; a closed queue swallows the payload.
func (c *Client) enqueue(payload []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.sendClosed {
		return true
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}

// sendEvent delivers an event to this client only.
func (c *Client) sendEvent(event string, data interface{}) {
	payload, err := json.Marshal(&Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal client message: %v", err)
		return
	}
	c.enqueue(payload)
}

func (c *Client) sendError(code service.RejectCode, msg string) {
	c.sendEvent("error", map[string]interface{}{
		"code": code,
		"msg":  msg,
	})
}

// readPump pumps messages from the WebSocket connection into the game service
func (c *Client) readPump() {
	defer func() {
		c.leaveRoom()
		c.closeSend()
		c.conn.Close()
		ConnectedClients.Dec()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError(service.RejectInvalidInput, "Malformed message")
			continue
		}

		switch msg.Type {
		case "join":
			c.handleJoin(&msg)
		case "move":
			c.handleMove(&msg)
		case "chat":
			c.handleChat(&msg)
		case "leave":
			c.leaveRoom()
		default:
			c.sendError(service.RejectInvalidInput, "Unknown message type")
		}
	}
}

func (c *Client) handleJoin(msg *ClientMessage) {
	if c.roomID != "" {
		c.sendError(service.RejectInvalidInput, "Already in a room")
		return
	}

	res, err := c.hub.svc.CreateOrJoin(context.Background(), msg.Room, c.id, msg.Username, msg.PlayerCount)
	if err != nil {
		c.reportReject(err)
		return
	}

	c.roomID = strings.ToLower(strings.TrimSpace(msg.Room))
	c.name = strings.TrimSpace(msg.Username)
	c.color = res.Color

	// The joiner is not attached yet, so the announcement reaches the
	// existing members only. The state refresh that follows attachment
	// reaches the whole room, joiner included.
	c.hub.BroadcastToRoom(c.roomID, "player_joined", map[string]interface{}{
		"username": c.name,
	})
	c.sendEvent("init_player", map[string]interface{}{
		"color": c.color,
		"id":    c.id,
	})
	c.hub.addClient(c)
	c.hub.BroadcastToRoom(c.roomID, "update_state", map[string]interface{}{
		"state": res.State,
	})
}

func (c *Client) handleMove(msg *ClientMessage) {
	if c.roomID == "" {
		c.sendError(service.RejectInvalidInput, "Join a room first")
		return
	}
	if msg.R == nil || msg.C == nil {
		MovesTotal.WithLabelValues(string(service.RejectInvalidInput)).Inc()
		c.sendError(service.RejectInvalidInput, "Invalid coordinates")
		return
	}

	res, err := c.hub.svc.SubmitMove(context.Background(), c.roomID, c.id, *msg.R, *msg.C)
	if err != nil {
		var rej *service.Reject
		if errors.As(err, &rej) {
			MovesTotal.WithLabelValues(string(rej.Code)).Inc()
		}
		c.reportReject(err)
		return
	}

	if res.GameOver && !res.FreshWin {
		// Terminal re-answer: the board did not change, so only the
		// requester hears it and no win is counted.
		MovesTotal.WithLabelValues("terminal").Inc()
		c.sendEvent("game_over", map[string]interface{}{
			"winner": res.Winner,
			"state":  res.State,
		})
		return
	}

	MovesTotal.WithLabelValues("applied").Inc()
	CascadeFramesTotal.Add(float64(res.Cascades))

	c.hub.BroadcastToRoom(c.roomID, "update_state", map[string]interface{}{
		"state": res.State,
	})
	if res.GameOver {
		GamesWonTotal.Inc()
		c.hub.BroadcastToRoom(c.roomID, "game_over", map[string]interface{}{
			"winner": res.Winner,
			"state":  res.State,
		})
	}
}

func (c *Client) handleChat(msg *ClientMessage) {
	if c.roomID == "" {
		c.sendError(service.RejectInvalidInput, "Join a room first")
		return
	}

	text := strings.TrimSpace(msg.Message)
	if text == "" {
		return
	}
	if runes := []rune(text); len(runes) > maxChatLen {
		text = string(runes[:maxChatLen])
	}

	c.hub.BroadcastToRoom(c.roomID, "chat_message", map[string]interface{}{
		"username":  c.name,
		"message":   text,
		"color":     c.color,
		"timestamp": time.Now().Format("15:04"),
	})
}

// leaveRoom unseats the player and tells the remaining room members.
// Safe to call when the client never joined, or twice.
func (c *Client) leaveRoom() {
	if c.roomID == "" {
		return
	}
	roomID := c.roomID
	c.roomID = ""

	res, err := c.hub.svc.Leave(context.Background(), roomID, c.id)
	c.hub.removeClient(c, roomID)
	if err != nil {
		log.Printf("Leave failed for %s in room %s: %v", c.name, roomID, err)
		return
	}
	if res.Removed {
		c.hub.BroadcastToRoom(roomID, "player_left", map[string]interface{}{
			"username": c.name,
		})
		if res.State != nil {
			c.hub.BroadcastToRoom(roomID, "update_state", map[string]interface{}{
				"state": res.State,
			})
		}
	}
}

func (c *Client) reportReject(err error) {
	var rej *service.Reject
	if errors.As(err, &rej) {
		c.sendError(rej.Code, rej.Message)
		return
	}
	log.Printf("Game service error: %v", err)
	c.sendError(service.RejectInvalidInput, "Internal error")
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
