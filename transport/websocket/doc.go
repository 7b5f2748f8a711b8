// Package websocket provides the real-time transport for Color Wars.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Room-aware WebSocket connections
//   - State broadcasting after every applied move
//   - Connection lifecycle management
//   - In-room chat delivery
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub groups all
// WebSocket connections by room. Each client connection is handled by a
// pair of goroutines that manage reading, writing, and cleanup. Inbound
// intents are dispatched to the game service; per-room serialization
// happens there, so the hub only guards its own membership map.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Incoming: {type: "join", room: "r1", username: "alice", player_count: 2}
//     {type: "move", r: 0, c: 0}
//     {type: "chat", message: "hi"}
//     {type: "leave"}
//   - Outgoing: {event: "...", data: {...}} where event is one of
//     init_player, player_joined, update_state, game_over, chat_message,
//     player_left, or error.
//
// Rejections go to the originating client only, as an error event with a
// code and a message. Applied moves are broadcast to the whole room.
//
// Usage:
//
//	hub := websocket.NewHub(gameService)
//	http.HandleFunc("/ws", hub.ServeWS)
//
// Connection Lifecycle:
//
// 1. Client connects and sends a join intent
// 2. On success the other members receive player_joined, the client
//    receives init_player, and the whole room receives update_state
// 3. Client sends moves and chat, receives room broadcasts
// 4. Disconnection unseats the player; the room receives player_left
//    followed by the refreshed update_state
package websocket
