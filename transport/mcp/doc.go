// Package mcp provides the Model Context Protocol server for Color Wars.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for joining, playing and inspecting rooms
//   - Text rendering of board state for agent consumption
//   - Stdio transport mode
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_or_join_room: Take a seat in a room, creating it on demand
//   - make_move: Place a first move or increment an owned cell
//   - get_room_state: Board, roster and turn for a room
//   - list_rooms: All active rooms with occupancy and status
//   - leave_room: Give the seat back
//
// Identity:
//
// Tools take an explicit conn_id; the agent acts as one more player in
// the same rooms human WebSocket players use, with the same turn order
// and rejection rules. State changes made through MCP are visible to
// WebSocket clients on their next update.
//
// Usage:
//
//	srv := mcp.NewServer(gameService)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
