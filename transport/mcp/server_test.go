package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lakshmikanth1222/color-wars/game/service"
	"github.com/lakshmikanth1222/color-wars/game/session"
)

func newTestMCPServer() *Server {
	return NewServer(service.NewGameService(session.NewManager()))
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("Tool result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	srv := newTestMCPServer()

	if srv == nil {
		t.Fatal("Expected server to be created")
	}
	if srv.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
	if srv.GetMCPServer() != srv.mcpServer {
		t.Error("GetMCPServer should expose the underlying server")
	}
}

func TestHandleCreateOrJoin(t *testing.T) {
	srv := newTestMCPServer()

	res, err := srv.handleCreateOrJoin(context.Background(), toolRequest("create_or_join_room", map[string]interface{}{
		"room":         "agents",
		"conn_id":      "agent-1",
		"username":     "hal",
		"player_count": float64(2),
	}))
	if err != nil {
		t.Fatalf("handleCreateOrJoin failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("Expected success, got error result: %s", resultText(t, res))
	}

	text := resultText(t, res)
	if !strings.Contains(text, "Joined room agents as hal (red)") {
		t.Errorf("Unexpected join text: %s", text)
	}
	if !strings.Contains(text, "Waiting for players (1/2)") {
		t.Errorf("Expected waiting status in: %s", text)
	}
}

func TestHandleMakeMove(t *testing.T) {
	srv := newTestMCPServer()
	ctx := context.Background()

	srv.handleCreateOrJoin(ctx, toolRequest("create_or_join_room", map[string]interface{}{
		"room": "duel", "conn_id": "a", "username": "hal", "player_count": float64(2),
	}))
	srv.handleCreateOrJoin(ctx, toolRequest("create_or_join_room", map[string]interface{}{
		"room": "duel", "conn_id": "b", "username": "sal", "player_count": float64(2),
	}))

	res, err := srv.handleMakeMove(ctx, toolRequest("make_move", map[string]interface{}{
		"room": "duel", "conn_id": "a", "r": float64(0), "c": float64(0),
	}))
	if err != nil {
		t.Fatalf("handleMakeMove failed: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Move applied at (0,0)") {
		t.Errorf("Unexpected move text: %s", text)
	}
	if !strings.Contains(text, "3R") {
		t.Errorf("Expected 3 red dots rendered in board: %s", text)
	}

	// Out of turn is reported as a tool error, not a Go error.
	res, err = srv.handleMakeMove(ctx, toolRequest("make_move", map[string]interface{}{
		"room": "duel", "conn_id": "a", "r": float64(0), "c": float64(0),
	}))
	if err != nil {
		t.Fatalf("handleMakeMove failed: %v", err)
	}
	if !res.IsError {
		t.Error("Expected error result for out-of-turn move")
	}
	if text := resultText(t, res); text != "Not your turn!" {
		t.Errorf("Expected original rejection text, got %q", text)
	}
}

func TestHandleGetRoomState(t *testing.T) {
	srv := newTestMCPServer()
	ctx := context.Background()

	srv.handleCreateOrJoin(ctx, toolRequest("create_or_join_room", map[string]interface{}{
		"room": "view", "conn_id": "a", "username": "hal", "player_count": float64(3),
	}))

	res, err := srv.handleGetRoomState(ctx, toolRequest("get_room_state", map[string]interface{}{
		"room": "view",
	}))
	if err != nil {
		t.Fatalf("handleGetRoomState failed: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "hal (red)") {
		t.Errorf("Expected roster in state text: %s", text)
	}

	res, _ = srv.handleGetRoomState(ctx, toolRequest("get_room_state", map[string]interface{}{
		"room": "nowhere",
	}))
	if !res.IsError {
		t.Error("Expected error result for unknown room")
	}
}

func TestHandleListRooms(t *testing.T) {
	srv := newTestMCPServer()
	ctx := context.Background()

	srv.handleCreateOrJoin(ctx, toolRequest("create_or_join_room", map[string]interface{}{
		"room": "one", "conn_id": "a", "username": "hal", "player_count": float64(2),
	}))

	res, err := srv.handleListRooms(ctx, toolRequest("list_rooms", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleListRooms failed: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "Active Rooms (1)") {
		t.Errorf("Expected one active room: %s", text)
	}
	if !strings.Contains(text, "one: 1/2 players, waiting") {
		t.Errorf("Expected room summary line: %s", text)
	}
}

func TestHandleLeaveRoom(t *testing.T) {
	srv := newTestMCPServer()
	ctx := context.Background()

	srv.handleCreateOrJoin(ctx, toolRequest("create_or_join_room", map[string]interface{}{
		"room": "exit", "conn_id": "a", "username": "hal", "player_count": float64(2),
	}))

	res, err := srv.handleLeaveRoom(ctx, toolRequest("leave_room", map[string]interface{}{
		"room": "exit", "conn_id": "a",
	}))
	if err != nil {
		t.Fatalf("handleLeaveRoom failed: %v", err)
	}
	text := resultText(t, res)
	if !strings.Contains(text, "room deleted") {
		t.Errorf("Expected room deletion notice: %s", text)
	}
}

func TestFormatSnapshot_EmptyBoard(t *testing.T) {
	srv := newTestMCPServer()
	ctx := context.Background()

	srv.handleCreateOrJoin(ctx, toolRequest("create_or_join_room", map[string]interface{}{
		"room": "fmt", "conn_id": "a", "username": "hal", "player_count": float64(2),
	}))

	res, _ := srv.handleGetRoomState(ctx, toolRequest("get_room_state", map[string]interface{}{
		"room": "fmt",
	}))
	text := resultText(t, res)
	if strings.Count(text, "..") < 64 {
		t.Errorf("Expected 64 empty cells rendered: %s", text)
	}
}
