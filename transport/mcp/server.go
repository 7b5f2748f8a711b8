package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lakshmikanth1222/color-wars/game/engine"
	"github.com/lakshmikanth1222/color-wars/game/service"
)

// Server exposes the game service as MCP tools so that an agent can
// play alongside human WebSocket players.
type Server struct {
	svc       service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server backed by the game service.
func NewServer(svc service.GameService) *Server {
	s := &Server{svc: svc}
	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Color Wars",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Color Wars - MCP Interface

A turn-based territory game on an 8x8 grid for 2-4 players.

GAME OBJECTIVE:
Own every dot on the board. Your first move places 3 dots on an empty
cell. After everyone's first move, you click your own cells to add a
dot; a cell reaching 4 dots explodes, sends one dot to each orthogonal
neighbor and converts those cells to your color. Chains cascade. When
a player loses their last cell after all first moves, they are out.

AVAILABLE TOOLS:
- create_or_join_room: Join a room (created on first join), get your color
- make_move: Place your first move or increment one of your cells
- get_room_state: Current board, roster and whose turn it is
- list_rooms: All active rooms
- leave_room: Give up your seat

The conn_id you pass to create_or_join_room is your identity; use the
same value on every later call for that room.`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_or_join_room",
		Description: "Join a game room, creating it if it does not exist yet",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room": map[string]interface{}{
					"type":        "string",
					"description": "Room identifier (case-insensitive)",
				},
				"conn_id": map[string]interface{}{
					"type":        "string",
					"description": "Your connection identity; reuse it on every call",
				},
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Display name, unique within the room",
				},
				"player_count": map[string]interface{}{
					"type":        "integer",
					"description": "Seats when creating the room (2-4, default 4)",
				},
			},
			Required: []string{"room", "conn_id", "username"},
		},
	}, s.handleCreateOrJoin)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "make_move",
		Description: "Place your first move on an empty cell, or add a dot to one of your own cells",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room": map[string]interface{}{
					"type":        "string",
					"description": "Room identifier",
				},
				"conn_id": map[string]interface{}{
					"type":        "string",
					"description": "Your connection identity",
				},
				"r": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-7)",
				},
				"c": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-7)",
				},
			},
			Required: []string{"room", "conn_id", "r", "c"},
		},
	}, s.handleMakeMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room_state",
		Description: "Get the current board, players and turn for a room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room": map[string]interface{}{
					"type":        "string",
					"description": "Room identifier",
				},
			},
			Required: []string{"room"},
		},
	}, s.handleGetRoomState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all active game rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListRooms)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "leave_room",
		Description: "Leave a room, freeing your seat",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room": map[string]interface{}{
					"type":        "string",
					"description": "Room identifier",
				},
				"conn_id": map[string]interface{}{
					"type":        "string",
					"description": "Your connection identity",
				},
			},
			Required: []string{"room", "conn_id"},
		},
	}, s.handleLeaveRoom)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Tool handlers

func (s *Server) handleCreateOrJoin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	room, _ := args["room"].(string)
	connID, _ := args["conn_id"].(string)
	username, _ := args["username"].(string)
	playerCount := intArg(args, "player_count")

	res, err := s.svc.CreateOrJoin(ctx, room, connID, username, playerCount)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Joined room %s as %s (%s)\n\n%s",
		room, username, res.Color, formatSnapshot(res.State))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMakeMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	room, _ := args["room"].(string)
	connID, _ := args["conn_id"].(string)
	r := intArg(args, "r")
	c := intArg(args, "c")

	res, err := s.svc.SubmitMove(ctx, room, connID, r, c)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Move applied at (%d,%d)", r, c)
	if res.Cascades > 0 {
		fmt.Fprintf(&sb, ", %d explosion(s) fired", res.Cascades)
	}
	sb.WriteString("\n")
	if res.GameOver {
		fmt.Fprintf(&sb, "GAME OVER - winner: %s\n", res.Winner)
	}
	sb.WriteString("\n")
	sb.WriteString(formatSnapshot(res.State))
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleGetRoomState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	room, _ := args["room"].(string)

	snap, err := s.svc.GetRoom(ctx, room)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(snap)), nil
}

func (s *Server) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rooms, err := s.svc.ListRooms(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Rooms (%d):\n\n", len(rooms))
	for _, r := range rooms {
		status := "waiting"
		if r.Finished {
			status = "finished"
		} else if r.Started {
			status = "in progress"
		}
		fmt.Fprintf(&sb, "- %s: %d/%d players, %s\n", r.ID, r.Players, r.MaxPlayers, status)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleLeaveRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	room, _ := args["room"].(string)
	connID, _ := args["conn_id"].(string)

	res, err := s.svc.Leave(ctx, room, connID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !res.Removed {
		return mcp.NewToolResultText("You were not seated in that room"), nil
	}
	msg := fmt.Sprintf("Left room %s", room)
	if res.RoomDeleted {
		msg += " (room deleted, no players left)"
	}
	return mcp.NewToolResultText(msg), nil
}

// intArg reads an integer tool argument; JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// formatSnapshot renders a room snapshot as text for the agent.
func formatSnapshot(snap *engine.Snapshot) string {
	if snap == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Board (rows 0-7, columns 0-7, <dots><color initial>):\n")
	for _, row := range snap.Grid {
		for c, cell := range row {
			if c > 0 {
				sb.WriteString(" ")
			}
			if cell.Dots == 0 {
				sb.WriteString("..")
				continue
			}
			fmt.Fprintf(&sb, "%d%s", cell.Dots, colorInitial(cell.Owner))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\nPlayers:\n")
	for i, p := range snap.Players {
		marker := "  "
		if snap.Started && i == snap.Turn {
			marker = "->"
		}
		fmt.Fprintf(&sb, "%s %s (%s)\n", marker, p.Name, p.Color)
	}

	if snap.Started {
		sb.WriteString("\nGame in progress")
		if len(snap.Players) > 0 && snap.Turn < len(snap.Players) {
			fmt.Fprintf(&sb, "; it is %s's turn", snap.Players[snap.Turn].Name)
		}
	} else {
		fmt.Fprintf(&sb, "\nWaiting for players (%d/%d)", len(snap.Players), snap.Max)
	}
	sb.WriteString("\n")
	return sb.String()
}

func colorInitial(c engine.Color) string {
	if c == engine.None {
		return "."
	}
	return strings.ToUpper(string(c[0]))
}
