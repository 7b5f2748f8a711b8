package service

import (
	"context"

	"github.com/lakshmikanth1222/color-wars/game/engine"
)

// GameService is the single boundary the transports invoke. Mutating
// operations on one room are serialized by the underlying registry; all
// failures are returned as *Reject values the transport surfaces to the
// originating client only.
type GameService interface {
	// CreateOrJoin seats a player, creating the room on first join to an
	// unknown id (capacity fixed then from maxPlayers, clamped to 2-4).
	CreateOrJoin(ctx context.Context, roomID, connID, name string, maxPlayers int) (*JoinResult, error)

	// SubmitMove applies one move for the player holding connID.
	SubmitMove(ctx context.Context, roomID, connID string, row, col int) (*MoveResult, error)

	// Leave unseats a player; the room is destroyed when its roster empties.
	Leave(ctx context.Context, roomID, connID string) (*LeaveResult, error)

	// Read-only operational surface.
	GetRoom(ctx context.Context, roomID string) (*engine.Snapshot, error)
	ListRooms(ctx context.Context) ([]RoomInfo, error)
	Stats(ctx context.Context) (Stats, error)
}
