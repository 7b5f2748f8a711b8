package service

import (
	"time"

	"github.com/lakshmikanth1222/color-wars/game/engine"
)

// RejectCode identifies a recoverable, player-facing rejection.
type RejectCode string

const (
	RejectInvalidInput  RejectCode = "invalid_input"
	RejectOutOfBounds   RejectCode = "out_of_bounds"
	RejectDuplicateName RejectCode = "duplicate_name"
	RejectRoomFull      RejectCode = "room_full"
	RejectRoomNotFound  RejectCode = "room_not_found"
	RejectNotStarted    RejectCode = "not_started"
	RejectNotYourTurn   RejectCode = "not_your_turn"
	RejectFirstMove     RejectCode = "first_move_invalid"
	RejectNotOwnCell    RejectCode = "not_own_cell"
)

// Reject is a synchronous rejection returned to the originating client only.
// It is never fatal and never partially applied: a rejected operation leaves
// the room unchanged.
type Reject struct {
	Code    RejectCode `json:"code"`
	Message string     `json:"msg"`
}

func (r *Reject) Error() string { return r.Message }

func reject(code RejectCode, message string) *Reject {
	return &Reject{Code: code, Message: message}
}

// JoinResult is the outcome of a successful createOrJoin: the color bound to
// the seat plus the room's public state.
type JoinResult struct {
	Color engine.Color     `json:"color"`
	State *engine.Snapshot `json:"state"`
}

// MoveResult is the outcome of a successful move: either the game ended
// (GameOver, Winner set, no turn advance) or play continues with the
// advanced state. FreshWin distinguishes the move that ended the game from
// a replayed terminal answer.
type MoveResult struct {
	GameOver bool             `json:"game_over"`
	Winner   string           `json:"winner,omitempty"`
	FreshWin bool             `json:"-"`
	State    *engine.Snapshot `json:"state,omitempty"`
	Cascades int              `json:"-"`
}

// LeaveResult reports a departure. Removed is false when the connection was
// not seated in the room; RoomDeleted is true when the roster emptied and
// the room was destroyed, in which case State is nil.
type LeaveResult struct {
	Removed     bool             `json:"removed"`
	Name        string           `json:"name,omitempty"`
	Color       engine.Color     `json:"color,omitempty"`
	RoomDeleted bool             `json:"room_deleted"`
	State       *engine.Snapshot `json:"state,omitempty"`
}

// RoomInfo is read-only room metadata for the operational surface.
type RoomInfo struct {
	ID             string    `json:"id"`
	Players        int       `json:"players"`
	MaxPlayers     int       `json:"max_players"`
	Started        bool      `json:"started"`
	Finished       bool      `json:"finished"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// Stats is an aggregate snapshot across all rooms.
type Stats struct {
	Rooms   int `json:"rooms"`
	Players int `json:"players"`
	Started int `json:"started"`
}
