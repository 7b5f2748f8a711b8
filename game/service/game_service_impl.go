package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lakshmikanth1222/color-wars/game/engine"
	"github.com/lakshmikanth1222/color-wars/game/session"
)

// gameServiceImpl implements the GameService interface on top of the room
// registry. It holds no state of its own; all serialization happens through
// the registry's per-room handles.
type gameServiceImpl struct {
	registry *session.Manager
}

// NewGameService creates a new game service backed by the given registry.
func NewGameService(registry *session.Manager) GameService {
	return &gameServiceImpl{registry: registry}
}

// CreateOrJoin seats a player. A join that races a concurrent deletion of
// the same room re-resolves the handle and retries.
func (s *gameServiceImpl) CreateOrJoin(ctx context.Context, roomID, connID, name string, maxPlayers int) (*JoinResult, error) {
	roomID = strings.TrimSpace(roomID)
	name = strings.TrimSpace(name)
	if roomID == "" || name == "" {
		return nil, reject(RejectInvalidInput, "Room ID and Username are required")
	}
	if len(roomID) > engine.MaxRoomIDLen {
		return nil, reject(RejectInvalidInput, "Room ID is too long")
	}
	if len(name) > engine.MaxNameLen {
		return nil, reject(RejectInvalidInput, "Username is too long")
	}
	if maxPlayers == 0 {
		maxPlayers = engine.MaxSeats
	}

	for {
		h, err := s.registry.GetOrCreate(roomID, maxPlayers)
		if err != nil {
			return nil, reject(RejectInvalidInput, err.Error())
		}

		h.Lock()
		if h.Closed() {
			// Lost the race to a delete-on-empty; resolve a fresh room.
			h.Unlock()
			continue
		}
		color, err := h.Room().Seat(connID, name)
		if err != nil {
			h.Unlock()
			switch {
			case errors.Is(err, engine.ErrDuplicateName):
				return nil, reject(RejectDuplicateName, fmt.Sprintf("Username %q already taken in this room", name))
			case errors.Is(err, engine.ErrRoomFull):
				return nil, reject(RejectRoomFull, "Room is full!")
			default:
				return nil, err
			}
		}
		state := h.Room().Snapshot()
		h.Unlock()

		return &JoinResult{Color: color, State: state}, nil
	}
}

// SubmitMove runs the move transaction described in the engine: any
// rejection reaches only the mover and leaves the room untouched.
func (s *gameServiceImpl) SubmitMove(ctx context.Context, roomID, connID string, row, col int) (*MoveResult, error) {
	h, err := s.registry.Get(roomID)
	if err != nil {
		return nil, reject(RejectRoomNotFound, "Game room not found")
	}

	h.Lock()
	defer h.Unlock()
	if h.Closed() {
		return nil, reject(RejectRoomNotFound, "Game room not found")
	}

	outcome, err := h.Room().ApplyMove(connID, row, col)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotStarted):
			return nil, reject(RejectNotStarted, "Game not started yet")
		case errors.Is(err, engine.ErrOutOfBounds):
			return nil, reject(RejectOutOfBounds, "Invalid coordinates")
		case errors.Is(err, engine.ErrNotYourTurn):
			return nil, reject(RejectNotYourTurn, "Not your turn!")
		case errors.Is(err, engine.ErrFirstMoveInvalid):
			return nil, reject(RejectFirstMove, "First move must be on an empty cell!")
		case errors.Is(err, engine.ErrNotOwnCell):
			return nil, reject(RejectNotOwnCell, "You can only click on your own cells!")
		default:
			return nil, err
		}
	}

	return &MoveResult{
		GameOver: outcome.GameOver,
		Winner:   outcome.Winner,
		FreshWin: outcome.FreshWin,
		State:    outcome.State,
		Cascades: outcome.Cascades,
	}, nil
}

// Leave unseats the player and destroys the room the instant its roster
// empties. Leaving a room the connection never joined is not an error.
func (s *gameServiceImpl) Leave(ctx context.Context, roomID, connID string) (*LeaveResult, error) {
	h, err := s.registry.Get(roomID)
	if err != nil {
		return nil, reject(RejectRoomNotFound, "Game room not found")
	}

	h.Lock()
	if h.Closed() {
		h.Unlock()
		return nil, reject(RejectRoomNotFound, "Game room not found")
	}
	name, color, removed := h.Room().Unseat(connID)
	empty := len(h.Room().Players) == 0
	var state *engine.Snapshot
	if removed && !empty {
		state = h.Room().Snapshot()
	}
	h.Unlock()

	result := &LeaveResult{Removed: removed, Name: name, Color: color, State: state}
	if removed && empty {
		result.RoomDeleted = s.registry.RemoveIfEmpty(roomID)
	}
	return result, nil
}

// GetRoom returns the public state of an existing room.
func (s *gameServiceImpl) GetRoom(ctx context.Context, roomID string) (*engine.Snapshot, error) {
	h, err := s.registry.Get(roomID)
	if err != nil {
		return nil, reject(RejectRoomNotFound, "Game room not found")
	}

	h.Lock()
	defer h.Unlock()
	if h.Closed() {
		return nil, reject(RejectRoomNotFound, "Game room not found")
	}
	return h.Room().Snapshot(), nil
}

// ListRooms returns metadata for every active room.
func (s *gameServiceImpl) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	handles := s.registry.List()
	out := make([]RoomInfo, 0, len(handles))
	for _, h := range handles {
		h.Lock()
		if h.Closed() {
			h.Unlock()
			continue
		}
		room := h.Room()
		out = append(out, RoomInfo{
			ID:             room.ID,
			Players:        len(room.Players),
			MaxPlayers:     room.MaxPlayers,
			Started:        room.Started,
			Finished:       room.Finished,
			CreatedAt:      room.CreatedAt,
			LastActivityAt: room.LastActivityAt,
		})
		h.Unlock()
	}
	return out, nil
}

// Stats aggregates counts across all rooms.
func (s *gameServiceImpl) Stats(ctx context.Context) (Stats, error) {
	infos, err := s.ListRooms(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{}
	for _, info := range infos {
		stats.Rooms++
		stats.Players += info.Players
		if info.Started {
			stats.Started++
		}
	}
	return stats, nil
}
