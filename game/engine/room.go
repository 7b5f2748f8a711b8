package engine

import (
	"errors"
	"time"
)

// Rule and precondition rejections. All of them are synchronous and leave
// the room byte-for-byte unchanged.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrDuplicateName    = errors.New("username already taken in this room")
	ErrNotStarted       = errors.New("game not started yet")
	ErrOutOfBounds      = errors.New("invalid coordinates")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrFirstMoveInvalid = errors.New("first move must be on an empty cell")
	ErrNotOwnCell       = errors.New("can only add to your own cells")
)

// Room is the complete, independent game state for one match: board, seated
// players in turn order, the turn pointer, and per-color first-move
// bookkeeping. Room is not safe for concurrent use; the session registry
// serializes all access to it.
type Room struct {
	ID             string
	MaxPlayers     int
	Board          Board
	Players        []Player
	TurnIndex      int
	Started        bool
	FirstMoves     map[Color]bool
	Finished       bool
	WinnerName     string
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// MoveOutcome is the result of a successful move. State is the public
// state after the move; when the game ended, GameOver carries the winner's
// name and the turn pointer is left where it was. FreshWin is set only on
// the move that ended the game, never on a replayed terminal answer.
type MoveOutcome struct {
	GameOver bool
	Winner   string
	FreshWin bool
	State    *Snapshot
	Cascades int
}

// NewRoom creates an empty room. Capacity is fixed for the room's lifetime
// and clamped to [MinSeats, MaxSeats].
func NewRoom(id string, maxPlayers int) *Room {
	if maxPlayers < MinSeats {
		maxPlayers = MinSeats
	}
	if maxPlayers > MaxSeats {
		maxPlayers = MaxSeats
	}
	now := time.Now()
	return &Room{
		ID:             id,
		MaxPlayers:     maxPlayers,
		Board:          NewBoard(),
		FirstMoves:     make(map[Color]bool),
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Seat adds a player to the next free seat and assigns it the palette color
// for that seat position. Re-seating a known connection id is idempotent and
// returns the existing color. The game starts (Started=true) the moment the
// room reaches capacity.
func (r *Room) Seat(connID, name string) (Color, error) {
	for _, p := range r.Players {
		if p.ID == connID {
			return p.Color, nil
		}
	}
	for _, p := range r.Players {
		if p.Name == name {
			return None, ErrDuplicateName
		}
	}
	if len(r.Players) >= r.MaxPlayers {
		return None, ErrRoomFull
	}

	color := Palette[len(r.Players)]
	r.Players = append(r.Players, Player{ID: connID, Name: name, Color: color})
	r.FirstMoves[color] = false
	r.Started = len(r.Players) == r.MaxPlayers
	r.touch()
	return color, nil
}

// Unseat removes the player holding connID, drops its first-move entry, and
// clamps the turn pointer back into range. Dropping below capacity flips
// Started back to false without resetting the board; the room then waits for
// a replacement.
func (r *Room) Unseat(connID string) (name string, color Color, ok bool) {
	for i, p := range r.Players {
		if p.ID != connID {
			continue
		}
		r.Players = append(r.Players[:i], r.Players[i+1:]...)
		delete(r.FirstMoves, p.Color)
		if r.TurnIndex >= len(r.Players) {
			r.TurnIndex = 0
		}
		r.Started = len(r.Players) == r.MaxPlayers
		r.touch()
		return p.Name, p.Color, true
	}
	return "", None, false
}

// ApplyMove runs the move transaction for the player holding connID:
// precondition checks, first-move or increment dispatch, win scan, then turn
// advance. Any rejection returns an error with no mutation and no turn
// advance. After a game has ended the terminal outcome is returned again
// without touching the board.
func (r *Room) ApplyMove(connID string, row, col int) (*MoveOutcome, error) {
	if r.Finished {
		return &MoveOutcome{GameOver: true, Winner: r.WinnerName, State: r.Snapshot()}, nil
	}
	if !r.Started {
		return nil, ErrNotStarted
	}
	if !r.Board.InBounds(row, col) {
		return nil, ErrOutOfBounds
	}
	if r.TurnIndex >= len(r.Players) {
		r.TurnIndex = 0
	}
	current := r.Players[r.TurnIndex]
	if current.ID != connID {
		return nil, ErrNotYourTurn
	}

	color := current.Color
	cascades := 0
	if !r.FirstMoves[color] {
		if !r.Board.ApplyFirstMove(row, col, color) {
			return nil, ErrFirstMoveInvalid
		}
		r.FirstMoves[color] = true
	} else {
		fired, ok := r.Board.ApplyIncrement(row, col, color)
		if !ok {
			return nil, ErrNotOwnCell
		}
		cascades = fired
	}
	r.touch()

	if winner, won := r.winner(); won {
		r.Finished = true
		r.WinnerName = winner
		return &MoveOutcome{GameOver: true, Winner: winner, FreshWin: true, State: r.Snapshot(), Cascades: cascades}, nil
	}

	r.TurnIndex = (r.TurnIndex + 1) % len(r.Players)
	return &MoveOutcome{State: r.Snapshot(), Cascades: cascades}, nil
}

// winner reports the winning player once a single color owns every dot on
// the board. It never fires before every seated color has completed its
// mandatory first move, or while the board is empty.
func (r *Room) winner() (string, bool) {
	if !r.Started {
		return "", false
	}
	for _, done := range r.FirstMoves {
		if !done {
			return "", false
		}
	}
	owners := DistinctOwners(r.Board)
	if len(owners) != 1 || TotalDots(r.Board) == 0 {
		return "", false
	}
	for _, p := range r.Players {
		if p.Color == owners[0] {
			return p.Name, true
		}
	}
	return "", false
}

// Snapshot returns a deep copy of the public room state.
func (r *Room) Snapshot() *Snapshot {
	players := make([]Player, len(r.Players))
	copy(players, r.Players)
	firstMoves := make(map[Color]bool, len(r.FirstMoves))
	for color, done := range r.FirstMoves {
		firstMoves[color] = done
	}
	return &Snapshot{
		Grid:       r.Board.Clone(),
		Turn:       r.TurnIndex,
		Players:    players,
		Max:        r.MaxPlayers,
		Started:    r.Started,
		FirstMoves: firstMoves,
	}
}

func (r *Room) touch() {
	r.LastActivityAt = time.Now()
}
