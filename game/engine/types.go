package engine

// Color identifies one of the four seatable player colors. The zero value
// (None) marks a neutral cell.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"

	None Color = ""

	// Board and rule constants
	BoardSize = 8
	RestDots  = 3 // dots placed by a first move; also the max at rest
	ExplodeAt = 4 // dot count that triggers a cascade

	// Room constraints
	MinSeats     = 2
	MaxSeats     = 4
	MaxNameLen   = 20
	MaxRoomIDLen = 50
)

// Palette is the fixed color assignment order: the Nth joining player
// receives Palette[N-1]. A seat freed by a departure makes its palette slot
// assignable to the next joiner.
var Palette = [MaxSeats]Color{Red, Blue, Green, Yellow}

// Cell is a single board cell. At rest Dots is in [0,3] and Dots==0 exactly
// when Owner is None; Dots>=4 exists only transiently while a cascade is
// being resolved and is never visible outside the engine.
type Cell struct {
	Dots  int   `json:"dots"`
	Owner Color `json:"owner"`
}

// Player is a seated participant. ID is the transport connection id; Name is
// unique within a room.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// Snapshot is the public room state handed to the transport for broadcast
// after every successful mutation. Field names match the wire payload the
// frontend consumes.
type Snapshot struct {
	Grid       [][]Cell       `json:"grid"`
	Turn       int            `json:"turn"`
	Players    []Player       `json:"players"`
	Max        int            `json:"max"`
	Started    bool           `json:"started"`
	FirstMoves map[Color]bool `json:"first_moves_done"`
}
