// Package engine provides the core game logic for Color Wars.
//
// The engine package implements the game mechanics including:
//   - The 8x8 board and the chain-reaction cascade algorithm
//   - First-move and increment move validation
//   - Seating, color assignment, and turn rotation
//   - Win detection and the terminal game-over state
//
// Core Types:
//
// Board holds the grid and the cascade algorithm. Room composes a Board with
// the seated players, the turn pointer, and per-color first-move tracking,
// and owns the whole move transaction. Snapshot is the public state payload
// broadcast to clients after every successful mutation.
//
// Usage:
//
//	room := engine.NewRoom("r1", 2)
//	colorA, _ := room.Seat("conn-a", "alice")
//	colorB, _ := room.Seat("conn-b", "bob") // room now started
//
//	outcome, err := room.ApplyMove("conn-a", 0, 0)
//	if err != nil {
//		// rejected: nothing changed, same player's turn
//	}
//
// Game Rules:
//
// Each color's mandatory first move places 3 dots on any unowned cell.
// Subsequent moves add one dot to a cell the mover already owns. A cell
// reaching 4 dots explodes: it resets to neutral and each orthogonal
// neighbor is converted to the mover's color and incremented, recursively
// and depth-first in a fixed east/west/south/north order. A single color
// owning every remaining dot wins, but only after every seated color has
// completed its first move.
//
// The package performs no I/O and holds no locks; callers are responsible
// for serializing access to a Room.
package engine
