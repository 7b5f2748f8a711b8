package engine

// Board is the 8x8 grid of cells, row-major with (0,0) at the top-left
// corner. Adjacency is 4-directional; there are no diagonal neighbors.
type Board [][]Cell

// NewBoard returns an empty 8x8 board.
func NewBoard() Board {
	b := make(Board, BoardSize)
	for r := range b {
		b[r] = make([]Cell, BoardSize)
	}
	return b
}

// InBounds reports whether (r,c) is a valid board coordinate.
func (b Board) InBounds(r, c int) bool {
	return r >= 0 && r < BoardSize && c >= 0 && c < BoardSize
}

// ApplyFirstMove places the mandatory opening move: exactly 3 dots on an
// unowned cell. It reports false, without mutating, if the cell already has
// an owner (any owner, including the moving color). 3 dots never explode, so
// no cascade check follows.
func (b Board) ApplyFirstMove(r, c int, color Color) bool {
	if b[r][c].Owner != None {
		return false
	}
	b[r][c].Owner = color
	b[r][c].Dots = RestDots
	return true
}

// ApplyIncrement adds one dot to a cell the moving color already owns. If
// the cell reaches 4 dots the cascade resolves fully before returning, so a
// caller never observes a cell at or above ExplodeAt. The returned count is
// the number of cascade frames that fired (0 for a quiet increment); ok is
// false, with no mutation, when the cell is not owned by color.
func (b Board) ApplyIncrement(r, c int, color Color) (cascades int, ok bool) {
	if b[r][c].Owner != color {
		return 0, false
	}
	b[r][c].Dots++
	if b[r][c].Dots >= ExplodeAt {
		cascades = b.cascade(r, c, color)
	}
	return cascades, true
}

// cascadeOrder is the fixed neighbor visitation order: east, west, south,
// north. Whenever chains interact the visitation order decides the final
// board, so it must never change.
var cascadeOrder = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// cascade resolves an overloaded cell: the triggering cell resets to
// neutral, then each in-bounds neighbor is converted to color and
// incremented. A neighbor that reaches 4 dots recurses immediately,
// depth-first, before its siblings are visited. Each frame zeroes its own
// cell before visiting neighbors, so a frame never re-enters itself; the
// chain stops once no visited neighbor sits at 4 dots.
func (b Board) cascade(r, c int, color Color) int {
	b[r][c].Dots = 0
	b[r][c].Owner = None

	fired := 1
	for _, d := range cascadeOrder {
		nr, nc := r+d[0], c+d[1]
		if !b.InBounds(nr, nc) {
			continue
		}
		b[nr][nc].Owner = color
		b[nr][nc].Dots++
		if b[nr][nc].Dots >= ExplodeAt {
			fired += b.cascade(nr, nc, color)
		}
	}
	return fired
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for r := range b {
		out[r] = make([]Cell, len(b[r]))
		copy(out[r], b[r])
	}
	return out
}
