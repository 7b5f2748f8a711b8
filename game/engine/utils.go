package engine

// TotalDots sums the dots across the whole board.
func TotalDots(b Board) int {
	total := 0
	for _, row := range b {
		for _, cell := range row {
			total += cell.Dots
		}
	}
	return total
}

// DistinctOwners returns the owners present on the board, in palette order.
func DistinctOwners(b Board) []Color {
	seen := make(map[Color]bool)
	for _, row := range b {
		for _, cell := range row {
			if cell.Owner != None {
				seen[cell.Owner] = true
			}
		}
	}
	owners := make([]Color, 0, len(seen))
	for _, color := range Palette {
		if seen[color] {
			owners = append(owners, color)
		}
	}
	return owners
}

// CellsOwnedBy counts the cells currently held by color.
func CellsOwnedBy(b Board, color Color) int {
	count := 0
	for _, row := range b {
		for _, cell := range row {
			if cell.Owner == color {
				count++
			}
		}
	}
	return count
}
