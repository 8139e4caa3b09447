package domain

// CheckWin reports whether the player has four or more in a row through
// (row, column). Only lines passing through that cell are scanned, which
// is enough because the board was win-free before the disk landed there.
func CheckWin(grid [][]PlayerID, row, column int, player PlayerID) bool {
	if grid[row][column] != player {
		return false
	}

	directions := [][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal \
		{1, -1}, // diagonal /
	}

	for _, dir := range directions {
		// The placed disk itself, plus contiguous runs on both sides.
		total := 1 +
			CountInDirection(grid, row, column, dir[0], dir[1], player) +
			CountInDirection(grid, row, column, -dir[0], -dir[1], player)
		if total >= ToWin {
			return true
		}
	}

	return false
}
