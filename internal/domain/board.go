package domain

func NewGrid() [][]PlayerID {
	grid := make([][]PlayerID, Rows)
	for i := range grid {
		grid[i] = make([]PlayerID, Columns)
	}
	return grid
}

func IsValidMove(grid [][]PlayerID, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// grid[0] is the top row (0 -> top, 5 -> bottom)
	return grid[0][column] == Empty
}

// DropDisk places a disk in the lowest empty cell of the column and
// returns the row it landed in.
func DropDisk(grid [][]PlayerID, column int, player PlayerID) (int, error) {
	for row := Rows - 1; row >= 0; row-- {
		if grid[row][column] == Empty {
			grid[row][column] = player
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

func IsGridFull(grid [][]PlayerID) bool {
	for c := 0; c < Columns; c++ {
		if grid[0][c] == Empty {
			return false
		}
	}

	return true
}

// CopyGrid creates a deep copy of the grid.
func CopyGrid(grid [][]PlayerID) [][]PlayerID {
	dup := make([][]PlayerID, len(grid))
	for i := range grid {
		dup[i] = make([]PlayerID, len(grid[i]))
		copy(dup[i], grid[i])
	}
	return dup
}

func ValidMoves(grid [][]PlayerID) []int {
	moves := []int{}
	for col := 0; col < Columns; col++ {
		if grid[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

// SimulateMove drops a disk on a copy of the grid, leaving the original
// untouched. Used by the bot for look-ahead.
func SimulateMove(grid [][]PlayerID, column int, player PlayerID) ([][]PlayerID, int, error) {
	dup := CopyGrid(grid)
	row, err := DropDisk(dup, column, player)
	if err != nil {
		return nil, -1, err
	}
	return dup, row, nil
}

// CountInDirection counts contiguous disks of the player starting one step
// away from (row, column) along (deltaRow, deltaCol).
func CountInDirection(grid [][]PlayerID, row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && grid[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
