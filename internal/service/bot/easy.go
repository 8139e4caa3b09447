package bot

import (
	"math/rand"

	"connect-four-server/internal/domain"
)

// chooseEasy takes an immediate win or block when one exists, otherwise a
// random legal column.
func chooseEasy(grid [][]domain.PlayerID, botPlayer domain.PlayerID) int {
	validColumns := domain.ValidMoves(grid)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := botPlayer.Opponent()

	for _, col := range validColumns {
		testGrid, row, _ := domain.SimulateMove(grid, col, botPlayer)
		if domain.CheckWin(testGrid, row, col, botPlayer) {
			return col
		}
	}

	for _, col := range validColumns {
		testGrid, row, _ := domain.SimulateMove(grid, col, opponent)
		if domain.CheckWin(testGrid, row, col, opponent) {
			return col
		}
	}

	return validColumns[rand.Intn(len(validColumns))]
}
