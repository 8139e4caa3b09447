package bot

import (
	"math"

	"connect-four-server/internal/domain"
)

const (
	minimaxDepth = 7
	minimaxWin   = 1000000
	minimaxLoss  = -1000000
)

// chooseMinimax implements hard difficulty: minimax with alpha-beta
// pruning over simulated boards.
func chooseMinimax(grid [][]domain.PlayerID, botPlayer domain.PlayerID) int {
	validColumns := domain.ValidMoves(grid)
	if len(validColumns) == 0 {
		return -1
	}

	bestCol := validColumns[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32

	opponent := botPlayer.Opponent()

	for _, col := range validColumns {
		testGrid, row, _ := domain.SimulateMove(grid, col, botPlayer)

		if domain.CheckWin(testGrid, row, col, botPlayer) {
			return col
		}

		score := minimax(testGrid, minimaxDepth-1, alpha, beta, false, botPlayer, opponent)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}

		alpha = max(alpha, bestScore)
	}

	return bestCol
}

func minimax(grid [][]domain.PlayerID, depth, alpha, beta int, maximizing bool, botPlayer, opponent domain.PlayerID) int {
	validColumns := domain.ValidMoves(grid)

	if depth == 0 || len(validColumns) == 0 {
		return evaluateGrid(grid, botPlayer, opponent)
	}

	if maximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			testGrid, row, _ := domain.SimulateMove(grid, col, botPlayer)

			if domain.CheckWin(testGrid, row, col, botPlayer) {
				return minimaxWin - (minimaxDepth - depth) // prefer quicker wins
			}

			eval := minimax(testGrid, depth-1, alpha, beta, false, botPlayer, opponent)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)

			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		testGrid, row, _ := domain.SimulateMove(grid, col, opponent)

		if domain.CheckWin(testGrid, row, col, opponent) {
			return minimaxLoss + (minimaxDepth - depth) // prefer delaying losses
		}

		eval := minimax(testGrid, depth-1, alpha, beta, true, botPlayer, opponent)
		minEval = min(minEval, eval)
		beta = min(beta, eval)

		if beta <= alpha {
			break
		}
	}
	return minEval
}
