package bot

import "connect-four-server/internal/domain"

// Score priorities, highest to lowest.
const (
	scoreWinNow          = 100000 // bot can win immediately
	scoreBlockWin        = 10000  // block opponent's immediate win
	scoreCreateWinThreat = 8000   // position with a win available next move
	scoreBlockWinThreat  = 5000   // defuse opponent's win setup
	scoreThreeInRow      = 400
	scoreTwoInRow        = 100
	scoreCenter          = 30
	scoreNearCenter      = 20
	scoreEdge            = 5

	positionWeight   = 10
	twoInRowWeight   = 50
	threeInRowWeight = 500
)

var directions = [][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// evaluateGrid scores a whole position for minimax: the bot's connectivity
// minus the opponent's, with a bonus for center control.
func evaluateGrid(grid [][]domain.PlayerID, botPlayer, opponent domain.PlayerID) int {
	score := 0

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			switch grid[row][col] {
			case botPlayer:
				score += evaluatePosition(grid, row, col, botPlayer)
			case opponent:
				score -= evaluatePosition(grid, row, col, opponent)
			}
		}
	}

	centerCol := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		switch grid[row][centerCol] {
		case botPlayer:
			score += positionWeight * 2
		case opponent:
			score -= positionWeight * 2
		}
	}

	return score
}

// evaluatePosition scores one disk by the runs it participates in, ignoring
// runs with no room left to grow into four.
func evaluatePosition(grid [][]domain.PlayerID, row, col int, player domain.PlayerID) int {
	score := positionWeight

	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		posCount := domain.CountInDirection(grid, row, col, dRow, dCol, player)
		negCount := domain.CountInDirection(grid, row, col, -dRow, -dCol, player)
		total := posCount + negCount

		if !hasSpaceToExtend(grid, row, col, dRow, dCol, posCount, negCount) {
			continue
		}

		if total >= 3 {
			score += threeInRowWeight
		} else if total == 2 {
			score += twoInRowWeight
		}
	}

	return score
}

// threatScore scores the runs through a just-placed disk.
func threatScore(grid [][]domain.PlayerID, row, col int, player domain.PlayerID) int {
	score := 0

	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		posCount := domain.CountInDirection(grid, row, col, dRow, dCol, player)
		negCount := domain.CountInDirection(grid, row, col, -dRow, -dCol, player)
		total := posCount + negCount

		if !hasSpaceToExtend(grid, row, col, dRow, dCol, posCount, negCount) {
			continue
		}

		if total >= 3 {
			score += scoreThreeInRow
		} else if total == 2 {
			score += scoreTwoInRow
		} else if total == 1 {
			score += 25
		}
	}

	return score
}

// winningThreatScore measures how close the player is to an unanswerable
// win in the given position. Two simultaneous winning columns cannot both
// be blocked; a single one is scored by whether a block actually kills it.
func winningThreatScore(grid [][]domain.PlayerID, player, opponent domain.PlayerID) int {
	var winningCols []int
	for _, col := range domain.ValidMoves(grid) {
		testGrid, row, _ := domain.SimulateMove(grid, col, player)
		if domain.CheckWin(testGrid, row, col, player) {
			winningCols = append(winningCols, col)
		}
	}

	if len(winningCols) >= 2 {
		return scoreCreateWinThreat
	}

	if len(winningCols) == 1 {
		blocked, _, _ := domain.SimulateMove(grid, winningCols[0], opponent)
		for _, nextCol := range domain.ValidMoves(blocked) {
			futureGrid, futureRow, _ := domain.SimulateMove(blocked, nextCol, player)
			if domain.CheckWin(futureGrid, futureRow, nextCol, player) {
				return scoreCreateWinThreat / 2
			}
		}
		return scoreCreateWinThreat / 4
	}

	return 0
}

// hasSpaceToExtend reports whether the run through (row, col) can still
// grow into a playable cell on either end. Playable respects gravity: the
// bottom row, or a cell with a disk directly below.
func hasSpaceToExtend(grid [][]domain.PlayerID, row, col, dRow, dCol, posCount, negCount int) bool {
	posRow := row + dRow*(posCount+1)
	posCol := col + dCol*(posCount+1)
	if inBounds(posRow, posCol) && grid[posRow][posCol] == domain.Empty && isPlayable(grid, posRow, posCol) {
		return true
	}

	negRow := row - dRow*(negCount+1)
	negCol := col - dCol*(negCount+1)
	if inBounds(negRow, negCol) && grid[negRow][negCol] == domain.Empty && isPlayable(grid, negRow, negCol) {
		return true
	}

	return false
}

func isPlayable(grid [][]domain.PlayerID, row, col int) bool {
	if row == domain.Rows-1 {
		return true
	}
	return grid[row+1][col] != domain.Empty
}

func inBounds(row, col int) bool {
	return row >= 0 && row < domain.Rows && col >= 0 && col < domain.Columns
}
