package bot

import "connect-four-server/internal/domain"

// chooseMedium scores every legal column by a fixed priority ladder: win
// now, block the opponent winning now, create or defuse two-move winning
// threats, then positional strength with a center preference.
func chooseMedium(grid [][]domain.PlayerID, botPlayer domain.PlayerID) int {
	validColumns := domain.ValidMoves(grid)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := botPlayer.Opponent()

	type simulation struct {
		grid [][]domain.PlayerID
		row  int
	}
	botSims := make(map[int]simulation, len(validColumns))
	oppSims := make(map[int]simulation, len(validColumns))
	scores := make(map[int]int, len(validColumns))

	for _, col := range validColumns {
		botGrid, botRow, _ := domain.SimulateMove(grid, col, botPlayer)
		botSims[col] = simulation{botGrid, botRow}

		oppGrid, oppRow, _ := domain.SimulateMove(grid, col, opponent)
		oppSims[col] = simulation{oppGrid, oppRow}

		scores[col] = 0
	}

	currentOpponentThreat := winningThreatScore(grid, opponent, botPlayer)

	for _, col := range validColumns {
		bot := botSims[col]
		opp := oppSims[col]

		// Immediate win beats everything.
		if domain.CheckWin(bot.grid, bot.row, col, botPlayer) {
			scores[col] += scoreWinNow
		}

		// Block the opponent's immediate win.
		if domain.CheckWin(opp.grid, opp.row, col, opponent) {
			scores[col] += scoreBlockWin
		}

		// Create winning threats of our own.
		scores[col] += winningThreatScore(bot.grid, botPlayer, opponent)

		// Reward moves that reduce the opponent's threats.
		if winningThreatScore(bot.grid, opponent, botPlayer) < currentOpponentThreat {
			scores[col] += scoreBlockWinThreat
		}

		// Raw connectivity, counting blocks at half value.
		scores[col] += threatScore(bot.grid, bot.row, col, botPlayer)
		scores[col] += threatScore(opp.grid, opp.row, col, opponent) / 2
	}

	// Center preference.
	center := domain.Columns / 2
	for _, col := range validColumns {
		dist := col - center
		if dist < 0 {
			dist = -dist
		}
		switch dist {
		case 0:
			scores[col] += scoreCenter
		case 1:
			scores[col] += scoreNearCenter
		case 2:
			scores[col] += scoreEdge
		}
	}

	return bestColumn(scores)
}

// bestColumn picks the highest score, breaking ties toward the center.
func bestColumn(scores map[int]int) int {
	center := domain.Columns / 2
	maxScore := -1 << 31
	best := center

	for col := 0; col < domain.Columns; col++ {
		score, ok := scores[col]
		if !ok {
			continue
		}
		if score > maxScore {
			maxScore = score
			best = col
		} else if score == maxScore && abs(col-center) < abs(best-center) {
			best = col
		}
	}

	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
