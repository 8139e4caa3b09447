// Package bot is the heuristic opponent: a pure function from a board
// position to a column choice, with three difficulty levels. It only ever
// works on copies of the grid and never mutates the caller's board.
package bot

import "connect-four-server/internal/domain"

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ChooseColumn picks the column the bot plays for the given position.
// Returns -1 when no move is possible.
func ChooseColumn(grid [][]domain.PlayerID, botPlayer domain.PlayerID, difficulty Difficulty) int {
	switch difficulty {
	case Easy:
		return chooseEasy(grid, botPlayer)
	case Hard:
		return chooseMinimax(grid, botPlayer)
	default:
		return chooseMedium(grid, botPlayer)
	}
}
