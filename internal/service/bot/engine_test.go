package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connect-four-server/internal/domain"
)

// botGrid builds a grid from one string per row, top row first.
func botGrid(t *testing.T, rows []string) [][]domain.PlayerID {
	t.Helper()
	require.Len(t, rows, domain.Rows)

	grid := domain.NewGrid()
	for r, line := range rows {
		require.Len(t, line, domain.Columns)
		for c, ch := range line {
			switch ch {
			case 'R':
				grid[r][c] = domain.Red
			case 'Y':
				grid[r][c] = domain.Yellow
			}
		}
	}
	return grid
}

var allDifficulties = []Difficulty{Easy, Medium, Hard}

func TestChooseColumnReturnsLegalMove(t *testing.T) {
	grid := domain.NewGrid()

	for _, difficulty := range allDifficulties {
		col := ChooseColumn(grid, domain.Yellow, difficulty)
		assert.True(t, domain.IsValidMove(grid, col), "%s picked illegal column %d", difficulty, col)
	}
}

func TestChooseColumnTakesImmediateWin(t *testing.T) {
	// Yellow has three stacked in column 2; dropping there wins.
	grid := botGrid(t, []string{
		".......",
		".......",
		".......",
		"..Y....",
		"..Y.R..",
		"..Y.RR.",
	})

	for _, difficulty := range allDifficulties {
		col := ChooseColumn(grid, domain.Yellow, difficulty)
		assert.Equal(t, 2, col, "%s missed the winning move", difficulty)
	}
}

func TestChooseColumnBlocksImmediateLoss(t *testing.T) {
	// Red threatens a horizontal four at column 3; yellow must block there.
	grid := botGrid(t, []string{
		".......",
		".......",
		".......",
		".......",
		".Y.....",
		"RRR...Y",
	})

	for _, difficulty := range allDifficulties {
		col := ChooseColumn(grid, domain.Yellow, difficulty)
		assert.Equal(t, 3, col, "%s failed to block", difficulty)
	}
}

func TestChooseColumnPrefersWinOverBlock(t *testing.T) {
	// Both sides have an immediate win available; the bot takes its own.
	grid := botGrid(t, []string{
		".......",
		".......",
		".......",
		"Y......",
		"Y......",
		"YRRR...",
	})

	for _, difficulty := range allDifficulties {
		col := ChooseColumn(grid, domain.Yellow, difficulty)
		assert.Equal(t, 0, col, "%s blocked instead of winning", difficulty)
	}
}

func TestChooseColumnOnFullBoard(t *testing.T) {
	grid := domain.NewGrid()
	for c := 0; c < domain.Columns; c++ {
		for r := 0; r < domain.Rows; r++ {
			if (r+c)%2 == 0 {
				grid[r][c] = domain.Red
			} else {
				grid[r][c] = domain.Yellow
			}
		}
	}

	for _, difficulty := range allDifficulties {
		assert.Equal(t, -1, ChooseColumn(grid, domain.Yellow, difficulty), "%s", difficulty)
	}
}

func TestChooseColumnNeverMutatesGrid(t *testing.T) {
	grid := botGrid(t, []string{
		".......",
		".......",
		".......",
		"..Y....",
		"..YR...",
		".RYRR..",
	})
	want := domain.CopyGrid(grid)

	for _, difficulty := range allDifficulties {
		ChooseColumn(grid, domain.Yellow, difficulty)
		assert.Equal(t, want, grid, "%s mutated the board", difficulty)
	}
}
