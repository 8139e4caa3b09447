package domain

// Game is the full state of one Connect Four board. It has no notion of
// connections or sessions; a MatchSession owns exactly one Game and is the
// only mutator.
type Game struct {
	RedName     string
	YellowName  string
	Grid        [][]PlayerID
	CurrentTurn PlayerID
	Status      GameStatus
	MoveCount   int
}

func NewGame(redName, yellowName string) *Game {
	return &Game{
		RedName:     redName,
		YellowName:  yellowName,
		Grid:        NewGrid(),
		CurrentTurn: Red,
		Status:      StatusInProgress,
	}
}

// MakeMove drops a disk for the current player and returns the row it
// landed in. The win check runs before the draw check, and the turn only
// flips while the game is still in progress. A rejected move changes
// nothing, including whose turn it is.
func (g *Game) MakeMove(column int) (int, error) {
	if g.Status != StatusInProgress {
		return -1, ErrGameOver
	}
	if column < 0 || column >= Columns {
		return -1, ErrInvalidColumn
	}
	if g.Grid[0][column] != Empty {
		return -1, ErrColumnFull
	}

	row, err := DropDisk(g.Grid, column, g.CurrentTurn)
	if err != nil {
		return -1, err
	}

	g.MoveCount++

	if CheckWin(g.Grid, row, column, g.CurrentTurn) {
		g.Status = WinStatus(g.CurrentTurn)
		return row, nil
	}

	if IsGridFull(g.Grid) {
		g.Status = StatusDraw
		return row, nil
	}

	g.CurrentTurn = g.CurrentTurn.Opponent()
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status.Terminal()
}

// Winner returns the winning player, or Empty for in-progress and drawn games.
func (g *Game) Winner() PlayerID {
	switch g.Status {
	case StatusRedWins:
		return Red
	case StatusYellowWins:
		return Yellow
	}
	return Empty
}

// Clone returns a fully independent deep copy.
func (g *Game) Clone() *Game {
	dup := *g
	dup.Grid = CopyGrid(g.Grid)
	return &dup
}

// Snapshot captures an immutable copy of the board for broadcasting.
// Every update on the wire carries a snapshot, never the live grid.
func (g *Game) Snapshot() *BoardSnapshot {
	return &BoardSnapshot{
		Grid:        CopyGrid(g.Grid),
		CurrentTurn: g.CurrentTurn,
		Status:      g.Status,
		RedName:     g.RedName,
		YellowName:  g.YellowName,
	}
}
