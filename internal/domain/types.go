package domain

// PlayerID identifies the owner of a cell. Red always moves first.
type PlayerID int

const (
	Empty  PlayerID = 0
	Red    PlayerID = 1
	Yellow PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Color names as they travel on the wire.
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
)

func (p PlayerID) ColorName() string {
	switch p {
	case Red:
		return ColorRed
	case Yellow:
		return ColorYellow
	}
	return ""
}

// Opponent returns the other player.
func (p PlayerID) Opponent() PlayerID {
	if p == Red {
		return Yellow
	}
	return Red
}

// GameStatus only moves forward: in_progress transitions to exactly one
// terminal value and never reverts within a game instance.
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusRedWins    GameStatus = "red_wins"
	StatusYellowWins GameStatus = "yellow_wins"
	StatusDraw       GameStatus = "draw"
)

func (s GameStatus) Terminal() bool {
	return s != StatusInProgress
}

// WinStatus returns the terminal status for a win by the given player.
func WinStatus(p PlayerID) GameStatus {
	if p == Red {
		return StatusRedWins
	}
	return StatusYellowWins
}

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrGameOver      Error = "game is not in progress"
	ErrInvalidColumn Error = "column out of range"
	ErrColumnFull    Error = "column is full"
	ErrNotYourTurn   Error = "not your turn"
)

// MaxUsernameLen bounds usernames at login time, counted in runes.
const MaxUsernameLen = 20
