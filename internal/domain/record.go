package domain

import "time"

// GameRecord is the durable summary of a finished game, persisted by the
// optional history repository.
type GameRecord struct {
	MatchID         string
	RedPlayer       string
	YellowPlayer    string
	WinnerName      string // empty for draws
	Status          GameStatus
	TotalMoves      int
	DurationSeconds int
	CreatedAt       time.Time
	FinishedAt      time.Time
	FinalBoard      [][]PlayerID
}
