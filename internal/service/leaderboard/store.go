// Package leaderboard is a win-counter store keyed by username, with a
// file-backed default and an optional Redis backend.
package leaderboard

import "context"

// Entry is one leaderboard row.
type Entry struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
}

// Store exposes the two operations the rest of the server needs.
type Store interface {
	RecordWin(ctx context.Context, username string) error
	Top(ctx context.Context, n int) ([]Entry, error)
}
