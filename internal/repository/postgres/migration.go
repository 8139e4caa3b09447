package postgres

import "database/sql"

// RunMigrations creates the games table if it does not exist yet.
func RunMigrations(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS games (
		match_id         TEXT PRIMARY KEY,
		red_player       TEXT NOT NULL,
		yellow_player    TEXT NOT NULL,
		winner_name      TEXT,
		status           TEXT NOT NULL,
		total_moves      INT NOT NULL,
		duration_seconds INT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		finished_at      TIMESTAMPTZ NOT NULL,
		final_board      JSONB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games (finished_at DESC);
	`
	_, err := db.Exec(query)
	return err
}
