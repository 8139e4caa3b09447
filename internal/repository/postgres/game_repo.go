package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"connect-four-server/internal/domain"
)

// GameRepo persists finished games. Only terminal games are ever written;
// in-progress state never touches the database.
type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame upserts a finished game record.
func (r *GameRepo) SaveGame(ctx context.Context, record domain.GameRecord) error {
	boardJSON, err := json.Marshal(record.FinalBoard)
	if err != nil {
		return fmt.Errorf("marshal final board: %w", err)
	}

	var winner sql.NullString
	if record.WinnerName != "" {
		winner = sql.NullString{String: record.WinnerName, Valid: true}
	}

	query := `
	INSERT INTO games (match_id, red_player, yellow_player, winner_name, status, total_moves, duration_seconds, created_at, finished_at, final_board)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (match_id) DO UPDATE SET
		winner_name = EXCLUDED.winner_name,
		status = EXCLUDED.status,
		total_moves = EXCLUDED.total_moves,
		duration_seconds = EXCLUDED.duration_seconds,
		finished_at = EXCLUDED.finished_at,
		final_board = EXCLUDED.final_board;
	`

	_, err = r.DB.ExecContext(ctx, query,
		record.MatchID, record.RedPlayer, record.YellowPlayer, winner,
		string(record.Status), record.TotalMoves, record.DurationSeconds,
		record.CreatedAt, record.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("upsert game record: %w", err)
	}
	return nil
}

// RecentGames lists the most recently finished games, newest first.
func (r *GameRepo) RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	query := `
	SELECT match_id, red_player, yellow_player, winner_name, status, total_moves, duration_seconds, created_at, finished_at
	FROM games
	ORDER BY finished_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent games: %w", err)
	}
	defer rows.Close()

	var records []domain.GameRecord
	for rows.Next() {
		var record domain.GameRecord
		var winner sql.NullString
		var status string
		if err := rows.Scan(
			&record.MatchID, &record.RedPlayer, &record.YellowPlayer, &winner,
			&status, &record.TotalMoves, &record.DurationSeconds,
			&record.CreatedAt, &record.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan game record: %w", err)
		}
		record.WinnerName = winner.String
		record.Status = domain.GameStatus(status)
		records = append(records, record)
	}
	return records, rows.Err()
}
