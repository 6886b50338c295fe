package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmorrisey/pairs/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS results (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	board_size INTEGER NOT NULL,
	elapsed_seconds REAL NOT NULL,
	finished_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_board_size ON results (board_size, elapsed_seconds);
`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveResult(ctx context.Context, result *models.GameResult) error {
	q := `
	INSERT INTO results (session_id, board_size, elapsed_seconds, finished_at)
	VALUES (?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, result.SessionID, result.BoardSize, result.ElapsedSeconds, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) BestResults(ctx context.Context, boardSize int, limit int) ([]*models.GameResult, error) {
	q := `
	SELECT id, session_id, board_size, elapsed_seconds, finished_at
	FROM results
	WHERE board_size = ?
	ORDER BY elapsed_seconds ASC
	LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, boardSize, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*models.GameResult
	for rows.Next() {
		result := &models.GameResult{}
		if err := rows.Scan(&result.ID, &result.SessionID, &result.BoardSize, &result.ElapsedSeconds, &result.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (r *SQLiteRepository) Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	q := `
	SELECT board_size, MIN(elapsed_seconds), COUNT(*)
	FROM results
	GROUP BY board_size
	ORDER BY board_size ASC;
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		if err := rows.Scan(&entry.BoardSize, &entry.BestSeconds, &entry.Games); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
