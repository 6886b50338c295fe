package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tmorrisey/pairs/pkg/repositories/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS results (
	id BIGSERIAL PRIMARY KEY,
	session_id TEXT NOT NULL,
	board_size INTEGER NOT NULL,
	elapsed_seconds DOUBLE PRECISION NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_board_size ON results (board_size, elapsed_seconds);
`

type PostgresRepository struct {
	conn *pgx.Conn
}

func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveResult(ctx context.Context, result *models.GameResult) error {
	q := `
	INSERT INTO results (session_id, board_size, elapsed_seconds, finished_at)
	VALUES ($1, $2, $3, $4);
	`
	_, err := r.conn.Exec(ctx, q, result.SessionID, result.BoardSize, result.ElapsedSeconds, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

func (r *PostgresRepository) BestResults(ctx context.Context, boardSize int, limit int) ([]*models.GameResult, error) {
	q := `
	SELECT id, session_id, board_size, elapsed_seconds, finished_at
	FROM results
	WHERE board_size = $1
	ORDER BY elapsed_seconds ASC
	LIMIT $2;
	`
	rows, err := r.conn.Query(ctx, q, boardSize, limit)
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

func (r *PostgresRepository) Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	q := `
	SELECT board_size, MIN(elapsed_seconds), COUNT(*)
	FROM results
	GROUP BY board_size
	ORDER BY board_size ASC;
	`
	rows, err := r.conn.Query(ctx, q)
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
