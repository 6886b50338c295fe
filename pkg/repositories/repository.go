package repositories

import (
	"context"

	"github.com/tmorrisey/pairs/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	// SaveResult records one completed game.
	SaveResult(ctx context.Context, result *models.GameResult) error
	// BestResults returns the fastest completed games for a board size.
	BestResults(ctx context.Context, boardSize int, limit int) ([]*models.GameResult, error)
	// Leaderboard returns per-board-size best times.
	Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error)
}
