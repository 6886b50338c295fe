package models

import "time"

// GameResult is one completed game.
type GameResult struct {
	ID             int64     `json:"id,omitempty"`
	SessionID      string    `json:"session_id"`
	BoardSize      int       `json:"board_size"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	FinishedAt     time.Time `json:"finished_at"`
}

// LeaderboardEntry summarizes completed games for one board size.
type LeaderboardEntry struct {
	BoardSize   int     `json:"board_size"`
	BestSeconds float64 `json:"best_seconds"`
	Games       int     `json:"games"`
}
