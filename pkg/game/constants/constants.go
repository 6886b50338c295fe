package constants

import "time"

const (
	// MinBoardSize is the smallest playable grid dimension
	MinBoardSize int = 2
	// MaxBoardSize is the largest playable grid dimension
	MaxBoardSize int = 6
	// DefaultBoardSize is the grid dimension used for new and reset games
	DefaultBoardSize int = 4
	// ResizeStep is the amount a resize request changes the grid dimension
	ResizeStep int = 2

	// GameOverDelay is the pause between revealing the final pair and
	// announcing the win
	GameOverDelay time.Duration = 100 * time.Millisecond
	// HideDelay is how long two mismatched tiles stay visible before they
	// are turned face down again
	HideDelay time.Duration = 200 * time.Millisecond
)
