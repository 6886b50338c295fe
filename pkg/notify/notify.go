package notify

import (
	"time"

	"github.com/tmorrisey/pairs/pkg/log"
)

// Notifier is the port the engine's execution context uses to announce a
// cleared board. Implementations must tolerate being called from the game
// loop goroutine; a failing notifier must not affect engine state.
type Notifier interface {
	AnnounceWin(elapsed time.Duration)
}

// LogNotifier announces wins on the server log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) AnnounceWin(elapsed time.Duration) {
	log.Info("Board cleared in %.1f seconds", elapsed.Seconds())
}
