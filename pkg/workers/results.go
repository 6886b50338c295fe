package workers

import (
	"context"
	"time"

	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/repositories"
	"github.com/tmorrisey/pairs/pkg/repositories/models"
)

// SaveResultRequest asks the worker to record one completed game.
type SaveResultRequest struct {
	SessionID  string
	BoardSize  int
	Elapsed    time.Duration
	FinishedAt time.Time
}

type SaveResultWorker struct {
	repository     repositories.Repository
	saveResultChan <-chan SaveResultRequest
}

type NewSaveResultWorkerOptions struct {
	Repository     repositories.Repository
	SaveResultChan <-chan SaveResultRequest
}

// NewSaveResultWorker creates a worker that drains completed-game results
// from the game loops and writes them to the repository. Failures are logged
// and dropped; recording results must never stall a game.
func NewSaveResultWorker(opts NewSaveResultWorkerOptions) *SaveResultWorker {
	return &SaveResultWorker{
		repository:     opts.Repository,
		saveResultChan: opts.SaveResultChan,
	}
}

func (w *SaveResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case request := <-w.saveResultChan:
			w.saveResult(ctx, request)
		}
	}
}

func (w *SaveResultWorker) saveResult(ctx context.Context, request SaveResultRequest) {
	result := &models.GameResult{
		SessionID:      request.SessionID,
		BoardSize:      request.BoardSize,
		ElapsedSeconds: request.Elapsed.Seconds(),
		FinishedAt:     request.FinishedAt,
	}
	if err := w.repository.SaveResult(ctx, result); err != nil {
		log.Error("Failed to save game result: %v", err)
	}
}
