package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tmorrisey/pairs/pkg/repositories/models"
)

type fakeRepository struct {
	lock    sync.Mutex
	results []*models.GameResult
}

func (r *fakeRepository) Close(ctx context.Context) error {
	return nil
}

func (r *fakeRepository) SaveResult(ctx context.Context, result *models.GameResult) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.results = append(r.results, result)
	return nil
}

func (r *fakeRepository) BestResults(ctx context.Context, boardSize int, limit int) ([]*models.GameResult, error) {
	return nil, nil
}

func (r *fakeRepository) Leaderboard(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	return nil, nil
}

func (r *fakeRepository) saved() []*models.GameResult {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*models.GameResult(nil), r.results...)
}

func TestSaveResultWorker(t *testing.T) {
	repository := &fakeRepository{}
	saveResultChan := make(chan SaveResultRequest, 1)
	worker := NewSaveResultWorker(NewSaveResultWorkerOptions{
		Repository:     repository,
		SaveResultChan: saveResultChan,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	finishedAt := time.Date(2024, 3, 1, 12, 0, 30, 0, time.UTC)
	saveResultChan <- SaveResultRequest{
		SessionID:  "session-1",
		BoardSize:  4,
		Elapsed:    30 * time.Second,
		FinishedAt: finishedAt,
	}

	assert.Eventually(t, func() bool {
		return len(repository.saved()) == 1
	}, time.Second, time.Millisecond)

	result := repository.saved()[0]
	assert.Equal(t, "session-1", result.SessionID)
	assert.Equal(t, 4, result.BoardSize)
	assert.Equal(t, 30.0, result.ElapsedSeconds)
	assert.Equal(t, finishedAt, result.FinishedAt)
}
