package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tmorrisey/pairs/pkg/game/types"
	"github.com/tmorrisey/pairs/pkg/queue"
)

func TestTimerScheduler_deliversAfterDelay(t *testing.T) {
	q := queue.NewInMemoryQueue(4)
	s := NewTimerScheduler(q)

	s.Schedule(5*time.Millisecond, types.GameOverEvent{})
	assert.Equal(t, 0, q.Size(), "scheduling must not deliver synchronously")

	assert.Eventually(t, func() bool {
		return q.Size() == 1
	}, time.Second, time.Millisecond)

	items := q.ReadAllMessages()
	assert.IsType(t, types.GameOverEvent{}, items[0])
}

func TestTimerScheduler_stoppedHandleDoesNotDeliver(t *testing.T) {
	q := queue.NewInMemoryQueue(4)
	s := NewTimerScheduler(q)

	handle := s.Schedule(50*time.Millisecond, types.GameOverEvent{})
	assert.True(t, handle.Stop())

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, q.Size())
}
