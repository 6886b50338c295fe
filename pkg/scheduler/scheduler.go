package scheduler

import (
	"time"

	"github.com/tmorrisey/pairs/pkg/game/types"
	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/queue"
)

// Scheduler delivers an event back into a session's queue after a delay.
// Schedule must not block the caller; the event re-enters the same serialized
// queue the state machine reads from, so timers never touch game state
// directly.
type Scheduler interface {
	Schedule(delay time.Duration, event types.Event) Handle
}

// Handle allows a scheduled event to be stopped before it fires. The engine
// does not cancel anything today, but the contract keeps the option open.
type Handle interface {
	// Stop reports whether the event was prevented from firing.
	Stop() bool
}

// TimerScheduler schedules events with wall-clock timers that enqueue into
// the given queue when they fire.
type TimerScheduler struct {
	eventQueue queue.Queue
}

func NewTimerScheduler(eventQueue queue.Queue) *TimerScheduler {
	return &TimerScheduler{
		eventQueue: eventQueue,
	}
}

func (s *TimerScheduler) Schedule(delay time.Duration, event types.Event) Handle {
	timer := time.AfterFunc(delay, func() {
		if err := s.eventQueue.Enqueue(event); err != nil {
			log.Error("Failed to enqueue scheduled %T: %v", event, err)
		}
	})
	return timerHandle{timer: timer}
}

type timerHandle struct {
	timer *time.Timer
}

func (h timerHandle) Stop() bool {
	return h.timer.Stop()
}
