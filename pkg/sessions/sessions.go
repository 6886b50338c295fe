package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tmorrisey/pairs/pkg/game"
	"github.com/tmorrisey/pairs/pkg/game/types"
	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/messages"
	"github.com/tmorrisey/pairs/pkg/notify"
	"github.com/tmorrisey/pairs/pkg/queue"
	"github.com/tmorrisey/pairs/pkg/scheduler"
	"github.com/tmorrisey/pairs/pkg/state"
	"github.com/tmorrisey/pairs/pkg/workers"
)

const (
	// EventQueueCapacity bounds how many unprocessed events a session holds.
	EventQueueCapacity = 256
	// UpdatesBufferSize bounds how many unread state updates a session holds
	// before the loop starts dropping them.
	UpdatesBufferSize = 16
)

// Session is one live single-player game: its queue, its loop goroutine and
// the channels around them.
type Session struct {
	ID           string
	EventQueue   queue.Queue
	StateManager state.StateManager
	// Updates streams server messages (state updates, win announcements).
	// Single consumer; with no consumer the loop drops updates.
	Updates   <-chan *messages.Message
	CreatedAt time.Time

	cancel context.CancelFunc
}

// Enqueue injects a game event into the session's serialized queue.
func (s *Session) Enqueue(event types.Event) error {
	return s.EventQueue.Enqueue(event)
}

// Manager owns all live sessions.
type Manager struct {
	lock     sync.RWMutex
	sessions map[string]*Session

	engineConfig   *game.Config
	notifier       notify.Notifier
	saveResultChan chan<- workers.SaveResultRequest
	loopInterval   time.Duration
}

type NewManagerOptions struct {
	// EngineConfig defaults to game.DefaultConfig().
	EngineConfig *game.Config
	// Notifier receives win announcements. Defaults to the log notifier.
	Notifier notify.Notifier
	// SaveResultChan receives completed-game records. Optional.
	SaveResultChan chan<- workers.SaveResultRequest
	// LoopInterval is passed to each session's game loop. Optional.
	LoopInterval time.Duration
}

func NewManager(opts NewManagerOptions) *Manager {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier()
	}
	return &Manager{
		sessions:       make(map[string]*Session),
		engineConfig:   opts.EngineConfig,
		notifier:       notifier,
		saveResultChan: opts.SaveResultChan,
		loopInterval:   opts.LoopInterval,
	}
}

// Create starts a new session. boardSize 0 means the configured default; any
// other value must be even and within the configured bounds.
func (m *Manager) Create(ctx context.Context, boardSize int) (*Session, error) {
	engine := game.NewEngine(game.NewEngineOptions{
		Config: m.engineConfig,
	})
	cfg := engine.Config()
	if boardSize != 0 {
		if boardSize%2 != 0 || boardSize < cfg.MinBoardSize || boardSize > cfg.MaxBoardSize {
			return nil, fmt.Errorf("board size must be even and between %d and %d, got %d",
				cfg.MinBoardSize, cfg.MaxBoardSize, boardSize)
		}
	}

	size := boardSize
	if size == 0 {
		size = cfg.DefaultBoardSize
	}

	id := uuid.NewString()
	eventQueue := queue.NewInMemoryQueue(EventQueueCapacity)
	updates := make(chan *messages.Message, UpdatesBufferSize)
	initialState := engine.NewGame(size)
	stateManager := state.NewInMemoryStateManager(initialState)

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		SessionID:      id,
		Engine:         engine,
		EventQueue:     eventQueue,
		Scheduler:      scheduler.NewTimerScheduler(eventQueue),
		Notifier:       m.notifier,
		StateManager:   stateManager,
		SaveResultChan: m.saveResultChan,
		Updates:        updates,
		LoopInterval:   m.loopInterval,
		InitialState:   initialState,
	})

	sessionCtx, cancel := context.WithCancel(ctx)
	session := &Session{
		ID:           id,
		EventQueue:   eventQueue,
		StateManager: stateManager,
		Updates:      updates,
		CreatedAt:    time.Now(),
		cancel:       cancel,
	}

	m.lock.Lock()
	m.sessions[id] = session
	m.lock.Unlock()

	go func() {
		if err := gameManager.Start(sessionCtx); err != nil {
			log.Error("Game loop for session %s stopped: %v", id, err)
		}
	}()

	log.Info("Created session %s", id)
	return session, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Remove stops a session's game loop and forgets it.
func (m *Manager) Remove(id string) bool {
	m.lock.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.lock.Unlock()

	if !ok {
		return false
	}
	session.cancel()
	log.Info("Removed session %s", id)
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.sessions)
}

// Shutdown stops every session.
func (m *Manager) Shutdown() {
	m.lock.Lock()
	defer m.lock.Unlock()
	for id, session := range m.sessions {
		session.cancel()
		delete(m.sessions, id)
	}
}
