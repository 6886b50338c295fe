package game

import (
	"context"
	"fmt"
	"time"

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
	// DefaultLoopInterval is how often the game loop drains its event queue.
	DefaultLoopInterval = 10 * time.Millisecond
)

// GameManager runs one game session: it drains the session's event queue,
// feeds events through the engine one at a time, and carries out the side
// effects the engine requests (scheduling, win announcements, result saves,
// state publication). All transitions are serialized through this loop;
// nothing else writes game state.
type GameManager struct {
	sessionID      string
	engine         *Engine
	eventQueue     queue.Queue
	scheduler      scheduler.Scheduler
	notifier       notify.Notifier
	stateManager   state.StateManager
	saveResultChan chan<- workers.SaveResultRequest
	updates        chan<- *messages.Message
	loopInterval   time.Duration
	initialSize    int
	initialState   *types.GameState
	now            func() time.Time

	gameState *types.GameState
}

type NewGameManagerOptions struct {
	SessionID    string
	Engine       *Engine
	EventQueue   queue.Queue
	Scheduler    scheduler.Scheduler
	Notifier     notify.Notifier
	StateManager state.StateManager
	// SaveResultChan receives a record of each completed game. Optional.
	SaveResultChan chan<- workers.SaveResultRequest
	// Updates receives a server message after every state change. Optional.
	// Sends never block; if the channel is full the update is dropped.
	Updates chan<- *messages.Message
	// LoopInterval defaults to DefaultLoopInterval.
	LoopInterval time.Duration
	// InitialBoardSize defaults to the engine config's DefaultBoardSize.
	InitialBoardSize int
	// InitialState, when set, is used instead of generating a fresh board on
	// Start. The session manager uses this so reads work before the loop's
	// first tick.
	InitialState *types.GameState
	// Now is the clock used for elapsed-time computation. Defaults to time.Now.
	Now func() time.Time
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	loopInterval := opts.LoopInterval
	if loopInterval <= 0 {
		loopInterval = DefaultLoopInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &GameManager{
		sessionID:      opts.SessionID,
		engine:         opts.Engine,
		eventQueue:     opts.EventQueue,
		scheduler:      opts.Scheduler,
		notifier:       opts.Notifier,
		stateManager:   opts.StateManager,
		saveResultChan: opts.SaveResultChan,
		updates:        opts.Updates,
		loopInterval:   loopInterval,
		initialSize:    opts.InitialBoardSize,
		initialState:   opts.InitialState,
		now:            now,
	}
}

// Start initializes the game state and runs the loop until ctx is done.
func (gm *GameManager) Start(ctx context.Context) error {
	if err := gm.initializeGameState(); err != nil {
		return fmt.Errorf("failed to initialize game state: %w", err)
	}

	ticker := time.NewTicker(gm.loopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			gm.processEvents()
		}
	}
}

func (gm *GameManager) initializeGameState() error {
	if gm.initialState != nil {
		gm.gameState = gm.initialState
	} else {
		size := gm.initialSize
		if size == 0 {
			size = gm.engine.Config().DefaultBoardSize
		}
		gm.gameState = gm.engine.NewGame(size)
	}
	if err := gm.stateManager.Set(gm.gameState); err != nil {
		return err
	}
	gm.publishState()
	return nil
}

// processEvents drains all pending events and applies them in arrival order.
// A timer firing between two drains simply lands in the next batch; within a
// batch, order is exactly arrival order, so a late Hide can still fire after
// a new turn started (the inherited mismatch-hide race).
func (gm *GameManager) processEvents() {
	for _, item := range gm.eventQueue.ReadAllMessages() {
		event, ok := item.(types.Event)
		if !ok {
			log.Error("Dropping non-event queue item of type %T", item)
			continue
		}

		next, scheduled := gm.engine.Transition(gm.gameState, event)
		if scheduled != nil {
			gm.scheduler.Schedule(scheduled.Delay, scheduled.Event)
		}
		if _, isGameOver := event.(types.GameOverEvent); isGameOver {
			gm.handleGameOver()
		}
		if next == gm.gameState {
			log.Trace("Ignored %T", event)
			continue
		}

		gm.gameState = next
		if err := gm.stateManager.Set(next); err != nil {
			log.Error("Failed to update shared game state: %v", err)
		}
		gm.publishState()
	}
}

// handleGameOver announces the win and records the result. The notifier is
// external code; a panic there must not take down the loop or corrupt state.
func (gm *GameManager) handleGameOver() {
	// A GameOver scheduled before a Reset or NewGame fires against the fresh
	// board. An unfinished board is not a win and must not be recorded.
	if !gm.gameState.Won() {
		log.Trace("Ignoring game over for an unfinished board")
		return
	}

	elapsed := gm.now().Sub(gm.gameState.StartTime)

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Win notifier panicked: %v", r)
			}
		}()
		gm.notifier.AnnounceWin(elapsed)
	}()

	gm.publishWin(elapsed)

	if gm.saveResultChan == nil {
		return
	}
	request := workers.SaveResultRequest{
		SessionID:  gm.sessionID,
		BoardSize:  gm.gameState.BoardSize,
		Elapsed:    elapsed,
		FinishedAt: gm.now(),
	}
	select {
	case gm.saveResultChan <- request:
	default:
		log.Warn("Result channel full, dropping result for session %s", gm.sessionID)
	}
}

func (gm *GameManager) publishState() {
	msg, err := messages.NewServerMessage(messages.MessageTypeServerState, ServerStateFromState(gm.gameState))
	if err != nil {
		log.Error("Failed to build state update: %v", err)
		return
	}
	gm.publish(msg)
}

func (gm *GameManager) publishWin(elapsed time.Duration) {
	msg, err := messages.NewServerMessage(messages.MessageTypeServerWin, &messages.ServerWin{
		BoardSize:      gm.gameState.BoardSize,
		ElapsedSeconds: elapsed.Seconds(),
	})
	if err != nil {
		log.Error("Failed to build win message: %v", err)
		return
	}
	gm.publish(msg)
}

func (gm *GameManager) publish(msg *messages.Message) {
	if gm.updates == nil {
		return
	}
	select {
	case gm.updates <- msg:
	default:
		log.Trace("Updates channel full, dropping %s message", msg.Type)
	}
}
