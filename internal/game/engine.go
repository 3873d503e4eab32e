package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invokesim/invoke-server-go/internal/game/catalog"
	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// Engine is the match-hosting contract the transport layer depends on.
type Engine interface {
	// StartMatch creates a match seeded for reproducible shuffles and rolls,
	// returning its id.
	StartMatch(seed int64) (string, error)

	// SubmitAction applies one player action and then advances the engine
	// until it waits for a player again or the match ends.
	SubmitAction(matchID string, pid core.Pid, action core.PlayerAction) error

	// View returns the match as seen by viewer; the opponent's hidden
	// information is reduced to counts.
	View(matchID string, viewer core.Pid) (*GameView, error)

	// WaitingFor reports which player the match is blocked on.
	WaitingFor(matchID string) (core.Pid, bool, error)

	// EndMatch discards the match state.
	EndMatch(matchID string) error
}

// MatchOutcome summarizes a finished match for persistence.
type MatchOutcome struct {
	MatchID    string
	Seed       int64
	Winner     core.Pid // 0 on a draw
	Rounds     int
	Steps      int
	FinishedAt time.Time
}

// InvokeEngine hosts live matches on the rules engine.
type InvokeEngine struct {
	logger   *zap.Logger
	recorder *ReplayRecorder

	mu         sync.RWMutex
	matches    map[string]*match
	onMatchEnd func(MatchOutcome)
}

type match struct {
	id        string
	seed      int64
	createdAt time.Time

	mu    sync.Mutex
	state *core.GameState
	steps int
}

// NewInvokeEngine creates an engine. recorder may be nil to disable replay
// recording.
func NewInvokeEngine(logger *zap.Logger, recorder *ReplayRecorder) *InvokeEngine {
	return &InvokeEngine{
		logger:   logger,
		recorder: recorder,
		matches:  make(map[string]*match),
	}
}

// SetMatchEndHook registers a callback invoked from EndMatch when the match
// actually reached its terminal phase. Set it before serving traffic.
func (e *InvokeEngine) SetMatchEndHook(fn func(MatchOutcome)) {
	e.mu.Lock()
	e.onMatchEnd = fn
	e.mu.Unlock()
}

// StartMatch assembles the standard catalog match and advances it to the
// first player decision.
func (e *InvokeEngine) StartMatch(seed int64) (string, error) {
	id := uuid.NewString()
	rng := rand.New(rand.NewSource(seed))
	state := core.NewGameState(
		core.NewDefaultMode(),
		catalog.NewRegistry(),
		rng,
		core.NewPlayerState(catalog.DefaultRoster(), catalog.DefaultDeck()),
		core.NewPlayerState(catalog.DefaultRoster(), catalog.DefaultDeck()),
	)
	m := &match{id: id, seed: seed, createdAt: time.Now(), state: state}

	e.mu.Lock()
	e.matches[id] = m
	e.mu.Unlock()

	if e.recorder != nil {
		e.recorder.StartRecording(id)
	}

	m.mu.Lock()
	e.recordLocked(m)
	e.advanceLocked(m)
	m.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("match started",
			zap.String("match_id", id),
			zap.Int64("seed", seed),
		)
	}
	return id, nil
}

func (e *InvokeEngine) lookup(matchID string) (*match, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return m, nil
}

// SubmitAction applies one player action. An illegal action leaves the match
// unchanged and returns an error wrapping core.ErrIllegalAction.
func (e *InvokeEngine) SubmitAction(matchID string, pid core.Pid, action core.PlayerAction) error {
	m, err := e.lookup(matchID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.state.StepAction(pid, action)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("action rejected",
				zap.String("match_id", matchID),
				zap.Stringer("pid", pid),
				zap.String("action", action.ActionName()),
				zap.Error(err),
			)
		}
		return err
	}
	m.state = next
	e.recordLocked(m)
	e.advanceLocked(m)

	if e.logger != nil {
		e.logger.Debug("action applied",
			zap.String("match_id", matchID),
			zap.Stringer("pid", pid),
			zap.String("action", action.ActionName()),
			zap.String("phase", m.state.Phase().Name()),
			zap.Int("round", m.state.Round()),
		)
	}
	return nil
}

// advanceLocked drains engine self-steps until the match waits for a player
// or ends. Caller holds m.mu.
func (e *InvokeEngine) advanceLocked(m *match) {
	for !m.state.GameEnd() {
		if _, waiting := m.state.WaitingFor(); waiting {
			return
		}
		m.state = m.state.Step()
		m.steps++
		e.recordLocked(m)
	}
}

func (e *InvokeEngine) recordLocked(m *match) {
	if e.recorder == nil {
		return
	}
	view := BuildView(m.state, ViewerOmniscient)
	view.MatchID = m.id
	e.recorder.RecordState(m.id, view)
}

// View returns the match as seen by viewer.
func (e *InvokeEngine) View(matchID string, viewer core.Pid) (*GameView, error) {
	m, err := e.lookup(matchID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	view := BuildView(m.state, viewer)
	view.MatchID = m.id
	view.CreatedAt = m.createdAt
	return view, nil
}

// WaitingFor reports which player the match is blocked on.
func (e *InvokeEngine) WaitingFor(matchID string) (core.Pid, bool, error) {
	m, err := e.lookup(matchID)
	if err != nil {
		return 0, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pid, ok := m.state.WaitingFor()
	return pid, ok, nil
}

// EndMatch discards the match; its replay, if recorded, stays with the
// recorder until saved or cleared. A match that reached its terminal phase is
// reported to the match-end hook.
func (e *InvokeEngine) EndMatch(matchID string) error {
	e.mu.Lock()
	m, ok := e.matches[matchID]
	delete(e.matches, matchID)
	hook := e.onMatchEnd
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	if e.recorder != nil {
		e.recorder.StopRecording(matchID)
	}

	m.mu.Lock()
	steps := m.steps
	ended := m.state.GameEnd()
	winner, _ := m.state.Winner()
	rounds := m.state.Round()
	m.mu.Unlock()

	if hook != nil && ended {
		hook(MatchOutcome{
			MatchID:    matchID,
			Seed:       m.seed,
			Winner:     winner,
			Rounds:     rounds,
			Steps:      steps,
			FinishedAt: time.Now(),
		})
	}
	if e.logger != nil {
		e.logger.Info("match ended",
			zap.String("match_id", matchID),
			zap.Int("engine_steps", steps),
		)
	}
	return nil
}
