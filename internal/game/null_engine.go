package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// NullEngine is a stub match host that records submitted actions without
// running any rules, for transport-level testing.
type NullEngine struct {
	logger *zap.Logger

	mu      sync.RWMutex
	matches map[string]*nullMatchState
}

type nullMatchState struct {
	Seed    int64
	Actions []core.PlayerAction
}

// NewNullEngine creates a null engine.
func NewNullEngine(logger *zap.Logger) *NullEngine {
	return &NullEngine{
		logger:  logger,
		matches: make(map[string]*nullMatchState),
	}
}

// StartMatch registers an empty match.
func (n *NullEngine) StartMatch(seed int64) (string, error) {
	id := uuid.NewString()

	n.mu.Lock()
	n.matches[id] = &nullMatchState{Seed: seed}
	n.mu.Unlock()

	if n.logger != nil {
		n.logger.Info("null engine started match",
			zap.String("match_id", id),
			zap.Int64("seed", seed),
		)
	}
	return id, nil
}

// SubmitAction records the action for later inspection.
func (n *NullEngine) SubmitAction(matchID string, pid core.Pid, action core.PlayerAction) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	state, ok := n.matches[matchID]
	if !ok {
		return fmt.Errorf("match %s not found", matchID)
	}
	state.Actions = append(state.Actions, action)
	if len(state.Actions) > 200 {
		state.Actions = state.Actions[len(state.Actions)-200:]
	}

	if n.logger != nil {
		n.logger.Debug("null engine recorded action",
			zap.String("match_id", matchID),
			zap.Stringer("pid", pid),
			zap.String("action", action.ActionName()),
		)
	}
	return nil
}

// View returns an empty view carrying only the match id.
func (n *NullEngine) View(matchID string, _ core.Pid) (*GameView, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, ok := n.matches[matchID]; !ok {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return &GameView{MatchID: matchID}, nil
}

// WaitingFor reports no waiting player.
func (n *NullEngine) WaitingFor(matchID string) (core.Pid, bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if _, ok := n.matches[matchID]; !ok {
		return 0, false, fmt.Errorf("match %s not found", matchID)
	}
	return 0, false, nil
}

// EndMatch removes the match state.
func (n *NullEngine) EndMatch(matchID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.matches, matchID)
	if n.logger != nil {
		n.logger.Info("null engine ended match", zap.String("match_id", matchID))
	}
	return nil
}

// Actions returns the recorded actions of a match.
func (n *NullEngine) Actions(matchID string) ([]core.PlayerAction, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	state, ok := n.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return append([]core.PlayerAction(nil), state.Actions...), nil
}
