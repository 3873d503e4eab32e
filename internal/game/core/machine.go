package core

import "fmt"

// Agent decides a player's action when the machine reports that player must
// act. Implementations must be deterministic given the snapshot and their own
// source of randomness.
type Agent interface {
	ChooseAction(s *GameState, pid Pid) PlayerAction
}

// GameStateMachine drives a match: it alternates engine self-steps with agent
// decisions and records every snapshot in order, which doubles as the match
// replay.
type GameStateMachine struct {
	history []*GameState
	agents  map[Pid]Agent
}

// NewGameStateMachine starts a machine on an initial snapshot with one agent
// per player slot.
func NewGameStateMachine(initial *GameState, p1, p2 Agent) *GameStateMachine {
	return &GameStateMachine{
		history: []*GameState{initial},
		agents:  map[Pid]Agent{P1: p1, P2: p2},
	}
}

// State returns the latest snapshot.
func (m *GameStateMachine) State() *GameState {
	return m.history[len(m.history)-1]
}

// History returns every snapshot recorded so far, oldest first.
func (m *GameStateMachine) History() []*GameState {
	return append([]*GameState(nil), m.history...)
}

// Ended reports whether the match has reached the terminal phase.
func (m *GameStateMachine) Ended() bool {
	return m.State().GameEnd()
}

// OneStep advances the match by a single step: an engine self-step when no
// player must act, otherwise one action from the waiting player's agent.
// An agent returning an illegal action fails the match.
func (m *GameStateMachine) OneStep() error {
	s := m.State()
	if s.GameEnd() {
		return nil
	}
	pid, waiting := s.WaitingFor()
	if !waiting {
		m.history = append(m.history, s.Step())
		return nil
	}
	action := m.agents[pid].ChooseAction(s, pid)
	next, err := s.StepAction(pid, action)
	if err != nil {
		return fmt.Errorf("agent for %v chose %s: %w", pid, action.ActionName(), err)
	}
	m.history = append(m.history, next)
	return nil
}

// PlayerStep advances the match through engine self-steps and exactly one
// player decision, stopping after it resolves.
func (m *GameStateMachine) PlayerStep() error {
	for !m.Ended() {
		if _, waiting := m.State().WaitingFor(); waiting {
			return m.OneStep()
		}
		if err := m.OneStep(); err != nil {
			return err
		}
	}
	return nil
}

// StepUntilPhase advances the match until the given phase is reached or the
// match ends.
func (m *GameStateMachine) StepUntilPhase(phase Phase) error {
	for !m.Ended() && m.State().Phase() != phase {
		if err := m.OneStep(); err != nil {
			return err
		}
	}
	return nil
}

// Run plays the match to its terminal phase.
func (m *GameStateMachine) Run() error {
	for !m.Ended() {
		if err := m.OneStep(); err != nil {
			return err
		}
	}
	return nil
}
