package core

import "github.com/invokesim/invoke-server-go/internal/game/dice"

// rollPhase rolls each player's dice for the round in one engine step and
// hands over to the action phase. Dice are rolled as-is, without a reroll
// window.
type rollPhase struct{}

func (rollPhase) Name() string { return "RollPhase" }

func (rollPhase) Step(s *GameState) *GameState {
	size := s.Mode().DiceRolledPerRound()
	b := s.Builder()
	for _, pid := range []Pid{P1, P2} {
		rolled := dice.FromRandom(s.RNG(), size)
		b.FPlayer(pid, func(p *PlayerState) *PlayerState {
			return p.Builder().
				Act(ActPassiveWait).
				Dice(p.Dice().AddActual(rolled)).
				Build()
		})
	}
	return b.Phase(s.Mode().ActionPhase()).Build()
}

func (rollPhase) StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error) {
	return nil, illegalActionf("%s not allowed during the roll phase", action.ActionName())
}

func (rollPhase) WaitingFor(s *GameState) (Pid, bool) {
	return 0, false
}
