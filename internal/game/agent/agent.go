// Package agent provides built-in decision makers for driving matches without
// a human: a lazy agent that forfeits every choice it can, and a random agent
// that explores the legal action space. Both are used by the self-play driver
// and the engine tests.
package agent

import (
	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// deathSwapChoice picks the replacement character when the active character
// has fallen: the first living character in bench order.
func deathSwapChoice(s *core.GameState, pid core.Pid) core.PlayerAction {
	for _, c := range s.Player(pid).Characters().All() {
		if !c.Defeated() {
			return core.DeathSwapAction{CharacterID: c.ID()}
		}
	}
	// No living character left: the engine ends the game before asking, so
	// this is unreachable in a well-formed match.
	return core.DeathSwapAction{}
}

// mustDeathSwap reports whether the waiting decision is a death swap: the
// player is asked to act while their active character is down.
func mustDeathSwap(s *core.GameState, pid core.Pid) bool {
	active, ok := s.Player(pid).Characters().Active()
	return ok && active.Defeated()
}

// LazyAgent keeps its opening hand, picks the first character and immediately
// declares end of round. It only does the unavoidable: death swaps.
type LazyAgent struct{}

func (LazyAgent) ChooseAction(s *core.GameState, pid core.Pid) core.PlayerAction {
	if mustDeathSwap(s, pid) {
		return deathSwapChoice(s, pid)
	}
	mode := s.Mode()
	switch s.Phase() {
	case mode.CardSelectPhase():
		return core.CardsSelectAction{Cards: card.Empty()}
	case mode.StartingHandSelectPhase():
		return core.CharacterSelectAction{CharacterID: firstAlive(s, pid)}
	}
	return core.EndRoundAction{}
}

func firstAlive(s *core.GameState, pid core.Pid) int {
	for _, c := range s.Player(pid).Characters().All() {
		if !c.Defeated() {
			return c.ID()
		}
	}
	return 0
}
