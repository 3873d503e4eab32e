package core

import "github.com/invokesim/invoke-server-go/internal/game/dice"

// endPhase runs the end-of-round bookkeeping as queued effects: the checkout
// broadcast (summons striking, per-round counters resetting), the round-end
// cleanup broadcast, then both players marked done. A character falling during
// checkout suspends the drain in a death-swap sub-phase. Once both players are
// done the next round begins, or the game ends at the round limit.
type endPhase struct{}

func (endPhase) Name() string { return "EndPhase" }

func (endPhase) Step(s *GameState) *GameState {
	switch {
	case bothAct(s, ActPassiveWait):
		return endPhaseStart(s)
	case executingEffects(s):
		return s.ExecuteOne()
	case bothAct(s, ActEnd) && s.EffectStack().IsEmpty():
		return nextRound(s)
	}
	panic("core: end phase stepped while waiting for a player")
}

func endPhaseStart(s *GameState) *GameState {
	return s.Builder().FPlayer(s.ActivePid(), func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActActiveWait).Build()
	}).FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(
			EndPhaseCheckoutEffect{},
			EndRoundEffect{},
			SetBothPlayerActEffect{Act: ActEnd},
		)
	}).Build()
}

// nextRound draws each player's cards for the new round and clears leftover
// dice, then hands over to the roll phase. Past the round limit the game ends
// instead.
func nextRound(s *GameState) *GameState {
	round := s.Round() + 1
	if round > s.Mode().RoundLimit() {
		return s.Builder().Phase(s.Mode().GameEndPhase()).Build()
	}
	drawn := s.Mode().CardsDrawnPerRound()
	b := s.Builder().Phase(s.Mode().RollPhase()).Round(round)
	for _, pid := range []Pid{P1, P2} {
		deck, cards := s.Player(pid).Deck().PickRandom(s.RNG(), drawn)
		b.FPlayer(pid, func(p *PlayerState) *PlayerState {
			return p.Builder().
				Act(ActPassiveWait).
				Deck(deck).
				Hand(p.Hand().AddAll(cards)).
				Dice(dice.ActualDice{}).
				Build()
		})
	}
	return b.Build()
}

func (endPhase) StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error) {
	if swap, ok := action.(DeathSwapAction); ok {
		return handleDeathSwapAction(s, pid, swap)
	}
	return nil, illegalActionf("%s not allowed in the end phase", action.ActionName())
}

func (endPhase) WaitingFor(s *GameState) (Pid, bool) {
	return deathSwapping(s)
}
