package core

// DefaultMode is the standard rule set: fifteen rounds, a five-card opening
// hand with one redraw, two cards drawn and eight dice rolled per round, and
// character swaps costing one die of any kind.
type DefaultMode struct{}

// NewDefaultMode returns the standard rule set.
func NewDefaultMode() *DefaultMode {
	return &DefaultMode{}
}

func (*DefaultMode) RoundLimit() int         { return 15 }
func (*DefaultMode) InitialHandSize() int    { return 5 }
func (*DefaultMode) CardsDrawnPerRound() int { return 2 }
func (*DefaultMode) DiceRolledPerRound() int { return 8 }
func (*DefaultMode) SwapCost() int           { return 1 }

// Phase values are stateless empty structs, so interface comparison against
// the mode's accessors identifies a phase reliably.
func (*DefaultMode) CardSelectPhase() Phase         { return cardSelectPhase{} }
func (*DefaultMode) StartingHandSelectPhase() Phase { return startingHandSelectPhase{} }
func (*DefaultMode) RollPhase() Phase               { return rollPhase{} }
func (*DefaultMode) ActionPhase() Phase             { return actionPhase{} }
func (*DefaultMode) EndPhase() Phase                { return endPhase{} }
func (*DefaultMode) GameEndPhase() Phase            { return gameEndPhase{} }

func resetToPassive(p *PlayerState) *PlayerState {
	return p.Builder().Act(ActPassiveWait).Build()
}
