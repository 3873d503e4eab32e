package core

import (
	"fmt"
	"math/rand"
)

// Mode carries the rule parameters of a game variant: round limit, dice and
// card economy, and which phase value starts each stage. It is the single
// source of truth for phase identity.
type Mode interface {
	RoundLimit() int
	InitialHandSize() int
	CardsDrawnPerRound() int
	DiceRolledPerRound() int
	SwapCost() int

	CardSelectPhase() Phase
	StartingHandSelectPhase() Phase
	RollPhase() Phase
	ActionPhase() Phase
	EndPhase() Phase
	GameEndPhase() Phase
}

// GameState is one immutable snapshot of a match. Applying an effect or a
// phase transition yields a new snapshot through the builder; nothing is
// mutated in place, so unchanged substructures are shared across snapshots.
//
// The random source is the one deliberately shared object: draws and rolls
// happen only at phase-transition points, never while the effect stack
// drains, which keeps effect execution a pure function of the snapshot.
type GameState struct {
	phase       Phase
	round       int
	mode        Mode
	activePid   Pid
	player1     *PlayerState
	player2     *PlayerState
	effectStack EffectStack
	registry    *Registry
	rng         *rand.Rand
}

// NewGameState assembles the initial snapshot of a match.
func NewGameState(mode Mode, registry *Registry, rng *rand.Rand, p1, p2 *PlayerState) *GameState {
	return &GameState{
		phase:     mode.CardSelectPhase(),
		round:     1,
		mode:      mode,
		activePid: P1,
		player1:   p1,
		player2:   p2,
		registry:  registry,
		rng:       rng,
	}
}

func (s *GameState) Phase() Phase             { return s.phase }
func (s *GameState) Round() int               { return s.round }
func (s *GameState) Mode() Mode               { return s.mode }
func (s *GameState) ActivePid() Pid           { return s.activePid }
func (s *GameState) EffectStack() EffectStack { return s.effectStack }
func (s *GameState) Registry() *Registry      { return s.registry }
func (s *GameState) RNG() *rand.Rand          { return s.rng }

// Player returns the player state for the given id.
func (s *GameState) Player(pid Pid) *PlayerState {
	switch pid {
	case P1:
		return s.player1
	case P2:
		return s.player2
	}
	panic(fmt.Sprintf("core: unknown pid %d", int(pid)))
}

// OtherPlayer returns the opposing player state.
func (s *GameState) OtherPlayer(pid Pid) *PlayerState {
	return s.Player(pid.Other())
}

// CharacterAt resolves a character static target against this snapshot.
// A missing character means the addressed effect fizzles.
func (s *GameState) CharacterAt(target StaticTarget) (Character, bool) {
	if target.Zone != ZoneCharacter {
		return Character{}, false
	}
	return s.Player(target.Pid).Characters().Get(target.ID)
}

// Step advances the game one engine-driven step in the current phase.
func (s *GameState) Step() *GameState {
	return s.phase.Step(s)
}

// StepAction consumes a submitted player action in the current phase. An
// illegal action is rejected with an error and no state change.
func (s *GameState) StepAction(pid Pid, action PlayerAction) (*GameState, error) {
	return s.phase.StepAction(s, pid, action)
}

// WaitingFor reports which player must act next, or ok=false when the engine
// can advance itself.
func (s *GameState) WaitingFor() (Pid, bool) {
	return s.phase.WaitingFor(s)
}

// GameEnd reports whether the terminal phase has been reached.
func (s *GameState) GameEnd() bool {
	return s.phase == s.mode.GameEndPhase()
}

// Winner returns the winning player once the game has ended; ok=false means
// the game ended in a draw (round limit) or has not ended.
func (s *GameState) Winner() (Pid, bool) {
	if !s.GameEnd() {
		return 0, false
	}
	p1Down, p2Down := s.player1.Defeated(), s.player2.Defeated()
	switch {
	case p1Down && !p2Down:
		return P2, true
	case p2Down && !p1Down:
		return P1, true
	}
	return 0, false
}

// ExecuteOne pops the front effect and executes it, returning the resulting
// snapshot. The popped stack is installed before execution so the effect may
// push follow-up effects ahead of the remainder.
func (s *GameState) ExecuteOne() *GameState {
	stack, effect := s.effectStack.Pop()
	next := s.Builder().EffectStack(stack).Build()
	return effect.Execute(next)
}

// Builder starts a staged copy of the snapshot.
func (s *GameState) Builder() *GameStateBuilder {
	return &GameStateBuilder{s: *s}
}

// GameStateBuilder stages changes to a snapshot; unchanged fields are copied
// by reference from the source.
type GameStateBuilder struct {
	s GameState
}

func (b *GameStateBuilder) Phase(p Phase) *GameStateBuilder {
	b.s.phase = p
	return b
}

func (b *GameStateBuilder) Round(r int) *GameStateBuilder {
	b.s.round = r
	return b
}

func (b *GameStateBuilder) ActivePid(pid Pid) *GameStateBuilder {
	b.s.activePid = pid
	return b
}

func (b *GameStateBuilder) Player(pid Pid, p *PlayerState) *GameStateBuilder {
	switch pid {
	case P1:
		b.s.player1 = p
	case P2:
		b.s.player2 = p
	default:
		panic(fmt.Sprintf("core: unknown pid %d", int(pid)))
	}
	return b
}

func (b *GameStateBuilder) OtherPlayer(pid Pid, p *PlayerState) *GameStateBuilder {
	return b.Player(pid.Other(), p)
}

// FPlayer applies f to the staged player state for pid.
func (b *GameStateBuilder) FPlayer(pid Pid, f func(*PlayerState) *PlayerState) *GameStateBuilder {
	return b.Player(pid, f(b.staged(pid)))
}

// FOtherPlayer applies f to the staged opposing player state.
func (b *GameStateBuilder) FOtherPlayer(pid Pid, f func(*PlayerState) *PlayerState) *GameStateBuilder {
	return b.FPlayer(pid.Other(), f)
}

func (b *GameStateBuilder) EffectStack(es EffectStack) *GameStateBuilder {
	b.s.effectStack = es
	return b
}

// FEffectStack applies f to the staged effect stack.
func (b *GameStateBuilder) FEffectStack(f func(EffectStack) EffectStack) *GameStateBuilder {
	b.s.effectStack = f(b.s.effectStack)
	return b
}

func (b *GameStateBuilder) staged(pid Pid) *PlayerState {
	switch pid {
	case P1:
		return b.s.player1
	case P2:
		return b.s.player2
	}
	panic(fmt.Sprintf("core: unknown pid %d", int(pid)))
}

func (b *GameStateBuilder) Build() *GameState {
	s := b.s
	return &s
}
