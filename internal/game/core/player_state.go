package core

import (
	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
)

// PlayerState is one player's half of a snapshot: phase tag, characters,
// cards, dice and the player-scoped status collections. Owned exclusively by
// its GameState and never shared between the two slots.
type PlayerState struct {
	act        Act
	characters Characters
	hand       card.Cards
	deck       card.Cards
	dice       dice.ActualDice

	hidden   Statuses
	combat   Statuses
	summons  Statuses
	supports Statuses
}

// NewPlayerState builds a player at the pre-game baseline: passive-wait, the
// given roster and deck, empty hand and dice.
func NewPlayerState(characters Characters, deck card.Cards) *PlayerState {
	return &PlayerState{
		act:        ActPassiveWait,
		characters: characters,
		hand:       card.Empty(),
		deck:       deck,
	}
}

func (p *PlayerState) Act() Act                   { return p.act }
func (p *PlayerState) Characters() Characters     { return p.characters }
func (p *PlayerState) Hand() card.Cards           { return p.hand }
func (p *PlayerState) Deck() card.Cards           { return p.deck }
func (p *PlayerState) Dice() dice.ActualDice      { return p.dice }
func (p *PlayerState) HiddenStatuses() Statuses   { return p.hidden }
func (p *PlayerState) CombatStatuses() Statuses   { return p.combat }
func (p *PlayerState) Summons() Statuses          { return p.summons }
func (p *PlayerState) Supports() Statuses         { return p.supports }

// Defeated reports whether the player has lost all characters.
func (p *PlayerState) Defeated() bool {
	return p.characters.AllDefeated()
}

// Namespace returns the requested player-scoped collection.
func (p *PlayerState) Namespace(ns StatusNamespace) Statuses {
	switch ns {
	case NSHidden:
		return p.hidden
	case NSCombat:
		return p.combat
	case NSSummon:
		return p.summons
	case NSSupport:
		return p.supports
	}
	panic("core: namespace " + ns.String() + " is not player-scoped")
}

// Builder starts a staged copy of the player state.
func (p *PlayerState) Builder() *PlayerStateBuilder {
	return &PlayerStateBuilder{p: *p}
}

// PlayerStateBuilder stages changes to a player state; unchanged fields are
// copied by reference from the source.
type PlayerStateBuilder struct {
	p PlayerState
}

func (b *PlayerStateBuilder) Act(a Act) *PlayerStateBuilder {
	b.p.act = a
	return b
}

func (b *PlayerStateBuilder) Characters(cs Characters) *PlayerStateBuilder {
	b.p.characters = cs
	return b
}

// FCharacters applies f to the staged roster.
func (b *PlayerStateBuilder) FCharacters(f func(Characters) Characters) *PlayerStateBuilder {
	b.p.characters = f(b.p.characters)
	return b
}

func (b *PlayerStateBuilder) Hand(c card.Cards) *PlayerStateBuilder {
	b.p.hand = c
	return b
}

func (b *PlayerStateBuilder) Deck(c card.Cards) *PlayerStateBuilder {
	b.p.deck = c
	return b
}

func (b *PlayerStateBuilder) Dice(d dice.ActualDice) *PlayerStateBuilder {
	b.p.dice = d
	return b
}

func (b *PlayerStateBuilder) HiddenStatuses(s Statuses) *PlayerStateBuilder {
	b.p.hidden = s
	return b
}

func (b *PlayerStateBuilder) CombatStatuses(s Statuses) *PlayerStateBuilder {
	b.p.combat = s
	return b
}

func (b *PlayerStateBuilder) Summons(s Statuses) *PlayerStateBuilder {
	b.p.summons = s
	return b
}

func (b *PlayerStateBuilder) Supports(s Statuses) *PlayerStateBuilder {
	b.p.supports = s
	return b
}

// WithNamespace stages the requested player-scoped collection.
func (b *PlayerStateBuilder) WithNamespace(ns StatusNamespace, s Statuses) *PlayerStateBuilder {
	switch ns {
	case NSHidden:
		return b.HiddenStatuses(s)
	case NSCombat:
		return b.CombatStatuses(s)
	case NSSummon:
		return b.Summons(s)
	case NSSupport:
		return b.Supports(s)
	}
	panic("core: namespace " + ns.String() + " is not player-scoped")
}

func (b *PlayerStateBuilder) Build() *PlayerState {
	p := b.p
	return &p
}
