package core

import (
	"fmt"
	"sort"

	"github.com/invokesim/invoke-server-go/internal/game/dice"
)

// Card is the catalog contract for a playable card: its printed cost, a
// structural legality check, and the effect sequence playing it produces.
type Card interface {
	Name() string
	Cost() dice.AbstractDice

	// Playable reports whether the card may structurally be played by pid in
	// the given snapshot (targets exist, preconditions hold). Dice and hand
	// checks belong to the phase machine, not the card.
	Playable(s *GameState, pid Pid) bool

	// OnPlay produces the card's effects. target carries the player-chosen
	// target when the card needs one.
	OnPlay(s *GameState, pid Pid, target StaticTarget) []Effect
}

// Registry is the process-wide read-only catalog lookup: card and character
// implementations keyed by name. It is constructed once at startup and passed
// by reference into the game state; it is never mutated afterwards.
type Registry struct {
	cards      map[string]Card
	characters map[string]CharacterKind
}

// NewRegistry builds a registry from the given catalog entries. Duplicate
// names panic: the catalog is static data and duplicates are build errors.
func NewRegistry(cards []Card, characters []CharacterKind) *Registry {
	r := &Registry{
		cards:      make(map[string]Card, len(cards)),
		characters: make(map[string]CharacterKind, len(characters)),
	}
	for _, c := range cards {
		if _, dup := r.cards[c.Name()]; dup {
			panic(fmt.Sprintf("core: duplicate card %q in registry", c.Name()))
		}
		r.cards[c.Name()] = c
	}
	for _, ck := range characters {
		if _, dup := r.characters[ck.Name()]; dup {
			panic(fmt.Sprintf("core: duplicate character %q in registry", ck.Name()))
		}
		r.characters[ck.Name()] = ck
	}
	return r
}

// Card looks up a card implementation by name.
func (r *Registry) Card(name string) (Card, bool) {
	c, ok := r.cards[name]
	return c, ok
}

// Character looks up a character kind by name.
func (r *Registry) Character(name string) (CharacterKind, bool) {
	ck, ok := r.characters[name]
	return ck, ok
}

// CardNames returns the registered card names sorted.
func (r *Registry) CardNames() []string {
	names := make([]string, 0, len(r.cards))
	for name := range r.cards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CharacterNames returns the registered character names sorted.
func (r *Registry) CharacterNames() []string {
	names := make([]string, 0, len(r.characters))
	for name := range r.characters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
