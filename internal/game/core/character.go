package core

import (
	"fmt"

	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// SkillKind classifies a character skill.
type SkillKind int

const (
	SkillNormalAttack SkillKind = iota
	SkillElemental
	SkillBurst
)

var skillKindNames = map[SkillKind]string{
	SkillNormalAttack: "NORMAL_ATTACK",
	SkillElemental:    "ELEMENTAL_SKILL",
	SkillBurst:        "ELEMENTAL_BURST",
}

func (k SkillKind) String() string {
	if name, ok := skillKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SKILL_%d", int(k))
}

// Skill describes one castable skill of a character kind. Effects produces
// the skill's effect sequence against a snapshot; it must be pure.
type Skill struct {
	Name    string
	Kind    SkillKind
	Cost    dice.AbstractDice
	Effects func(s *GameState, source StaticTarget) []Effect
}

// CharacterKind is the catalog contract for a character: its immutable
// printed attributes. The engine never enumerates kinds.
type CharacterKind interface {
	Name() string
	Element() element.Element
	MaxHP() int
	MaxEnergy() int
	Skills() []Skill
}

// Character is one character's mutable state within a snapshot. It is a value
// type addressed by its stable id; effects never hold character references.
type Character struct {
	kind   CharacterKind
	id     int
	hp     int
	energy int
	aura   element.Aura

	characterStatuses Statuses
	equipment         Statuses
	talents           Statuses
}

// NewCharacter builds a character at full HP and zero energy.
func NewCharacter(kind CharacterKind, id int) Character {
	return Character{
		kind: kind,
		id:   id,
		hp:   kind.MaxHP(),
	}
}

func (c Character) Kind() CharacterKind         { return c.kind }
func (c Character) ID() int                     { return c.id }
func (c Character) HP() int                     { return c.hp }
func (c Character) MaxHP() int                  { return c.kind.MaxHP() }
func (c Character) Energy() int                 { return c.energy }
func (c Character) MaxEnergy() int              { return c.kind.MaxEnergy() }
func (c Character) Aura() element.Aura          { return c.aura }
func (c Character) CharacterStatuses() Statuses { return c.characterStatuses }
func (c Character) Equipment() Statuses         { return c.equipment }
func (c Character) Talents() Statuses           { return c.talents }

// Defeated reports whether the character has fallen.
func (c Character) Defeated() bool {
	return c.hp <= 0
}

// StatusesOrdered returns all character-scoped statuses in trigger order:
// character statuses, then equipment, then talents, each in stored order.
func (c Character) StatusesOrdered() []namespacedStatus {
	out := make([]namespacedStatus, 0,
		c.characterStatuses.Len()+c.equipment.Len()+c.talents.Len())
	for _, st := range c.characterStatuses.All() {
		out = append(out, namespacedStatus{NSCharacterStatus, st})
	}
	for _, st := range c.equipment.All() {
		out = append(out, namespacedStatus{NSEquipment, st})
	}
	for _, st := range c.talents.All() {
		out = append(out, namespacedStatus{NSTalent, st})
	}
	return out
}

type namespacedStatus struct {
	ns     StatusNamespace
	status Status
}

// Builder starts a staged copy of the character.
func (c Character) Builder() *CharacterBuilder {
	return &CharacterBuilder{c: c}
}

// CharacterBuilder stages changes to a character; unchanged fields are copied
// by reference from the source value.
type CharacterBuilder struct {
	c Character
}

func (b *CharacterBuilder) HP(hp int) *CharacterBuilder {
	b.c.hp = hp
	return b
}

func (b *CharacterBuilder) Energy(energy int) *CharacterBuilder {
	b.c.energy = energy
	return b
}

func (b *CharacterBuilder) Aura(aura element.Aura) *CharacterBuilder {
	b.c.aura = aura
	return b
}

func (b *CharacterBuilder) CharacterStatuses(s Statuses) *CharacterBuilder {
	b.c.characterStatuses = s
	return b
}

func (b *CharacterBuilder) Equipment(s Statuses) *CharacterBuilder {
	b.c.equipment = s
	return b
}

func (b *CharacterBuilder) Talents(s Statuses) *CharacterBuilder {
	b.c.talents = s
	return b
}

// Namespace returns the requested character-scoped collection.
func (c Character) Namespace(ns StatusNamespace) Statuses {
	switch ns {
	case NSCharacterStatus:
		return c.characterStatuses
	case NSEquipment:
		return c.equipment
	case NSTalent:
		return c.talents
	}
	panic(fmt.Sprintf("core: namespace %v is not character-scoped", ns))
}

// WithNamespace stages the requested character-scoped collection.
func (b *CharacterBuilder) WithNamespace(ns StatusNamespace, s Statuses) *CharacterBuilder {
	switch ns {
	case NSCharacterStatus:
		return b.CharacterStatuses(s)
	case NSEquipment:
		return b.Equipment(s)
	case NSTalent:
		return b.Talents(s)
	}
	panic(fmt.Sprintf("core: namespace %v is not character-scoped", ns))
}

func (b *CharacterBuilder) Build() Character {
	return b.c
}

// Characters is a player's ordered character roster plus the active-character
// designation. Value type: mutations return new collections.
type Characters struct {
	chars    []Character
	activeID int // 0 means no active character chosen yet
}

// NewCharacters builds a roster; ids must be unique and positive.
func NewCharacters(chars ...Character) Characters {
	seen := make(map[int]bool, len(chars))
	for _, c := range chars {
		if c.id <= 0 || seen[c.id] {
			panic(fmt.Sprintf("core: duplicate or non-positive character id %d", c.id))
		}
		seen[c.id] = true
	}
	return Characters{chars: append([]Character(nil), chars...)}
}

// All returns the roster in bench order.
func (cs Characters) All() []Character {
	return append([]Character(nil), cs.chars...)
}

// Len returns the roster size.
func (cs Characters) Len() int {
	return len(cs.chars)
}

// Get returns the character with the given id.
func (cs Characters) Get(id int) (Character, bool) {
	for _, c := range cs.chars {
		if c.id == id {
			return c, true
		}
	}
	return Character{}, false
}

// ActiveID returns the active character's id, or 0 when none is chosen.
func (cs Characters) ActiveID() int {
	return cs.activeID
}

// Active returns the active character.
func (cs Characters) Active() (Character, bool) {
	if cs.activeID == 0 {
		return Character{}, false
	}
	return cs.Get(cs.activeID)
}

// ActivityOrder returns the roster with the active character first and the
// rest in bench order. This is the traversal order of the trigger protocol.
func (cs Characters) ActivityOrder() []Character {
	out := make([]Character, 0, len(cs.chars))
	if active, ok := cs.Active(); ok {
		out = append(out, active)
	}
	for _, c := range cs.chars {
		if c.id != cs.activeID {
			out = append(out, c)
		}
	}
	return out
}

// AliveElements returns the element kinds used by characters still standing,
// for the dice display ordering.
func (cs Characters) AliveElements() map[element.Element]bool {
	elems := make(map[element.Element]bool, len(cs.chars))
	for _, c := range cs.chars {
		if !c.Defeated() {
			elems[c.kind.Element()] = true
		}
	}
	return elems
}

// AllDefeated reports whether every character has fallen.
func (cs Characters) AllDefeated() bool {
	for _, c := range cs.chars {
		if !c.Defeated() {
			return false
		}
	}
	return true
}

// Replace returns the roster with the same-id character replaced. Replacing
// an unknown id panics: characters are never added or removed mid-game, so an
// unknown id is an engine error.
func (cs Characters) Replace(c Character) Characters {
	for i, held := range cs.chars {
		if held.id == c.id {
			chars := append([]Character(nil), cs.chars...)
			chars[i] = c
			return Characters{chars: chars, activeID: cs.activeID}
		}
	}
	panic(fmt.Sprintf("core: replacing unknown character id %d", c.id))
}

// WithActiveID returns the roster with a new active character designation.
func (cs Characters) WithActiveID(id int) Characters {
	if _, ok := cs.Get(id); !ok {
		panic(fmt.Sprintf("core: activating unknown character id %d", id))
	}
	return Characters{chars: cs.chars, activeID: id}
}
