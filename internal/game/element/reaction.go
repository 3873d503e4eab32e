package element

import "fmt"

// Reaction identifies an elemental reaction between an aura element and an
// incoming damage element.
type Reaction int

const (
	Vaporize Reaction = iota
	Melt
	Overloaded
	ElectroCharged
	Superconduct
	Frozen
	Swirl
	Crystallize
	Bloom
	Burning
	Quicken
)

var reactionNames = map[Reaction]string{
	Vaporize:       "VAPORIZE",
	Melt:           "MELT",
	Overloaded:     "OVERLOADED",
	ElectroCharged: "ELECTRO_CHARGED",
	Superconduct:   "SUPERCONDUCT",
	Frozen:         "FROZEN",
	Swirl:          "SWIRL",
	Crystallize:    "CRYSTALLIZE",
	Bloom:          "BLOOM",
	Burning:        "BURNING",
	Quicken:        "QUICKEN",
}

func (r Reaction) String() string {
	if name, ok := reactionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("REACTION_%d", int(r))
}

// Detail records a resolved reaction: which reaction fired, the aura element
// that was consumed and the incoming element that consumed it.
type Detail struct {
	Reaction Reaction
	First    Element
	Second   Element
}

type elemPair struct {
	first, second Element
}

// reactionTable maps (aura element, incoming element) to the reaction that
// fires. Anemo and Geo never aura, so they only appear as the second element.
var reactionTable = map[elemPair]Reaction{
	{Hydro, Pyro}:    Vaporize,
	{Pyro, Hydro}:    Vaporize,
	{Cryo, Pyro}:     Melt,
	{Pyro, Cryo}:     Melt,
	{Electro, Pyro}:  Overloaded,
	{Pyro, Electro}:  Overloaded,
	{Electro, Hydro}: ElectroCharged,
	{Hydro, Electro}: ElectroCharged,
	{Electro, Cryo}:  Superconduct,
	{Cryo, Electro}:  Superconduct,
	{Hydro, Cryo}:    Frozen,
	{Cryo, Hydro}:    Frozen,
	{Dendro, Hydro}:  Bloom,
	{Hydro, Dendro}:  Bloom,
	{Dendro, Pyro}:   Burning,
	{Pyro, Dendro}:   Burning,
	{Dendro, Electro}: Quicken,
	{Electro, Dendro}: Quicken,
	{Cryo, Anemo}:    Swirl,
	{Hydro, Anemo}:   Swirl,
	{Pyro, Anemo}:    Swirl,
	{Electro, Anemo}: Swirl,
	{Cryo, Geo}:      Crystallize,
	{Hydro, Geo}:     Crystallize,
	{Pyro, Geo}:      Crystallize,
	{Electro, Geo}:   Crystallize,
}

// ConsultReaction returns the reaction between an existing aura element and an
// incoming damage element, or false when they do not react.
func ConsultReaction(first, second Element) (Reaction, bool) {
	r, ok := reactionTable[elemPair{first, second}]
	return r, ok
}

// DamageBoost returns the flat damage bonus the reaction adds to the
// triggering damage.
func (r Reaction) DamageBoost() int {
	switch r {
	case Vaporize, Melt, Overloaded:
		return 2
	case ElectroCharged, Superconduct, Frozen, Bloom, Burning, Quicken:
		return 1
	default:
		// Swirl and Crystallize do not boost the triggering damage.
		return 0
	}
}
