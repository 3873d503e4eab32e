package element

import "strings"

// maxAuraSize bounds the number of simultaneously-held aura elements. Normal
// play holds at most two (Dendro alongside Cryo/Frozen situations).
const maxAuraSize = 2

// Aura is the ordered set of elemental tags currently attached to a
// character. It is a value type: every mutation returns a new Aura, leaving
// the receiver untouched, so snapshots can share auras freely.
type Aura struct {
	elems []Element
}

// NewAura builds an aura from the given elements, keeping order.
func NewAura(elems ...Element) Aura {
	return Aura{elems: append([]Element(nil), elems...)}
}

// Elems returns the held elements in insertion order.
func (a Aura) Elems() []Element {
	return append([]Element(nil), a.elems...)
}

// Contains reports whether the aura currently holds e.
func (a Aura) Contains(e Element) bool {
	for _, held := range a.elems {
		if held == e {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no element is attached.
func (a Aura) IsEmpty() bool {
	return len(a.elems) == 0
}

// Aurable reports whether e can be attached: it must be an aurable element
// and the aura must not be saturated or already holding it.
func (a Aura) Aurable(e Element) bool {
	switch e {
	case Cryo, Hydro, Pyro, Electro, Dendro:
	default:
		return false
	}
	return !a.Contains(e) && len(a.elems) < maxAuraSize
}

// Add returns a new aura with e appended. Adding a non-aurable element or
// adding past saturation is a no-op returning the receiver.
func (a Aura) Add(e Element) Aura {
	if !a.Aurable(e) {
		return a
	}
	elems := make([]Element, 0, len(a.elems)+1)
	elems = append(elems, a.elems...)
	return Aura{elems: append(elems, e)}
}

// Remove returns a new aura with e removed; removing an absent element is a
// no-op returning the receiver.
func (a Aura) Remove(e Element) Aura {
	for i, held := range a.elems {
		if held == e {
			elems := make([]Element, 0, len(a.elems)-1)
			elems = append(elems, a.elems[:i]...)
			return Aura{elems: append(elems, a.elems[i+1:]...)}
		}
	}
	return a
}

// Equal reports element-wise equality, order included.
func (a Aura) Equal(other Aura) bool {
	if len(a.elems) != len(other.elems) {
		return false
	}
	for i, held := range a.elems {
		if other.elems[i] != held {
			return false
		}
	}
	return true
}

func (a Aura) String() string {
	if len(a.elems) == 0 {
		return "[]"
	}
	parts := make([]string, len(a.elems))
	for i, e := range a.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
