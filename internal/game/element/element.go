package element

import "fmt"

// Element represents a resource or damage category.
type Element int

const (
	// Omni is the wildcard die: pays any cost, and as a cost requirement it
	// means "N dice of one same kind".
	Omni Element = iota
	Cryo
	Hydro
	Pyro
	Electro
	Geo
	Dendro
	Anemo
	// Physical and Piercing are damage-only kinds; they never appear on dice.
	Physical
	Piercing
	// Any is a cost-only kind: "N dice of any kind(s), mixed allowed".
	Any
)

var elementNames = map[Element]string{
	Omni:     "OMNI",
	Cryo:     "CRYO",
	Hydro:    "HYDRO",
	Pyro:     "PYRO",
	Electro:  "ELECTRO",
	Geo:      "GEO",
	Dendro:   "DENDRO",
	Anemo:    "ANEMO",
	Physical: "PHYSICAL",
	Piercing: "PIERCING",
	Any:      "ANY",
}

func (e Element) String() string {
	if name, ok := elementNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ELEMENT_%d", int(e))
}

// PureElements are the seven concrete die kinds, in display-priority order
// (highest priority first). The order is load-bearing: dice allocation and the
// display ordering both scan it, which is what makes tie-breaks deterministic.
var PureElements = [...]Element{
	Cryo,
	Hydro,
	Pyro,
	Electro,
	Geo,
	Dendro,
	Anemo,
}

// IsPure reports whether e is one of the seven concrete die kinds.
func (e Element) IsPure() bool {
	return e >= Cryo && e <= Anemo
}

// CanDamage reports whether e is a legal damage element.
func (e Element) CanDamage() bool {
	return e.IsPure() || e == Physical || e == Piercing
}

// Priority returns the display priority of a die kind; bigger means shown
// earlier. Omni is always first, then the PureElements order.
func (e Element) Priority() int {
	switch {
	case e == Omni:
		return len(PureElements) + 1
	case e.IsPure():
		for i, elem := range PureElements {
			if elem == e {
				return len(PureElements) - i
			}
		}
	}
	return 0
}
