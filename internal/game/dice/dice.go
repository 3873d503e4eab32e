// Package dice implements the typed resource tokens of the game: the concrete
// dice a player holds and the abstract dice requirements printed on cards and
// skills, together with the cost satisfaction and allocation algorithms.
package dice

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// numKinds is the size of the counts array: the eight die kinds plus the
// cost-only ANY slot.
const numKinds = 9

const anyIndex = 8

// kindOrder fixes the iteration order over die kinds everywhere in this
// package. Matching the in-game display order keeps every tie-break
// deterministic and reproducible.
var kindOrder = [numKinds]element.Element{
	element.Omni,
	element.Cryo,
	element.Hydro,
	element.Pyro,
	element.Electro,
	element.Geo,
	element.Dendro,
	element.Anemo,
	element.Any,
}

func kindIndex(e element.Element) (int, bool) {
	if e >= element.Omni && e <= element.Anemo {
		return int(e), true
	}
	if e == element.Any {
		return anyIndex, true
	}
	return 0, false
}

// Dice is a multiset of die kinds. It is a value type: arithmetic returns new
// values and never mutates the receiver, so snapshots may share dice freely.
// Counts may go negative through Sub; IsLegal distinguishes real dice sets
// from intermediate arithmetic results.
type Dice struct {
	counts [numKinds]int
}

// New builds a dice value from a kind-to-count mapping. Unknown kinds panic:
// they can only come from a programming error, never from player input.
func New(counts map[element.Element]int) Dice {
	var d Dice
	for e, n := range counts {
		i, ok := kindIndex(e)
		if !ok {
			panic(fmt.Sprintf("dice: illegal element %v", e))
		}
		d.counts[i] += n
	}
	return d
}

// Get returns the count for a kind; unknown kinds count zero.
func (d Dice) Get(e element.Element) int {
	if i, ok := kindIndex(e); ok {
		return d.counts[i]
	}
	return 0
}

// NumDice returns the total number of dice.
func (d Dice) NumDice() int {
	total := 0
	for _, n := range d.counts {
		total += n
	}
	return total
}

// IsEmpty reports whether no kind has a positive count.
func (d Dice) IsEmpty() bool {
	for _, n := range d.counts {
		if n > 0 {
			return false
		}
	}
	return true
}

// Add returns the kind-wise sum of d and other.
func (d Dice) Add(other Dice) Dice {
	sum := d
	for i, n := range other.counts {
		sum.counts[i] += n
	}
	return sum
}

// Sub returns the kind-wise difference of d and other. The result may be
// illegal (negative counts); callers check IsLegal when that matters.
func (d Dice) Sub(other Dice) Dice {
	diff := d
	for i, n := range other.counts {
		diff.counts[i] -= n
	}
	return diff
}

// Elems returns the kinds with a positive count, in the fixed kind order.
func (d Dice) Elems() []element.Element {
	elems := make([]element.Element, 0, numKinds)
	for i, e := range kindOrder {
		if d.counts[i] > 0 {
			elems = append(elems, e)
		}
	}
	return elems
}

// ToMap returns the positive counts as a map, for serialization and display.
func (d Dice) ToMap() map[element.Element]int {
	m := make(map[element.Element]int, numKinds)
	for i, e := range kindOrder {
		if d.counts[i] != 0 {
			m[e] = d.counts[i]
		}
	}
	return m
}

func (d Dice) String() string {
	parts := make([]string, 0, numKinds)
	for i, e := range kindOrder {
		if d.counts[i] != 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", e, d.counts[i]))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d Dice) nonNegative() bool {
	for _, n := range d.counts {
		if n < 0 {
			return false
		}
	}
	return true
}

// ActualDice is the concrete dice a player holds: the seven pure kinds plus
// OMNI. ANY is never legal here.
type ActualDice struct {
	Dice
}

// NewActual builds a held-dice value from a kind-to-count mapping.
func NewActual(counts map[element.Element]int) ActualDice {
	return ActualDice{Dice: New(counts)}
}

// IsLegal reports all counts non-negative and no ANY entry.
func (d ActualDice) IsLegal() bool {
	return d.nonNegative() && d.counts[anyIndex] == 0
}

// AddActual returns the kind-wise sum as held dice.
func (d ActualDice) AddActual(other ActualDice) ActualDice {
	return ActualDice{Dice: d.Dice.Add(other.Dice)}
}

// SubActual returns the kind-wise difference as held dice; the result may be
// illegal and must be checked by the caller.
func (d ActualDice) SubActual(other ActualDice) ActualDice {
	return ActualDice{Dice: d.Dice.Sub(other.Dice)}
}

// FromRandom rolls size dice uniformly over the eight legal kinds using the
// provided source. The source is the only randomness in this package.
func FromRandom(rng *rand.Rand, size int) ActualDice {
	var d ActualDice
	for i := 0; i < size; i++ {
		d.counts[rng.Intn(anyIndex)]++
	}
	return d
}

// FromAll builds size dice of a single kind.
func FromAll(size int, e element.Element) ActualDice {
	i, ok := kindIndex(e)
	if !ok || i == anyIndex {
		panic(fmt.Sprintf("dice: illegal held kind %v", e))
	}
	var d ActualDice
	d.counts[i] = size
	return d
}

// PickRandom removes num dice uniformly at random without replacement and
// returns (remaining, picked). Picking more dice than held picks them all.
func (d ActualDice) PickRandom(rng *rand.Rand, num int) (ActualDice, ActualDice) {
	if num > d.NumDice() {
		num = d.NumDice()
	}
	remaining := d
	var picked ActualDice
	for n := 0; n < num; n++ {
		target := rng.Intn(remaining.NumDice())
		for i := range remaining.counts {
			if target < remaining.counts[i] {
				remaining.counts[i]--
				picked.counts[i]++
				break
			}
			target -= remaining.counts[i]
		}
	}
	return remaining, picked
}

// AbstractDice is a dice requirement: pure kinds, OMNI ("N of one same kind")
// and ANY ("N of any kinds, mixed allowed").
type AbstractDice struct {
	Dice
}

// NewAbstract builds a requirement from a kind-to-count mapping.
func NewAbstract(counts map[element.Element]int) AbstractDice {
	return AbstractDice{Dice: New(counts)}
}

// IsLegal reports all counts non-negative.
func (d AbstractDice) IsLegal() bool {
	return d.nonNegative()
}

// CostLessAny returns the requirement with num fewer ANY dice, floored at
// zero. Cost-reduction statuses use this before legality checks.
func (d AbstractDice) CostLessAny(num int) AbstractDice {
	reduced := d
	reduced.counts[anyIndex] -= num
	if reduced.counts[anyIndex] < 0 {
		reduced.counts[anyIndex] = 0
	}
	return reduced
}

// CostLessElem reduces the requirement for a specific kind by num, spilling
// the remainder into the ANY requirement, both floored at zero.
func (d AbstractDice) CostLessElem(num int, e element.Element) AbstractDice {
	i, ok := kindIndex(e)
	if !ok {
		return d
	}
	reduced := d
	fromElem := min(reduced.counts[i], num)
	reduced.counts[i] -= fromElem
	reduced.counts[anyIndex] -= num - fromElem
	if reduced.counts[anyIndex] < 0 {
		reduced.counts[anyIndex] = 0
	}
	return reduced
}

// ElementCount pairs a die kind with a count, for ordered display.
type ElementCount struct {
	Element element.Element
	Count   int
}

// Ordered returns the held dice sorted for display: OMNI first, then by
// (an alive character uses this kind, count, fixed kind priority) descending.
// The ordering is bit-for-bit reproducible and matches the source game.
func (d ActualDice) Ordered(characterElems map[element.Element]bool) []ElementCount {
	out := make([]ElementCount, 0, numKinds)
	if d.Get(element.Omni) > 0 {
		out = append(out, ElementCount{element.Omni, d.Get(element.Omni)})
	}
	rest := make([]ElementCount, 0, numKinds)
	for _, e := range element.PureElements {
		if d.Get(e) > 0 {
			rest = append(rest, ElementCount{e, d.Get(e)})
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		ci, cj := rest[i], rest[j]
		ui, uj := characterElems[ci.Element], characterElems[cj.Element]
		if ui != uj {
			return ui
		}
		if ci.Count != cj.Count {
			return ci.Count > cj.Count
		}
		return ci.Element.Priority() > cj.Element.Priority()
	})
	return append(out, rest...)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
