// Package card provides the hand/deck card multiset. Cards are addressed by
// name; the concrete card behavior lives in the catalog and is dispatched
// through the core's capability contract, so this package stays a pure value
// type.
package card

import (
	"math/rand"
	"sort"
)

// Cards is a multiset of card names. It is a value type: every mutation
// returns a new Cards, so hand and deck snapshots can be shared across game
// states.
type Cards struct {
	counts map[string]int
}

// New builds a card multiset from a name-to-count mapping.
func New(counts map[string]int) Cards {
	m := make(map[string]int, len(counts))
	for name, n := range counts {
		if n > 0 {
			m[name] = n
		}
	}
	return Cards{counts: m}
}

// Empty returns the empty multiset.
func Empty() Cards {
	return Cards{counts: map[string]int{}}
}

// NumCards returns the total card count.
func (c Cards) NumCards() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Get returns the count of the named card.
func (c Cards) Get(name string) int {
	return c.counts[name]
}

// Contains reports whether at least one copy of the named card is held.
func (c Cards) Contains(name string) bool {
	return c.counts[name] > 0
}

// Names returns the held card names sorted, for deterministic iteration.
func (c Cards) Names() []string {
	names := make([]string, 0, len(c.counts))
	for name, n := range c.counts {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Add returns a new multiset with num more copies of the named card.
func (c Cards) Add(name string, num int) Cards {
	return c.edit(name, num)
}

// Remove returns a new multiset with one fewer copy of the named card;
// removing an absent card is a no-op returning the receiver.
func (c Cards) Remove(name string) Cards {
	if c.counts[name] <= 0 {
		return c
	}
	return c.edit(name, -1)
}

// AddAll returns the multiset union of c and other.
func (c Cards) AddAll(other Cards) Cards {
	merged := c
	for name, n := range other.counts {
		merged = merged.edit(name, n)
	}
	return merged
}

// Equal reports multiset equality.
func (c Cards) Equal(other Cards) bool {
	if c.NumCards() != other.NumCards() {
		return false
	}
	for name, n := range c.counts {
		if other.counts[name] != n {
			return false
		}
	}
	return true
}

// PickRandom removes num cards uniformly at random without replacement and
// returns (remaining, picked). Picking more cards than held picks them all.
// Recombining picked and remaining always reconstructs the original multiset.
func (c Cards) PickRandom(rng *rand.Rand, num int) (Cards, Cards) {
	if num > c.NumCards() {
		num = c.NumCards()
	}
	remaining := c
	picked := Empty()
	names := c.Names()
	for n := 0; n < num; n++ {
		target := rng.Intn(remaining.NumCards())
		for _, name := range names {
			count := remaining.Get(name)
			if target < count {
				remaining = remaining.Remove(name)
				picked = picked.Add(name, 1)
				break
			}
			target -= count
		}
	}
	return remaining, picked
}

func (c Cards) edit(name string, delta int) Cards {
	m := make(map[string]int, len(c.counts)+1)
	for k, v := range c.counts {
		m[k] = v
	}
	m[name] += delta
	if m[name] <= 0 {
		delete(m, name)
	}
	return Cards{counts: m}
}
