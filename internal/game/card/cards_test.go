package card

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestMultisetBasics(t *testing.T) {
	c := New(map[string]int{"Pizza": 2, "Crisp": 1, "Empty": 0})
	if got := c.NumCards(); got != 3 {
		t.Fatalf("NumCards = %d, want 3", got)
	}
	if c.Contains("Empty") {
		t.Error("zero-count entries must not be held")
	}
	if !c.Contains("Pizza") || c.Get("Pizza") != 2 {
		t.Errorf("Pizza count = %d, want 2", c.Get("Pizza"))
	}
}

func TestAddRemoveValueSemantics(t *testing.T) {
	c := New(map[string]int{"Pizza": 1})
	added := c.Add("Crisp", 2)
	if c.Contains("Crisp") {
		t.Error("Add must not mutate the receiver")
	}
	if got := added.Get("Crisp"); got != 2 {
		t.Errorf("Crisp count = %d, want 2", got)
	}

	removed := added.Remove("Pizza")
	if removed.Contains("Pizza") {
		t.Error("removing the last copy should drop the entry")
	}
	if got := added.Remove("Missing"); !got.Equal(added) {
		t.Error("removing an absent card should be a no-op")
	}
}

func TestNamesSorted(t *testing.T) {
	c := New(map[string]int{"Starsigns": 1, "Crisp": 1, "Pizza": 1})
	want := []string{"Crisp", "Pizza", "Starsigns"}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestAddAll(t *testing.T) {
	a := New(map[string]int{"Pizza": 2})
	b := New(map[string]int{"Pizza": 1, "Crisp": 3})
	merged := a.AddAll(b)
	if got := merged.Get("Pizza"); got != 3 {
		t.Errorf("Pizza = %d, want 3", got)
	}
	if got := merged.NumCards(); got != 6 {
		t.Errorf("NumCards = %d, want 6", got)
	}
}

func TestPickRandomReconstructs(t *testing.T) {
	deck := New(map[string]int{"Pizza": 8, "Crisp": 8, "Starsigns": 7, "Companion": 7})
	rng := rand.New(rand.NewSource(3))

	remaining, picked := deck.PickRandom(rng, 5)
	if got := picked.NumCards(); got != 5 {
		t.Fatalf("picked %d cards, want 5", got)
	}
	if got := remaining.NumCards(); got != 25 {
		t.Fatalf("remaining %d cards, want 25", got)
	}
	if !remaining.AddAll(picked).Equal(deck) {
		t.Error("remaining+picked should reconstruct the deck")
	}
}

func TestPickRandomOverdraw(t *testing.T) {
	deck := New(map[string]int{"Pizza": 2})
	remaining, picked := deck.PickRandom(rand.New(rand.NewSource(1)), 5)
	if remaining.NumCards() != 0 || picked.NumCards() != 2 {
		t.Errorf("overdraw: remaining %d, picked %d", remaining.NumCards(), picked.NumCards())
	}
}

func TestPickRandomDeterminism(t *testing.T) {
	deck := New(map[string]int{"Pizza": 5, "Crisp": 5})
	_, a := deck.PickRandom(rand.New(rand.NewSource(9)), 4)
	_, b := deck.PickRandom(rand.New(rand.NewSource(9)), 4)
	if !a.Equal(b) {
		t.Errorf("same seed should pick the same cards: %v vs %v", a.Names(), b.Names())
	}
}
