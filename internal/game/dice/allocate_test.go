package dice

import (
	"testing"

	"github.com/invokesim/invoke-server-go/internal/game/element"
)

func actual(counts map[element.Element]int) ActualDice {
	return NewActual(counts)
}

func abstract(counts map[element.Element]int) AbstractDice {
	return NewAbstract(counts)
}

func TestJustSatisfyExact(t *testing.T) {
	req := abstract(map[element.Element]int{element.Cryo: 1, element.Any: 2})

	if !actual(map[element.Element]int{element.Cryo: 1, element.Hydro: 2}).JustSatisfy(req) {
		t.Error("exact payment with mixed ANY should satisfy")
	}
	if actual(map[element.Element]int{element.Cryo: 2, element.Hydro: 2}).JustSatisfy(req) {
		t.Error("a payment with a leftover die must not just-satisfy")
	}
	if !actual(map[element.Element]int{element.Cryo: 2, element.Hydro: 2}).LooselySatisfy(req) {
		t.Error("a superset should loosely satisfy")
	}
}

func TestOmniPaysPureRequirement(t *testing.T) {
	req := abstract(map[element.Element]int{element.Cryo: 3})
	if !actual(map[element.Element]int{element.Omni: 3}).JustSatisfy(req) {
		t.Error("OMNI dice should cover a pure requirement")
	}
	if !actual(map[element.Element]int{element.Cryo: 1, element.Omni: 2}).JustSatisfy(req) {
		t.Error("mixed pure+OMNI should cover a pure requirement")
	}
	if actual(map[element.Element]int{element.Cryo: 1, element.Hydro: 2}).JustSatisfy(req) {
		t.Error("off-element dice must not cover a pure requirement")
	}
}

func TestOmniRequirementNeedsOneKind(t *testing.T) {
	// An OMNI requirement means N dice of one same kind.
	req := abstract(map[element.Element]int{element.Omni: 3})

	if !actual(map[element.Element]int{element.Pyro: 3}).JustSatisfy(req) {
		t.Error("three of a kind should satisfy OMNI 3")
	}
	if !actual(map[element.Element]int{element.Pyro: 2, element.Omni: 1}).JustSatisfy(req) {
		t.Error("a pile topped up with OMNI should satisfy OMNI 3")
	}
	if actual(map[element.Element]int{element.Pyro: 1, element.Hydro: 1, element.Geo: 1}).JustSatisfy(req) {
		t.Error("three mixed kinds must not satisfy OMNI 3")
	}
}

func TestBasicallySatisfyPure(t *testing.T) {
	req := abstract(map[element.Element]int{element.Cryo: 3})
	held := actual(map[element.Element]int{element.Cryo: 1, element.Omni: 2, element.Pyro: 4})

	got, ok := held.BasicallySatisfy(req)
	if !ok {
		t.Fatal("allocation should exist")
	}
	want := actual(map[element.Element]int{element.Cryo: 1, element.Omni: 2})
	if got != want {
		t.Errorf("allocation = %v, want %v", got, want)
	}
	if !got.JustSatisfy(req) {
		t.Error("allocation must pay the requirement exactly")
	}
}

func TestBasicallySatisfyOmniPicksClosestPile(t *testing.T) {
	req := abstract(map[element.Element]int{element.Omni: 3})
	held := actual(map[element.Element]int{element.Pyro: 4, element.Electro: 3})

	got, ok := held.BasicallySatisfy(req)
	if !ok {
		t.Fatal("allocation should exist")
	}
	// The pile closest to the need from above is drained, conserving the
	// larger pile.
	want := actual(map[element.Element]int{element.Electro: 3})
	if got != want {
		t.Errorf("allocation = %v, want %v", got, want)
	}
}

func TestBasicallySatisfyAnyDrainsSmallPilesFirst(t *testing.T) {
	req := abstract(map[element.Element]int{element.Any: 2})
	held := actual(map[element.Element]int{element.Hydro: 1, element.Anemo: 4})

	got, ok := held.BasicallySatisfy(req)
	if !ok {
		t.Fatal("allocation should exist")
	}
	want := actual(map[element.Element]int{element.Hydro: 1, element.Anemo: 1})
	if got != want {
		t.Errorf("allocation = %v, want %v", got, want)
	}
}

func TestBasicallySatisfyInsufficient(t *testing.T) {
	req := abstract(map[element.Element]int{element.Cryo: 3})
	if _, ok := actual(map[element.Element]int{element.Cryo: 1, element.Pyro: 5}).BasicallySatisfy(req); ok {
		t.Error("allocation should fail without enough CRYO or OMNI")
	}
	if _, ok := actual(map[element.Element]int{element.Cryo: 2}).BasicallySatisfy(req); ok {
		t.Error("allocation should fail with too few dice overall")
	}
}

func TestBasicallySatisfyAllocationsAlwaysLegal(t *testing.T) {
	reqs := []AbstractDice{
		abstract(map[element.Element]int{element.Cryo: 1, element.Any: 2}),
		abstract(map[element.Element]int{element.Omni: 4}),
		abstract(map[element.Element]int{element.Electro: 3}),
		abstract(map[element.Element]int{element.Any: 1}),
	}
	held := actual(map[element.Element]int{
		element.Cryo: 2, element.Electro: 2, element.Omni: 2, element.Dendro: 2,
	})
	for _, req := range reqs {
		got, ok := held.BasicallySatisfy(req)
		if !ok {
			continue
		}
		if !got.JustSatisfy(req) {
			t.Errorf("allocation %v does not just-satisfy %v", got, req)
		}
		if !held.SubActual(got).IsLegal() {
			t.Errorf("allocation %v exceeds held dice %v", got, held)
		}
	}
}
