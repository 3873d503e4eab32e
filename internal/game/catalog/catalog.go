// Package catalog holds the concrete character, card and status
// implementations shipped with the engine. The engine core never references
// this package; everything here plugs in through the capability contracts and
// is assembled into a registry at startup.
package catalog

import (
	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/core"
)

// Characters returns every character kind in the catalog.
func Characters() []core.CharacterKind {
	return []core.CharacterKind{
		Kaeya{},
		Keqing{},
		Fischl{},
	}
}

// Cards returns every playable card in the catalog.
func Cards() []core.Card {
	return []core.Card{
		MushroomPizza{},
		LotusFlowerCrisp{},
		Starsigns{},
		TheBestestTravelCompanion{},
	}
}

// NewRegistry assembles the full catalog into a registry.
func NewRegistry() *core.Registry {
	return core.NewRegistry(Cards(), Characters())
}

// DefaultRoster builds the standard three-character roster with ids 1..3.
func DefaultRoster() core.Characters {
	return core.NewCharacters(
		core.NewCharacter(Kaeya{}, 1),
		core.NewCharacter(Keqing{}, 2),
		core.NewCharacter(Fischl{}, 3),
	)
}

// DefaultDeck builds the standard thirty-card deck.
func DefaultDeck() card.Cards {
	return card.New(map[string]int{
		MushroomPizza{}.Name():             8,
		LotusFlowerCrisp{}.Name():          8,
		Starsigns{}.Name():                 7,
		TheBestestTravelCompanion{}.Name(): 7,
	})
}
