package catalog

import (
	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

func anyCost(n int) dice.AbstractDice {
	return dice.NewAbstract(map[element.Element]int{element.Any: n})
}

// hasHungryCharacter reports whether pid owns a living character that has not
// eaten this round, the shared precondition of food cards.
func hasHungryCharacter(s *core.GameState, pid core.Pid) bool {
	for _, c := range s.Player(pid).Characters().All() {
		if !c.Defeated() && !c.CharacterStatuses().Contains(Satiated{}.Name()) {
			return true
		}
	}
	return false
}

// MushroomPizza heals the targeted character for one and satiates it.
type MushroomPizza struct{}

func (MushroomPizza) Name() string           { return "Mushroom Pizza" }
func (MushroomPizza) Cost() dice.AbstractDice { return anyCost(1) }

func (MushroomPizza) Playable(s *core.GameState, pid core.Pid) bool {
	return hasHungryCharacter(s, pid)
}

func (MushroomPizza) OnPlay(_ *core.GameState, _ core.Pid, target core.StaticTarget) []core.Effect {
	return []core.Effect{
		core.RecoverHPEffect{Target: target, Amount: 1},
		core.AddStatusEffect{Target: target, Namespace: core.NSCharacterStatus, Status: Satiated{}},
	}
}

// LotusFlowerCrisp shields the targeted character against the next three
// points of damage and satiates it.
type LotusFlowerCrisp struct{}

func (LotusFlowerCrisp) Name() string           { return "Lotus Flower Crisp" }
func (LotusFlowerCrisp) Cost() dice.AbstractDice { return anyCost(1) }

func (LotusFlowerCrisp) Playable(s *core.GameState, pid core.Pid) bool {
	return hasHungryCharacter(s, pid)
}

func (LotusFlowerCrisp) OnPlay(_ *core.GameState, _ core.Pid, target core.StaticTarget) []core.Effect {
	return []core.Effect{
		core.AddStatusEffect{Target: target, Namespace: core.NSCharacterStatus, Status: LotusShield{}},
		core.AddStatusEffect{Target: target, Namespace: core.NSCharacterStatus, Status: Satiated{}},
	}
}

// Starsigns charges the active character's energy by one.
type Starsigns struct{}

func (Starsigns) Name() string           { return "Starsigns" }
func (Starsigns) Cost() dice.AbstractDice { return anyCost(2) }

func (Starsigns) Playable(s *core.GameState, pid core.Pid) bool {
	active, ok := s.Player(pid).Characters().Active()
	return ok && !active.Defeated() && active.Energy() < active.MaxEnergy()
}

func (Starsigns) OnPlay(s *core.GameState, pid core.Pid, _ core.StaticTarget) []core.Effect {
	active, ok := s.Player(pid).Characters().Active()
	if !ok {
		return nil
	}
	return []core.Effect{core.EnergyRechargeEffect{
		Target: core.StaticTarget{Pid: pid, Zone: core.ZoneCharacter, ID: active.ID()},
		Amount: 1,
	}}
}

// TheBestestTravelCompanion converts two dice of any kind into two OMNI dice.
type TheBestestTravelCompanion struct{}

func (TheBestestTravelCompanion) Name() string           { return "The Bestest Travel Companion!" }
func (TheBestestTravelCompanion) Cost() dice.AbstractDice { return anyCost(2) }

func (TheBestestTravelCompanion) Playable(*core.GameState, core.Pid) bool { return true }

func (TheBestestTravelCompanion) OnPlay(_ *core.GameState, pid core.Pid, _ core.StaticTarget) []core.Effect {
	return []core.Effect{core.AddDiceEffect{
		Pid:  pid,
		Dice: dice.FromAll(2, element.Omni),
	}}
}
