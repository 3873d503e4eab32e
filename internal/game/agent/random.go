package agent

import (
	"math/rand"

	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// RandomAgent picks uniformly among the legal actions it can enumerate,
// allocating dice payments with the engine's allocator. Given the same
// snapshot and source state it always picks the same action, which keeps
// self-play matches reproducible.
type RandomAgent struct {
	Rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{Rng: rng}
}

func (a *RandomAgent) ChooseAction(s *core.GameState, pid core.Pid) core.PlayerAction {
	if mustDeathSwap(s, pid) {
		return a.randomDeathSwap(s, pid)
	}
	mode := s.Mode()
	switch s.Phase() {
	case mode.CardSelectPhase():
		return core.CardsSelectAction{Cards: card.Empty()}
	case mode.StartingHandSelectPhase():
		return a.randomStartingCharacter(s, pid)
	}
	choices := a.legalActions(s, pid)
	return choices[a.Rng.Intn(len(choices))]
}

func (a *RandomAgent) randomDeathSwap(s *core.GameState, pid core.Pid) core.PlayerAction {
	alive := aliveBench(s, pid)
	if len(alive) == 0 {
		return core.DeathSwapAction{}
	}
	return core.DeathSwapAction{CharacterID: alive[a.Rng.Intn(len(alive))]}
}

func (a *RandomAgent) randomStartingCharacter(s *core.GameState, pid core.Pid) core.PlayerAction {
	var ids []int
	for _, c := range s.Player(pid).Characters().All() {
		if !c.Defeated() {
			ids = append(ids, c.ID())
		}
	}
	return core.CharacterSelectAction{CharacterID: ids[a.Rng.Intn(len(ids))]}
}

// legalActions enumerates the action-phase choices the agent knows how to
// make: castable skills, affordable swaps, playable cards, and always ending
// the round.
func (a *RandomAgent) legalActions(s *core.GameState, pid core.Pid) []core.PlayerAction {
	player := s.Player(pid)
	actions := []core.PlayerAction{core.EndRoundAction{}}

	if active, ok := player.Characters().Active(); ok && !active.Defeated() {
		for _, skill := range active.Kind().Skills() {
			if skill.Kind == core.SkillBurst && active.Energy() < active.MaxEnergy() {
				continue
			}
			payment, ok := player.Dice().BasicallySatisfy(skill.Cost)
			if !ok {
				continue
			}
			actions = append(actions, core.SkillAction{
				SkillName:   skill.Name,
				Instruction: core.DiceInstruction{Dice: payment},
			})
		}
	}

	swapCost := dice.NewAbstract(map[element.Element]int{element.Any: s.Mode().SwapCost()})
	if payment, ok := player.Dice().BasicallySatisfy(swapCost); ok {
		for _, id := range aliveBench(s, pid) {
			actions = append(actions, core.SwapAction{
				CharacterID: id,
				Instruction: core.DiceInstruction{Dice: payment},
			})
		}
	}

	for _, name := range player.Hand().Names() {
		c, ok := s.Registry().Card(name)
		if !ok || !c.Playable(s, pid) {
			continue
		}
		payment, ok := player.Dice().BasicallySatisfy(c.Cost())
		if !ok {
			continue
		}
		actions = append(actions, core.PlayCardAction{
			CardName:    name,
			Target:      a.cardTarget(s, pid),
			Instruction: core.DiceInstruction{Dice: payment},
		})
	}
	return actions
}

// cardTarget aims targeted cards at the agent's own active character, the only
// target shape the built-in catalog needs.
func (a *RandomAgent) cardTarget(s *core.GameState, pid core.Pid) core.StaticTarget {
	id := s.Player(pid).Characters().ActiveID()
	return core.StaticTarget{Pid: pid, Zone: core.ZoneCharacter, ID: id}
}

// aliveBench lists the living non-active characters of a player.
func aliveBench(s *core.GameState, pid core.Pid) []int {
	cs := s.Player(pid).Characters()
	var ids []int
	for _, c := range cs.All() {
		if !c.Defeated() && c.ID() != cs.ActiveID() {
			ids = append(ids, c.ID())
		}
	}
	return ids
}
