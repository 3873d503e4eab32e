package core

import (
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// actionPhase alternates combat actions between the players until both have
// declared end of round, draining the effect stack between actions. A defeated
// active character suspends the alternation in a death-swap sub-phase.
type actionPhase struct{}

func (actionPhase) Name() string { return "ActionPhase" }

func (actionPhase) Step(s *GameState) *GameState {
	switch {
	case bothAct(s, ActPassiveWait):
		return actionPhaseStart(s)
	case executingEffects(s):
		return s.ExecuteOne()
	case bothAct(s, ActEnd) && s.EffectStack().IsEmpty():
		return s.Builder().
			Phase(s.Mode().EndPhase()).
			FPlayer(P1, resetToPassive).
			FPlayer(P2, resetToPassive).
			Build()
	}
	panic("core: action phase stepped while waiting for a player")
}

// actionPhaseStart gives the first turn to the active player and broadcasts
// round start, active player's holders first.
func actionPhaseStart(s *GameState) *GameState {
	active := s.ActivePid()
	return s.Builder().FPlayer(active, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActAction).Build()
	}).FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(
			TriggerAllEffect{Pid: active, Signal: SignalRoundStart},
			TriggerAllEffect{Pid: active.Other(), Signal: SignalRoundStart},
		)
	}).Build()
}

func (actionPhase) StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error) {
	if swap, ok := action.(DeathSwapAction); ok {
		return handleDeathSwapAction(s, pid, swap)
	}
	if _, ok := deathSwapping(s); ok {
		return nil, illegalActionf("a death swap is pending")
	}
	if !s.EffectStack().IsEmpty() {
		return nil, illegalActionf("effects are still resolving")
	}
	actor, ok := waitingActor(s)
	if !ok || actor != pid {
		return nil, illegalActionf("it is not player %v's turn", pid)
	}

	switch a := action.(type) {
	case SkillAction:
		return handleSkillAction(s, pid, a)
	case SwapAction:
		return handleSwapAction(s, pid, a)
	case PlayCardAction:
		return handlePlayCardAction(s, pid, a)
	case EndRoundAction:
		return handleEndRoundAction(s, pid)
	}
	return nil, illegalActionf("%s not allowed in the action phase", action.ActionName())
}

func (actionPhase) WaitingFor(s *GameState) (Pid, bool) {
	if pid, ok := deathSwapping(s); ok {
		return pid, true
	}
	if !s.EffectStack().IsEmpty() || bothAct(s, ActPassiveWait) {
		return 0, false
	}
	return waitingActor(s)
}

// payment validates a player-submitted dice selection against a requirement:
// the selection must pay it exactly and be covered by the player's pool.
func payment(s *GameState, pid Pid, selected dice.ActualDice, req dice.AbstractDice) error {
	if !selected.IsLegal() {
		return illegalActionf("malformed dice selection %v", selected)
	}
	if !selected.JustSatisfy(req) {
		return illegalActionf("dice %v do not pay cost %v", selected, req)
	}
	if !s.Player(pid).Dice().SubActual(selected).IsLegal() {
		return illegalActionf("dice %v are not all held", selected)
	}
	return nil
}

// handleSkillAction casts a skill of the active character as a combat action:
// pay, drain energy for a burst, run the skill's effects, recharge energy for
// a non-burst, then death check, combat-action broadcast and turn end.
func handleSkillAction(s *GameState, pid Pid, a SkillAction) (*GameState, error) {
	active, ok := s.Player(pid).Characters().Active()
	if !ok || active.Defeated() {
		return nil, illegalActionf("no living active character")
	}
	var skill *Skill
	for _, sk := range active.Kind().Skills() {
		if sk.Name == a.SkillName {
			sk := sk
			skill = &sk
			break
		}
	}
	if skill == nil {
		return nil, illegalActionf("character %q has no skill %q", active.Kind().Name(), a.SkillName)
	}
	if skill.Kind == SkillBurst && active.Energy() < active.MaxEnergy() {
		return nil, illegalActionf("burst %q needs %d energy, has %d",
			skill.Name, active.MaxEnergy(), active.Energy())
	}
	if err := payment(s, pid, a.Instruction.Dice, skill.Cost); err != nil {
		return nil, err
	}

	caster := StaticTarget{Pid: pid, Zone: ZoneCharacter, ID: active.ID()}
	effects := []Effect{RemoveDiceEffect{Pid: pid, Dice: a.Instruction.Dice}}
	if skill.Kind == SkillBurst {
		effects = append(effects, EnergyDrainEffect{Target: caster, Amount: active.MaxEnergy()})
	}
	effects = append(effects, skill.Effects(s, caster)...)
	if skill.Kind != SkillBurst {
		effects = append(effects, EnergyRechargeEffect{Target: caster, Amount: 1})
	}
	effects = append(effects,
		DeathCheckEffect{},
		TriggerAllEffect{Pid: pid, Signal: SignalCombatAction},
		TurnEndEffect{},
	)
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(effects...)
	}).Build(), nil
}

// handleSwapAction swaps the active character as a combat action.
func handleSwapAction(s *GameState, pid Pid, a SwapAction) (*GameState, error) {
	player := s.Player(pid)
	c, ok := player.Characters().Get(a.CharacterID)
	if !ok {
		return nil, illegalActionf("unknown character %d", a.CharacterID)
	}
	if c.Defeated() {
		return nil, illegalActionf("character %d is defeated", a.CharacterID)
	}
	if player.Characters().ActiveID() == c.ID() {
		return nil, illegalActionf("character %d is already active", a.CharacterID)
	}
	if err := payment(s, pid, a.Instruction.Dice, swapRequirement(s)); err != nil {
		return nil, err
	}
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(
			RemoveDiceEffect{Pid: pid, Dice: a.Instruction.Dice},
			SwapCharacterEffect{Target: StaticTarget{Pid: pid, Zone: ZoneCharacter, ID: c.ID()}},
			TriggerAllEffect{Pid: pid, Signal: SignalCombatAction},
			TurnEndEffect{},
		)
	}).Build(), nil
}

// handlePlayCardAction plays a card from hand as a fast action: the turn does
// not pass afterwards.
func handlePlayCardAction(s *GameState, pid Pid, a PlayCardAction) (*GameState, error) {
	if !s.Player(pid).Hand().Contains(a.CardName) {
		return nil, illegalActionf("card %q not in hand", a.CardName)
	}
	c, ok := s.Registry().Card(a.CardName)
	if !ok {
		return nil, illegalActionf("unknown card %q", a.CardName)
	}
	if !c.Playable(s, pid) {
		return nil, illegalActionf("card %q is not playable now", a.CardName)
	}
	if err := payment(s, pid, a.Instruction.Dice, c.Cost()); err != nil {
		return nil, err
	}

	effects := []Effect{
		RemoveCardEffect{Pid: pid, CardName: a.CardName},
		RemoveDiceEffect{Pid: pid, Dice: a.Instruction.Dice},
	}
	effects = append(effects, c.OnPlay(s, pid, a.Target)...)
	effects = append(effects,
		DeathCheckEffect{},
		TriggerAllEffect{Pid: pid, Signal: SignalFastAction},
	)
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(effects...)
	}).Build(), nil
}

// handleEndRoundAction declares end of round. The first player to declare
// becomes next round's first mover, so when the second player follows the
// active designation swings back to the first declarer.
func handleEndRoundAction(s *GameState, pid Pid) (*GameState, error) {
	other := s.OtherPlayer(pid)
	b := s.Builder().FPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActEnd).Build()
	})
	if other.Act() == ActEnd {
		return b.ActivePid(pid.Other()).Build(), nil
	}
	return b.ActivePid(pid.Other()).FOtherPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActAction).Build()
	}).Build(), nil
}

// swapRequirement is the cost of a plain character swap under the mode.
func swapRequirement(s *GameState) dice.AbstractDice {
	return dice.NewAbstract(map[element.Element]int{element.Any: s.Mode().SwapCost()})
}
