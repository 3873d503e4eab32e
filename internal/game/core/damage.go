package core

import (
	"fmt"

	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// DamageEffect resolves one instance of elemental or physical damage through
// the full pipeline: element confirmation, reaction confirmation against the
// target's aura, amount confirmation, then HP application floored at zero.
// Each confirmation pass runs the preprocessing walk over the source player's
// statuses and then the opponent's.
type DamageEffect struct {
	Damage Damage
}

func (DamageEffect) Name() string { return "Damage" }

func (e DamageEffect) Execute(s *GameState) *GameState {
	if !e.Damage.Element.CanDamage() {
		panic(fmt.Sprintf("core: %v is not a damage element", e.Damage.Element))
	}
	target, ok := damageTargetCharacter(s, e.Damage)
	if !ok || target.Defeated() {
		return s
	}

	s, d := elementConfirmation(s, e.Damage)
	s, d = reactionConfirmation(s, d)
	s, d = amountConfirmation(s, d)

	// Target again: preprocessing may have redirected nothing, but the
	// character value is stale after three confirmation passes.
	target, ok = damageTargetCharacter(s, d)
	if !ok {
		return s
	}
	hp := target.HP() - d.Amount
	if hp < 0 {
		hp = 0
	}
	targetPid := damageTargetPid(d)
	return replaceCharacter(s, targetPid, target.Builder().HP(hp).Build())
}

func damageTargetPid(d Damage) Pid {
	switch d.Target {
	case TargetOppoActive:
		return d.Source.Pid.Other()
	case TargetSelfActive:
		return d.Source.Pid
	}
	panic(fmt.Sprintf("core: unknown damage target %d", int(d.Target)))
}

func damageTargetCharacter(s *GameState, d Damage) (Character, bool) {
	return s.Player(damageTargetPid(d)).Characters().Active()
}

// damagePreprocess runs one preprocessing pass over both players' statuses,
// source player first.
func damagePreprocess(s *GameState, d Damage, pp PreprocessType) (*GameState, Damage) {
	source := d.Source.Pid
	s, d = preprocessAll(s, source, d, pp)
	s, d = preprocessAll(s, source.Other(), d, pp)
	return s, d
}

// elementConfirmation lets statuses override the damage's element kind before
// anything else happens (e.g. infusions).
func elementConfirmation(s *GameState, d Damage) (*GameState, Damage) {
	return damagePreprocess(s, d, PPDmgElement)
}

// reactionConfirmation inspects the target's aura: the first held element in
// insertion order that reacts with the incoming element is consumed and the
// reaction recorded on the damage; otherwise an aurable element attaches.
// Reaction statuses then preprocess the updated damage.
func reactionConfirmation(s *GameState, d Damage) (*GameState, Damage) {
	target, ok := damageTargetCharacter(s, d)
	if !ok {
		return s, d
	}

	aura := target.Aura()
	newAura := aura
	for _, first := range aura.Elems() {
		if reaction, reacts := element.ConsultReaction(first, d.Element); reacts {
			newAura = aura.Remove(first)
			d.Reaction = &element.Detail{Reaction: reaction, First: first, Second: d.Element}
			d.Amount += reaction.DamageBoost()
			break
		}
	}
	if d.Reaction == nil && newAura.Aurable(d.Element) {
		newAura = newAura.Add(d.Element)
	}

	if !newAura.Equal(aura) {
		s = replaceCharacter(s, damageTargetPid(d), target.Builder().Aura(newAura).Build())
	}
	return damagePreprocess(s, d, PPDmgReaction)
}

// amountConfirmation lets statuses scale the numeric amount last (shields,
// bonuses), after element and reaction are settled.
func amountConfirmation(s *GameState, d Damage) (*GameState, Damage) {
	return damagePreprocess(s, d, PPDmgAmount)
}
