package core

import (
	"fmt"

	"github.com/invokesim/invoke-server-go/internal/game/dice"
)

// Effect is an immutable command against a snapshot. Execute is a total,
// deterministic function from one snapshot to the next; an effect whose
// target no longer exists returns the state unchanged (a fizzle), while a
// violated engine precondition panics (an invariant violation).
type Effect interface {
	Name() string
	Execute(s *GameState) *GameState
}

// TriggerAllEffect runs the signal triggering protocol for one player: every
// status holder is visited in the fixed traversal order, reactions are
// resolved against the threaded state, and the batched effects are pushed to
// the front of the stack.
type TriggerAllEffect struct {
	Pid    Pid
	Signal TriggeringSignal
}

func (e TriggerAllEffect) Name() string { return "TriggerAll" }

func (e TriggerAllEffect) Execute(s *GameState) *GameState {
	s, effects := triggerAll(s, e.Pid, e.Signal)
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(effects...)
	}).Build()
}

// TriggerStatusEffect triggers a single named status with a signal. Used when
// an effect needs to poke one specific status rather than broadcast.
type TriggerStatusEffect struct {
	Target     StaticTarget
	Namespace  StatusNamespace
	StatusName string
	Signal     TriggeringSignal
}

func (e TriggerStatusEffect) Name() string { return "TriggerStatus" }

func (e TriggerStatusEffect) Execute(s *GameState) *GameState {
	holder, ok := statusCollection(s, e.Target, e.Namespace)
	if !ok {
		return s
	}
	st, ok := holder.Find(e.StatusName)
	if !ok || !st.ReactsTo(e.Signal) {
		return s
	}
	reaction := st.React(s, e.Target, e.Signal)
	s = applyStatusUpdate(s, e.Target, e.Namespace, st, reaction.Self)
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(reaction.Effects...)
	}).Build()
}

// DeathCheckEffect inspects both active characters and, when one has fallen,
// opens the death-swap sub-phase for its owner — or ends the game when the
// owner has no character left.
type DeathCheckEffect struct{}

func (DeathCheckEffect) Name() string { return "DeathCheck" }

func (DeathCheckEffect) Execute(s *GameState) *GameState {
	var pid Pid
	if active, ok := s.Player(P1).Characters().Active(); ok && active.Defeated() {
		pid = P1
	} else if active, ok := s.Player(P2).Characters().Active(); ok && active.Defeated() {
		pid = P2
	} else {
		return s
	}

	swapper := s.Player(pid)
	if swapper.Defeated() {
		return s.Builder().Phase(s.Mode().GameEndPhase()).Build()
	}
	waiting := s.OtherPlayer(pid)
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(
			DeathSwapPhaseStartEffect{},
			DeathSwapPhaseEndEffect{
				Pid:      pid,
				MyAct:    swapper.Act(),
				OtherAct: waiting.Act(),
			},
		)
	}).FPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActAction).Build()
	}).FOtherPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActPassiveWait).Build()
	}).Build()
}

// DeathSwapPhaseStartEffect is the sentinel marking the start of a death-swap
// sub-phase. The phase machine recognizes it on the stack front to decide it
// is waiting for a player; it is popped by the swap action, never executed.
type DeathSwapPhaseStartEffect struct{}

func (DeathSwapPhaseStartEffect) Name() string { return "DeathSwapPhaseStart" }

func (DeathSwapPhaseStartEffect) Execute(s *GameState) *GameState { return s }

// DeathSwapPhaseEndEffect restores both players' phase tags once the
// death-swap choice has resolved.
type DeathSwapPhaseEndEffect struct {
	Pid      Pid
	MyAct    Act
	OtherAct Act
}

func (DeathSwapPhaseEndEffect) Name() string { return "DeathSwapPhaseEnd" }

func (e DeathSwapPhaseEndEffect) Execute(s *GameState) *GameState {
	return s.Builder().FPlayer(e.Pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(e.MyAct).Build()
	}).FOtherPlayer(e.Pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(e.OtherAct).Build()
	}).Build()
}

// EndPhaseCheckoutEffect queues the end-of-round checkout broadcast: the
// active player's holders first, then the opponent's.
type EndPhaseCheckoutEffect struct{}

func (EndPhaseCheckoutEffect) Name() string { return "EndPhaseCheckout" }

func (EndPhaseCheckoutEffect) Execute(s *GameState) *GameState {
	active := s.ActivePid()
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(
			TriggerAllEffect{Pid: active, Signal: SignalEndRoundCheckOut},
			TriggerAllEffect{Pid: active.Other(), Signal: SignalEndRoundCheckOut},
		)
	}).Build()
}

// EndRoundEffect queues the round-end cleanup broadcast (e.g. Satiated
// removal), active player first.
type EndRoundEffect struct{}

func (EndRoundEffect) Name() string { return "EndRound" }

func (EndRoundEffect) Execute(s *GameState) *GameState {
	active := s.ActivePid()
	return s.Builder().FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(
			TriggerAllEffect{Pid: active, Signal: SignalRoundEnd},
			TriggerAllEffect{Pid: active.Other(), Signal: SignalRoundEnd},
		)
	}).Build()
}

// TurnEndEffect passes the turn after a combat action: the actor goes to
// passive-wait and the opponent becomes the actor — unless the opponent has
// already declared end of round, in which case the actor keeps acting.
type TurnEndEffect struct{}

func (TurnEndEffect) Name() string { return "TurnEnd" }

func (TurnEndEffect) Execute(s *GameState) *GameState {
	active := s.ActivePid()
	player := s.Player(active)
	other := s.OtherPlayer(active)
	if player.Act() != ActAction {
		panic(fmt.Sprintf("core: turn end while active player is %v", player.Act()))
	}
	if other.Act() == ActEnd {
		return s
	}
	return s.Builder().ActivePid(active.Other()).FPlayer(active, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActPassiveWait).Build()
	}).FOtherPlayer(active, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(ActAction).Build()
	}).Build()
}

// SetBothPlayerActEffect sets both players' phase tags.
type SetBothPlayerActEffect struct {
	Act Act
}

func (SetBothPlayerActEffect) Name() string { return "SetBothPlayerAct" }

func (e SetBothPlayerActEffect) Execute(s *GameState) *GameState {
	return s.Builder().FPlayer(P1, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(e.Act).Build()
	}).FPlayer(P2, func(p *PlayerState) *PlayerState {
		return p.Builder().Act(e.Act).Build()
	}).Build()
}

// SwapCharacterEffect makes the addressed character active and broadcasts the
// swap event to its owner's statuses. Swapping to a defeated or unknown
// character fizzles.
type SwapCharacterEffect struct {
	Target StaticTarget
}

func (SwapCharacterEffect) Name() string { return "SwapCharacter" }

func (e SwapCharacterEffect) Execute(s *GameState) *GameState {
	c, ok := s.CharacterAt(e.Target)
	if !ok || c.Defeated() {
		return s
	}
	pid := e.Target.Pid
	if s.Player(pid).Characters().ActiveID() == c.ID() {
		return s
	}
	return s.Builder().FPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().FCharacters(func(cs Characters) Characters {
			return cs.WithActiveID(c.ID())
		}).Build()
	}).FEffectStack(func(es EffectStack) EffectStack {
		return es.PushFront(TriggerAllEffect{Pid: pid, Signal: SignalSwapEvent})
	}).Build()
}

// RecoverHPEffect heals the addressed character, capped at max HP. Healing a
// missing or defeated character fizzles.
type RecoverHPEffect struct {
	Target StaticTarget
	Amount int
}

func (RecoverHPEffect) Name() string { return "RecoverHP" }

func (e RecoverHPEffect) Execute(s *GameState) *GameState {
	c, ok := s.CharacterAt(e.Target)
	if !ok || c.Defeated() {
		return s
	}
	hp := c.HP() + e.Amount
	if hp > c.MaxHP() {
		hp = c.MaxHP()
	}
	if hp == c.HP() {
		return s
	}
	return replaceCharacter(s, e.Target.Pid, c.Builder().HP(hp).Build())
}

// EnergyRechargeEffect charges the addressed character's energy, capped at
// its maximum.
type EnergyRechargeEffect struct {
	Target StaticTarget
	Amount int
}

func (EnergyRechargeEffect) Name() string { return "EnergyRecharge" }

func (e EnergyRechargeEffect) Execute(s *GameState) *GameState {
	c, ok := s.CharacterAt(e.Target)
	if !ok || c.Defeated() {
		return s
	}
	energy := c.Energy() + e.Amount
	if energy > c.MaxEnergy() {
		energy = c.MaxEnergy()
	}
	if energy == c.Energy() {
		return s
	}
	return replaceCharacter(s, e.Target.Pid, c.Builder().Energy(energy).Build())
}

// EnergyDrainEffect drains the addressed character's energy, floored at zero.
type EnergyDrainEffect struct {
	Target StaticTarget
	Amount int
}

func (EnergyDrainEffect) Name() string { return "EnergyDrain" }

func (e EnergyDrainEffect) Execute(s *GameState) *GameState {
	c, ok := s.CharacterAt(e.Target)
	if !ok {
		return s
	}
	energy := c.Energy() - e.Amount
	if energy < 0 {
		energy = 0
	}
	if energy == c.Energy() {
		return s
	}
	return replaceCharacter(s, e.Target.Pid, c.Builder().Energy(energy).Build())
}

// AddStatusEffect attaches a status to the addressed collection, replacing a
// same-named instance in place.
type AddStatusEffect struct {
	Target    StaticTarget
	Namespace StatusNamespace
	Status    Status
}

func (AddStatusEffect) Name() string { return "AddStatus" }

func (e AddStatusEffect) Execute(s *GameState) *GameState {
	return updateStatusCollection(s, e.Target, e.Namespace, func(col Statuses) Statuses {
		return col.Update(e.Status)
	})
}

// UpdateStatusEffect replaces a status in place, preserving its position.
type UpdateStatusEffect struct {
	Target    StaticTarget
	Namespace StatusNamespace
	Status    Status
}

func (UpdateStatusEffect) Name() string { return "UpdateStatus" }

func (e UpdateStatusEffect) Execute(s *GameState) *GameState {
	return updateStatusCollection(s, e.Target, e.Namespace, func(col Statuses) Statuses {
		return col.Update(e.Status)
	})
}

// RemoveStatusEffect removes the named status; removing an absent status
// fizzles.
type RemoveStatusEffect struct {
	Target     StaticTarget
	Namespace  StatusNamespace
	StatusName string
}

func (RemoveStatusEffect) Name() string { return "RemoveStatus" }

func (e RemoveStatusEffect) Execute(s *GameState) *GameState {
	return updateStatusCollection(s, e.Target, e.Namespace, func(col Statuses) Statuses {
		return col.Remove(e.StatusName)
	})
}

// AddDiceEffect grants dice to a player.
type AddDiceEffect struct {
	Pid  Pid
	Dice dice.ActualDice
}

func (AddDiceEffect) Name() string { return "AddDice" }

func (e AddDiceEffect) Execute(s *GameState) *GameState {
	return s.Builder().FPlayer(e.Pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Dice(p.Dice().AddActual(e.Dice)).Build()
	}).Build()
}

// RemoveDiceEffect removes already-validated dice from a player's pool.
// Removing dice the player does not hold is an engine invariant violation and
// panics: the phase machine validates payments before queueing this effect.
type RemoveDiceEffect struct {
	Pid  Pid
	Dice dice.ActualDice
}

func (RemoveDiceEffect) Name() string { return "RemoveDice" }

func (e RemoveDiceEffect) Execute(s *GameState) *GameState {
	remaining := s.Player(e.Pid).Dice().SubActual(e.Dice)
	if !remaining.IsLegal() {
		panic(fmt.Sprintf("core: removing dice %v the player does not hold", e.Dice))
	}
	return s.Builder().FPlayer(e.Pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Dice(remaining).Build()
	}).Build()
}

// RemoveCardEffect removes one copy of the named card from a player's hand;
// removing an absent card fizzles.
type RemoveCardEffect struct {
	Pid      Pid
	CardName string
}

func (RemoveCardEffect) Name() string { return "RemoveCard" }

func (e RemoveCardEffect) Execute(s *GameState) *GameState {
	if !s.Player(e.Pid).Hand().Contains(e.CardName) {
		return s
	}
	return s.Builder().FPlayer(e.Pid, func(p *PlayerState) *PlayerState {
		return p.Builder().Hand(p.Hand().Remove(e.CardName)).Build()
	}).Build()
}

// SetPhaseEffect moves the game to another phase.
type SetPhaseEffect struct {
	Phase Phase
}

func (SetPhaseEffect) Name() string { return "SetPhase" }

func (e SetPhaseEffect) Execute(s *GameState) *GameState {
	return s.Builder().Phase(e.Phase).Build()
}

// replaceCharacter threads a rebuilt character back into a snapshot.
func replaceCharacter(s *GameState, pid Pid, c Character) *GameState {
	return s.Builder().FPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().FCharacters(func(cs Characters) Characters {
			return cs.Replace(c)
		}).Build()
	}).Build()
}

// statusCollection resolves the collection a namespaced status lives in.
// ok=false means the holder no longer exists (fizzle).
func statusCollection(s *GameState, target StaticTarget, ns StatusNamespace) (Statuses, bool) {
	if ns.CharacterScoped() {
		c, ok := s.CharacterAt(target)
		if !ok {
			return Statuses{}, false
		}
		return c.Namespace(ns), true
	}
	return s.Player(target.Pid).Namespace(ns), true
}

// updateStatusCollection applies f to the addressed collection and threads
// the result back into the snapshot. A missing holder fizzles.
func updateStatusCollection(s *GameState, target StaticTarget, ns StatusNamespace, f func(Statuses) Statuses) *GameState {
	if ns.CharacterScoped() {
		c, ok := s.CharacterAt(target)
		if !ok {
			return s
		}
		updated := f(c.Namespace(ns))
		return replaceCharacter(s, target.Pid, c.Builder().WithNamespace(ns, updated).Build())
	}
	updated := f(s.Player(target.Pid).Namespace(ns))
	return s.Builder().FPlayer(target.Pid, func(p *PlayerState) *PlayerState {
		return p.Builder().WithNamespace(ns, updated).Build()
	}).Build()
}

// applyStatusUpdate folds a status's post-reaction fate into the snapshot.
func applyStatusUpdate(s *GameState, target StaticTarget, ns StatusNamespace, current Status, update StatusUpdate) *GameState {
	switch {
	case update.Remove:
		return updateStatusCollection(s, target, ns, func(col Statuses) Statuses {
			return col.Remove(current.Name())
		})
	case update.Updated != nil:
		return updateStatusCollection(s, target, ns, func(col Statuses) Statuses {
			return col.Update(update.Updated)
		})
	}
	return s
}
