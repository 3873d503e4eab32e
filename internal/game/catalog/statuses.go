package catalog

import (
	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// damageHitsHolder reports whether a damage instance resolves against the
// character holding the status addressed by holder.
func damageHitsHolder(s *core.GameState, holder core.StaticTarget, d core.Damage) bool {
	targetPid := d.Source.Pid
	if d.Target == core.TargetOppoActive {
		targetPid = d.Source.Pid.Other()
	}
	if holder.Pid != targetPid || holder.Zone != core.ZoneCharacter {
		return false
	}
	return s.Player(targetPid).Characters().ActiveID() == holder.ID
}

// Satiated marks a character that has eaten this round. It blocks further food
// and clears itself at round end.
type Satiated struct {
	core.PassiveStatus
}

func (Satiated) Name() string { return "Satiated" }

func (Satiated) ReactsTo(signal core.TriggeringSignal) bool {
	return signal == core.SignalRoundEnd
}

func (Satiated) React(*core.GameState, core.StaticTarget, core.TriggeringSignal) core.StatusReaction {
	return core.StatusReaction{Self: core.StatusUpdate{Remove: true}}
}

// LotusShield absorbs up to three points of the next damage its holder takes,
// then expires.
type LotusShield struct {
	core.PassiveStatus
}

func (LotusShield) Name() string { return "Lotus Shield" }

func (st LotusShield) Preprocess(s *core.GameState, source core.StaticTarget, d core.Damage, pp core.PreprocessType) (core.Damage, core.StatusUpdate) {
	if pp != core.PPDmgAmount || d.Amount <= 0 {
		return d, core.StatusUpdate{}
	}
	if !damageHitsHolder(s, source, d) {
		return d, core.StatusUpdate{}
	}
	absorbed := d.Amount
	if absorbed > 3 {
		absorbed = 3
	}
	d.Amount -= absorbed
	return d, core.StatusUpdate{Remove: true}
}

// Icicle is the combat status left by Glacial Waltz: each time its owner swaps
// characters it fires two Cryo damage at the opposing active character.
type Icicle struct {
	core.PassiveStatus
	Usages int
}

func (Icicle) Name() string { return "Icicle" }

func (Icicle) ReactsTo(signal core.TriggeringSignal) bool {
	return signal == core.SignalSwapEvent
}

func (st Icicle) React(_ *core.GameState, source core.StaticTarget, _ core.TriggeringSignal) core.StatusReaction {
	effects := []core.Effect{
		core.DamageEffect{Damage: core.Damage{
			Source:  source,
			Target:  core.TargetOppoActive,
			Element: element.Cryo,
			Amount:  2,
		}},
		core.DeathCheckEffect{},
	}
	self := core.StatusUpdate{Updated: Icicle{Usages: st.Usages - 1}}
	if st.Usages <= 1 {
		self = core.StatusUpdate{Remove: true}
	}
	return core.StatusReaction{Effects: effects, Self: self}
}

// Oz is Fischl's raven summon: one Electro damage at every end-of-round
// checkout until its usages run out.
type Oz struct {
	core.PassiveStatus
	Usages int
}

func (Oz) Name() string { return "Oz" }

func (Oz) ReactsTo(signal core.TriggeringSignal) bool {
	return signal == core.SignalEndRoundCheckOut
}

func (st Oz) React(_ *core.GameState, source core.StaticTarget, _ core.TriggeringSignal) core.StatusReaction {
	effects := []core.Effect{
		core.DamageEffect{Damage: core.Damage{
			Source:  source,
			Target:  core.TargetOppoActive,
			Element: element.Electro,
			Amount:  1,
		}},
		core.DeathCheckEffect{},
	}
	self := core.StatusUpdate{Updated: Oz{Usages: st.Usages - 1}}
	if st.Usages <= 1 {
		self = core.StatusUpdate{Remove: true}
	}
	return core.StatusReaction{Effects: effects, Self: self}
}
