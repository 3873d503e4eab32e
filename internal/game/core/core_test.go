package core

import (
	"math/rand"

	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// stubKind is a minimal character kind for engine tests: the catalog is not
// reachable from this package, so tests bring their own.
type stubKind struct {
	name   string
	elem   element.Element
	energy int
	skills []Skill
}

func (k stubKind) Name() string             { return k.name }
func (k stubKind) Element() element.Element { return k.elem }
func (k stubKind) MaxHP() int               { return 10 }
func (k stubKind) MaxEnergy() int           { return k.energy }
func (k stubKind) Skills() []Skill          { return k.skills }

func stubStrike(elem element.Element, amount int) func(*GameState, StaticTarget) []Effect {
	return func(_ *GameState, src StaticTarget) []Effect {
		return []Effect{DamageEffect{Damage: Damage{
			Source:  src,
			Target:  TargetOppoActive,
			Element: elem,
			Amount:  amount,
		}}}
	}
}

func alphaKind() stubKind {
	return stubKind{
		name:   "Alpha",
		elem:   element.Cryo,
		energy: 2,
		skills: []Skill{
			{
				Name:    "Alpha Strike",
				Kind:    SkillNormalAttack,
				Cost:    dice.NewAbstract(map[element.Element]int{element.Cryo: 1, element.Any: 2}),
				Effects: stubStrike(element.Physical, 2),
			},
			{
				Name:    "Alpha Burst",
				Kind:    SkillBurst,
				Cost:    dice.NewAbstract(map[element.Element]int{element.Cryo: 3}),
				Effects: stubStrike(element.Cryo, 4),
			},
		},
	}
}

func betaKind() stubKind {
	return stubKind{
		name:   "Beta",
		elem:   element.Electro,
		energy: 2,
		skills: []Skill{
			{
				Name:    "Beta Strike",
				Kind:    SkillNormalAttack,
				Cost:    dice.NewAbstract(map[element.Element]int{element.Electro: 1, element.Any: 2}),
				Effects: stubStrike(element.Electro, 2),
			},
		},
	}
}

func stubRoster() Characters {
	return NewCharacters(
		NewCharacter(alphaKind(), 1),
		NewCharacter(betaKind(), 2),
	)
}

func stubDeck() card.Cards {
	return card.New(map[string]int{"Token": 30})
}

func newTestState(seed int64) *GameState {
	return NewGameState(
		NewDefaultMode(),
		NewRegistry(nil, nil),
		rand.New(rand.NewSource(seed)),
		NewPlayerState(stubRoster(), stubDeck()),
		NewPlayerState(stubRoster(), stubDeck()),
	)
}

// actionReady positions a fresh match at the start of P1's turn in the action
// phase, both actives chosen, with the given dice for P1.
func actionReady(d dice.ActualDice) *GameState {
	s := newTestState(1)
	return s.Builder().
		Phase(s.Mode().ActionPhase()).
		FPlayer(P1, func(p *PlayerState) *PlayerState {
			return p.Builder().
				Act(ActAction).
				Dice(d).
				FCharacters(func(cs Characters) Characters { return cs.WithActiveID(1) }).
				Build()
		}).
		FPlayer(P2, func(p *PlayerState) *PlayerState {
			return p.Builder().
				Act(ActPassiveWait).
				FCharacters(func(cs Characters) Characters { return cs.WithActiveID(1) }).
				Build()
		}).
		Build()
}

// drainStack executes queued effects until the stack empties or blocks on a
// death-swap sentinel.
func drainStack(s *GameState) *GameState {
	for executingEffects(s) {
		s = s.ExecuteOne()
	}
	return s
}

// logStatus records the order it is triggered in.
type logStatus struct {
	PassiveStatus
	name   string
	signal TriggeringSignal
	log    *[]string
}

func (st logStatus) Name() string { return st.name }

func (st logStatus) ReactsTo(signal TriggeringSignal) bool {
	return signal == st.signal
}

func (st logStatus) React(*GameState, StaticTarget, TriggeringSignal) StatusReaction {
	*st.log = append(*st.log, st.name)
	return StatusReaction{}
}

// expiringStatus removes itself on its first reaction, queueing one effect.
type expiringStatus struct {
	PassiveStatus
	name    string
	signal  TriggeringSignal
	effects []Effect
}

func (st expiringStatus) Name() string { return st.name }

func (st expiringStatus) ReactsTo(signal TriggeringSignal) bool {
	return signal == st.signal
}

func (st expiringStatus) React(*GameState, StaticTarget, TriggeringSignal) StatusReaction {
	return StatusReaction{Effects: st.effects, Self: StatusUpdate{Remove: true}}
}

// stubShield absorbs up to absorb points of damage to its holder's side in the
// amount pass, then expires.
type stubShield struct {
	PassiveStatus
	absorb int
}

func (stubShield) Name() string { return "StubShield" }

func (st stubShield) Preprocess(_ *GameState, source StaticTarget, d Damage, pp PreprocessType) (Damage, StatusUpdate) {
	if pp != PPDmgAmount || d.Amount <= 0 {
		return d, StatusUpdate{}
	}
	if damageTargetPid(d) != source.Pid {
		return d, StatusUpdate{}
	}
	absorbed := d.Amount
	if absorbed > st.absorb {
		absorbed = st.absorb
	}
	d.Amount -= absorbed
	return d, StatusUpdate{Remove: true}
}
