package catalog

import (
	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// strike is the common attack shape: one damage instance against the
// opponent's active character. The phase machine appends the death check and
// turn bookkeeping after the skill's effects.
func strike(src core.StaticTarget, elem element.Element, amount int) []core.Effect {
	return []core.Effect{core.DamageEffect{Damage: core.Damage{
		Source:  src,
		Target:  core.TargetOppoActive,
		Element: elem,
		Amount:  amount,
	}}}
}

func attack(elem element.Element, amount int) func(*core.GameState, core.StaticTarget) []core.Effect {
	return func(_ *core.GameState, src core.StaticTarget) []core.Effect {
		return strike(src, elem, amount)
	}
}

func normalCost(elem element.Element) dice.AbstractDice {
	return dice.NewAbstract(map[element.Element]int{elem: 1, element.Any: 2})
}

func elemCost(elem element.Element, n int) dice.AbstractDice {
	return dice.NewAbstract(map[element.Element]int{elem: n})
}

// Kaeya is a Cryo sword fighter whose burst leaves icicles that strike when
// he or a teammate swaps in.
type Kaeya struct{}

func (Kaeya) Name() string             { return "Kaeya" }
func (Kaeya) Element() element.Element { return element.Cryo }
func (Kaeya) MaxHP() int               { return 10 }
func (Kaeya) MaxEnergy() int           { return 2 }

func (Kaeya) Skills() []core.Skill {
	return []core.Skill{
		{
			Name:    "Ceremonial Bladework",
			Kind:    core.SkillNormalAttack,
			Cost:    normalCost(element.Cryo),
			Effects: attack(element.Physical, 2),
		},
		{
			Name:    "Frostgnaw",
			Kind:    core.SkillElemental,
			Cost:    elemCost(element.Cryo, 3),
			Effects: attack(element.Cryo, 3),
		},
		{
			Name: "Glacial Waltz",
			Kind: core.SkillBurst,
			Cost: elemCost(element.Cryo, 4),
			Effects: func(_ *core.GameState, src core.StaticTarget) []core.Effect {
				effects := strike(src, element.Cryo, 1)
				return append(effects, core.AddStatusEffect{
					Target:    core.StaticTarget{Pid: src.Pid, Zone: core.ZonePlayer},
					Namespace: core.NSCombat,
					Status:    Icicle{Usages: 3},
				})
			},
		},
	}
}

// Keqing is an Electro sword fighter with a straightforward damage kit.
type Keqing struct{}

func (Keqing) Name() string             { return "Keqing" }
func (Keqing) Element() element.Element { return element.Electro }
func (Keqing) MaxHP() int               { return 10 }
func (Keqing) MaxEnergy() int           { return 3 }

func (Keqing) Skills() []core.Skill {
	return []core.Skill{
		{
			Name:    "Yunlai Swordsmanship",
			Kind:    core.SkillNormalAttack,
			Cost:    normalCost(element.Electro),
			Effects: attack(element.Physical, 2),
		},
		{
			Name:    "Stellar Restoration",
			Kind:    core.SkillElemental,
			Cost:    elemCost(element.Electro, 3),
			Effects: attack(element.Electro, 3),
		},
		{
			Name:    "Starward Sword",
			Kind:    core.SkillBurst,
			Cost:    elemCost(element.Electro, 4),
			Effects: attack(element.Electro, 4),
		},
	}
}

// Fischl is an Electro archer who summons Oz, a raven striking at every
// end-of-round checkout.
type Fischl struct{}

func (Fischl) Name() string             { return "Fischl" }
func (Fischl) Element() element.Element { return element.Electro }
func (Fischl) MaxHP() int               { return 10 }
func (Fischl) MaxEnergy() int           { return 3 }

func (Fischl) Skills() []core.Skill {
	return []core.Skill{
		{
			Name:    "Bolts of Downfall",
			Kind:    core.SkillNormalAttack,
			Cost:    normalCost(element.Electro),
			Effects: attack(element.Physical, 2),
		},
		{
			Name: "Nightrider",
			Kind: core.SkillElemental,
			Cost: elemCost(element.Electro, 3),
			Effects: func(_ *core.GameState, src core.StaticTarget) []core.Effect {
				effects := strike(src, element.Electro, 1)
				return append(effects, core.AddStatusEffect{
					Target:    core.StaticTarget{Pid: src.Pid, Zone: core.ZoneSummons},
					Namespace: core.NSSummon,
					Status:    Oz{Usages: 2},
				})
			},
		},
		{
			Name:    "Midnight Phantasmagoria",
			Kind:    core.SkillBurst,
			Cost:    elemCost(element.Electro, 3),
			Effects: attack(element.Electro, 4),
		},
	}
}
