package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

func TestDecodeActionVariants(t *testing.T) {
	tests := []struct {
		name string
		wire WireAction
		want core.PlayerAction
	}{
		{
			name: "cards select",
			wire: WireAction{Type: "cards_select", Cards: map[string]int{"Starsigns": 2}},
			want: core.CardsSelectAction{Cards: card.New(map[string]int{"Starsigns": 2})},
		},
		{
			name: "character select",
			wire: WireAction{Type: "character_select", CharacterID: 2},
			want: core.CharacterSelectAction{CharacterID: 2},
		},
		{
			name: "skill",
			wire: WireAction{Type: "skill", SkillName: "Frostgnaw", Dice: map[string]int{"CRYO": 3}},
			want: core.SkillAction{
				SkillName:   "Frostgnaw",
				Instruction: core.DiceInstruction{Dice: dice.NewActual(map[element.Element]int{element.Cryo: 3})},
			},
		},
		{
			name: "swap",
			wire: WireAction{Type: "swap", CharacterID: 3, Dice: map[string]int{"OMNI": 1}},
			want: core.SwapAction{
				CharacterID: 3,
				Instruction: core.DiceInstruction{Dice: dice.NewActual(map[element.Element]int{element.Omni: 1})},
			},
		},
		{
			name: "death swap",
			wire: WireAction{Type: "death_swap", CharacterID: 2},
			want: core.DeathSwapAction{CharacterID: 2},
		},
		{
			name: "end round",
			wire: WireAction{Type: "end_round"},
			want: core.EndRoundAction{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeActionRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		wire WireAction
	}{
		{"unknown type", WireAction{Type: "concede"}},
		{"unknown die kind", WireAction{Type: "skill", SkillName: "x", Dice: map[string]int{"VOID": 1}}},
		{"negative die count", WireAction{Type: "swap", CharacterID: 1, Dice: map[string]int{"CRYO": -1}}},
		{"unknown zone", WireAction{Type: "play_card", CardName: "x", TargetZone: "GRAVEYARD"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAction(tt.wire)
			assert.Error(t, err)
		})
	}
}

func TestActionRoundTrip(t *testing.T) {
	actions := []core.PlayerAction{
		core.CharacterSelectAction{CharacterID: 1},
		core.SkillAction{
			SkillName:   "Nightrider",
			Instruction: core.DiceInstruction{Dice: dice.NewActual(map[element.Element]int{element.Electro: 3})},
		},
		core.PlayCardAction{
			CardName:    "Mushroom Pizza",
			Target:      core.StaticTarget{Pid: core.P1, Zone: core.ZoneCharacter, ID: 2},
			Instruction: core.DiceInstruction{Dice: dice.NewActual(map[element.Element]int{element.Omni: 1})},
		},
		core.EndRoundAction{},
	}
	for _, action := range actions {
		wire, err := EncodeAction(action)
		require.NoError(t, err)
		decoded, err := DecodeAction(wire)
		require.NoError(t, err)
		assert.Equal(t, action, decoded)
	}
}
