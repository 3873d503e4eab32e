package game

import (
	"fmt"

	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/core"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// WireAction is the JSON encoding of a player action. Type selects the
// variant; the other fields carry its payload.
type WireAction struct {
	Type        string         `json:"type"`
	Cards       map[string]int `json:"cards,omitempty"`
	CharacterID int            `json:"character_id,omitempty"`
	SkillName   string         `json:"skill_name,omitempty"`
	CardName    string         `json:"card_name,omitempty"`
	Dice        map[string]int `json:"dice,omitempty"`
	TargetPid   int            `json:"target_pid,omitempty"`
	TargetZone  string         `json:"target_zone,omitempty"`
	TargetID    int            `json:"target_id,omitempty"`
}

var dieKindsByName = func() map[string]element.Element {
	kinds := []element.Element{
		element.Omni, element.Cryo, element.Hydro, element.Pyro,
		element.Electro, element.Geo, element.Dendro, element.Anemo,
	}
	m := make(map[string]element.Element, len(kinds))
	for _, e := range kinds {
		m[e.String()] = e
	}
	return m
}()

var zonesByName = map[string]core.Zone{
	core.ZoneCharacter.String(): core.ZoneCharacter,
	core.ZoneSummons.String():   core.ZoneSummons,
	core.ZoneSupports.String():  core.ZoneSupports,
	core.ZonePlayer.String():    core.ZonePlayer,
}

func decodeDice(counts map[string]int) (dice.ActualDice, error) {
	m := make(map[element.Element]int, len(counts))
	for name, n := range counts {
		e, ok := dieKindsByName[name]
		if !ok {
			return dice.ActualDice{}, fmt.Errorf("unknown die kind %q", name)
		}
		if n < 0 {
			return dice.ActualDice{}, fmt.Errorf("negative count for die kind %q", name)
		}
		m[e] = n
	}
	return dice.NewActual(m), nil
}

func encodeDice(d dice.ActualDice) map[string]int {
	if d.IsEmpty() {
		return nil
	}
	out := make(map[string]int)
	for e, n := range d.ToMap() {
		out[e.String()] = n
	}
	return out
}

func decodeTarget(w WireAction) (core.StaticTarget, error) {
	if w.TargetZone == "" {
		return core.StaticTarget{}, nil
	}
	zone, ok := zonesByName[w.TargetZone]
	if !ok {
		return core.StaticTarget{}, fmt.Errorf("unknown zone %q", w.TargetZone)
	}
	return core.StaticTarget{Pid: core.Pid(w.TargetPid), Zone: zone, ID: w.TargetID}, nil
}

// DecodeAction converts a wire action into an engine action. Malformed input
// yields an error, never a panic: wire data is untrusted.
func DecodeAction(w WireAction) (core.PlayerAction, error) {
	switch w.Type {
	case "cards_select":
		return core.CardsSelectAction{Cards: card.New(w.Cards)}, nil
	case "character_select":
		return core.CharacterSelectAction{CharacterID: w.CharacterID}, nil
	case "skill":
		d, err := decodeDice(w.Dice)
		if err != nil {
			return nil, err
		}
		return core.SkillAction{
			SkillName:   w.SkillName,
			Instruction: core.DiceInstruction{Dice: d},
		}, nil
	case "swap":
		d, err := decodeDice(w.Dice)
		if err != nil {
			return nil, err
		}
		return core.SwapAction{
			CharacterID: w.CharacterID,
			Instruction: core.DiceInstruction{Dice: d},
		}, nil
	case "death_swap":
		return core.DeathSwapAction{CharacterID: w.CharacterID}, nil
	case "play_card":
		d, err := decodeDice(w.Dice)
		if err != nil {
			return nil, err
		}
		target, err := decodeTarget(w)
		if err != nil {
			return nil, err
		}
		return core.PlayCardAction{
			CardName:    w.CardName,
			Target:      target,
			Instruction: core.DiceInstruction{Dice: d},
		}, nil
	case "end_round":
		return core.EndRoundAction{}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", w.Type)
}

// EncodeAction converts an engine action into its wire form.
func EncodeAction(action core.PlayerAction) (WireAction, error) {
	switch a := action.(type) {
	case core.CardsSelectAction:
		counts := make(map[string]int)
		for _, name := range a.Cards.Names() {
			counts[name] = a.Cards.Get(name)
		}
		return WireAction{Type: "cards_select", Cards: counts}, nil
	case core.CharacterSelectAction:
		return WireAction{Type: "character_select", CharacterID: a.CharacterID}, nil
	case core.SkillAction:
		return WireAction{
			Type:      "skill",
			SkillName: a.SkillName,
			Dice:      encodeDice(a.Instruction.Dice),
		}, nil
	case core.SwapAction:
		return WireAction{
			Type:        "swap",
			CharacterID: a.CharacterID,
			Dice:        encodeDice(a.Instruction.Dice),
		}, nil
	case core.DeathSwapAction:
		return WireAction{Type: "death_swap", CharacterID: a.CharacterID}, nil
	case core.PlayCardAction:
		return WireAction{
			Type:       "play_card",
			CardName:   a.CardName,
			Dice:       encodeDice(a.Instruction.Dice),
			TargetPid:  int(a.Target.Pid),
			TargetZone: a.Target.Zone.String(),
			TargetID:   a.Target.ID,
		}, nil
	case core.EndRoundAction:
		return WireAction{Type: "end_round"}, nil
	}
	return WireAction{}, fmt.Errorf("unsupported action %T", action)
}
