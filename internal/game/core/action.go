package core

import (
	"errors"
	"fmt"

	"github.com/invokesim/invoke-server-go/internal/game/card"
	"github.com/invokesim/invoke-server-go/internal/game/dice"
)

// ErrIllegalAction classifies every action rejection: wrong phase, not the
// waiting player, insufficient dice, dead target. Rejections never change
// state.
var ErrIllegalAction = errors.New("illegal action")

func illegalActionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalAction, fmt.Sprintf(format, args...))
}

// PlayerAction is a player-submitted decision consumed by the current phase's
// StepAction.
type PlayerAction interface {
	ActionName() string
}

// DiceInstruction is the player's chosen payment: the exact dice to spend.
// The phase machine validates it against the cost with JustSatisfy.
type DiceInstruction struct {
	Dice dice.ActualDice
}

// CardsSelectAction returns the listed cards to the deck during card
// selection and draws replacements.
type CardsSelectAction struct {
	Cards card.Cards
}

func (CardsSelectAction) ActionName() string { return "CardsSelect" }

// CharacterSelectAction chooses the starting active character.
type CharacterSelectAction struct {
	CharacterID int
}

func (CharacterSelectAction) ActionName() string { return "CharacterSelect" }

// SkillAction casts a skill of the active character, paying with the
// instructed dice.
type SkillAction struct {
	SkillName   string
	Instruction DiceInstruction
}

func (SkillAction) ActionName() string { return "Skill" }

// SwapAction swaps the active character, paying the swap cost.
type SwapAction struct {
	CharacterID int
	Instruction DiceInstruction
}

func (SwapAction) ActionName() string { return "Swap" }

// DeathSwapAction resolves a death-swap sub-phase by choosing the
// replacement active character. It costs nothing.
type DeathSwapAction struct {
	CharacterID int
}

func (DeathSwapAction) ActionName() string { return "DeathSwap" }

// PlayCardAction plays a card from hand, paying with the instructed dice.
// Target is meaningful only for cards that need one.
type PlayCardAction struct {
	CardName    string
	Target      StaticTarget
	Instruction DiceInstruction
}

func (PlayCardAction) ActionName() string { return "PlayCard" }

// EndRoundAction declares the end of the player's round.
type EndRoundAction struct{}

func (EndRoundAction) ActionName() string { return "EndRound" }
