package core

import (
	"errors"
	"testing"

	"github.com/invokesim/invoke-server-go/internal/game/dice"
	"github.com/invokesim/invoke-server-go/internal/game/element"
)

func TestSkillActionFlow(t *testing.T) {
	pay := dice.NewActual(map[element.Element]int{element.Cryo: 1, element.Hydro: 2})
	s := actionReady(pay)

	s, err := s.StepAction(P1, SkillAction{SkillName: "Alpha Strike", Instruction: DiceInstruction{Dice: pay}})
	if err != nil {
		t.Fatalf("skill action rejected: %v", err)
	}
	s = drainStack(s)

	if !s.Player(P1).Dice().IsEmpty() {
		t.Errorf("dice not spent: %v", s.Player(P1).Dice())
	}
	caster, _ := s.Player(P1).Characters().Active()
	if caster.Energy() != 1 {
		t.Errorf("caster energy = %d, want 1 after a non-burst skill", caster.Energy())
	}
	target, _ := s.Player(P2).Characters().Active()
	if target.HP() != 8 {
		t.Errorf("target hp = %d, want 8", target.HP())
	}
	if s.ActivePid() != P2 || s.Player(P2).Act() != ActAction {
		t.Error("a combat action should pass the turn to the opponent")
	}
}

func TestBurstNeedsFullEnergy(t *testing.T) {
	pay := dice.NewActual(map[element.Element]int{element.Cryo: 3})
	s := actionReady(pay)
	burst := SkillAction{SkillName: "Alpha Burst", Instruction: DiceInstruction{Dice: pay}}

	if _, err := s.StepAction(P1, burst); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("burst at 0 energy: err = %v, want ErrIllegalAction", err)
	}

	caster, _ := s.Player(P1).Characters().Active()
	s = replaceCharacter(s, P1, caster.Builder().Energy(caster.MaxEnergy()).Build())

	s, err := s.StepAction(P1, burst)
	if err != nil {
		t.Fatalf("burst at full energy rejected: %v", err)
	}
	s = drainStack(s)

	caster, _ = s.Player(P1).Characters().Active()
	if caster.Energy() != 0 {
		t.Errorf("caster energy = %d, want 0 after the burst", caster.Energy())
	}
	target, _ := s.Player(P2).Characters().Active()
	if target.HP() != 6 {
		t.Errorf("target hp = %d, want 6", target.HP())
	}
	if !target.Aura().Contains(element.Cryo) {
		t.Errorf("target aura = %v, want CRYO", target.Aura())
	}
}

func TestSkillPaymentRejections(t *testing.T) {
	held := dice.NewActual(map[element.Element]int{element.Cryo: 1, element.Hydro: 2})
	s := actionReady(held)

	overpay := dice.NewActual(map[element.Element]int{element.Cryo: 1, element.Hydro: 3})
	_, err := s.StepAction(P1, SkillAction{SkillName: "Alpha Strike", Instruction: DiceInstruction{Dice: overpay}})
	if !errors.Is(err, ErrIllegalAction) {
		t.Errorf("overpay: err = %v, want ErrIllegalAction", err)
	}

	unheld := dice.NewActual(map[element.Element]int{element.Cryo: 1, element.Electro: 2})
	_, err = s.StepAction(P1, SkillAction{SkillName: "Alpha Strike", Instruction: DiceInstruction{Dice: unheld}})
	if !errors.Is(err, ErrIllegalAction) {
		t.Errorf("unheld dice: err = %v, want ErrIllegalAction", err)
	}
}

func TestSwapActionPassesTurn(t *testing.T) {
	pay := dice.NewActual(map[element.Element]int{element.Geo: 1})
	s := actionReady(pay)

	s, err := s.StepAction(P1, SwapAction{CharacterID: 2, Instruction: DiceInstruction{Dice: pay}})
	if err != nil {
		t.Fatalf("swap rejected: %v", err)
	}
	s = drainStack(s)

	if got := s.Player(P1).Characters().ActiveID(); got != 2 {
		t.Errorf("active id = %d, want 2", got)
	}
	if s.ActivePid() != P2 || s.Player(P2).Act() != ActAction {
		t.Error("swap is a combat action and should pass the turn")
	}
}

func TestActionOutOfTurnRejected(t *testing.T) {
	s := actionReady(dice.ActualDice{})
	if _, err := s.StepAction(P2, EndRoundAction{}); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("out-of-turn action: err = %v, want ErrIllegalAction", err)
	}
}

func TestPlayCardNotInHandRejected(t *testing.T) {
	s := actionReady(dice.ActualDice{})
	_, err := s.StepAction(P1, PlayCardAction{CardName: "Token"})
	if !errors.Is(err, ErrIllegalAction) {
		t.Errorf("card not in hand: err = %v, want ErrIllegalAction", err)
	}
}

func TestEndRoundFirstDeclarerMovesFirstNextRound(t *testing.T) {
	s := actionReady(dice.ActualDice{})

	s, err := s.StepAction(P1, EndRoundAction{})
	if err != nil {
		t.Fatalf("first end round rejected: %v", err)
	}
	if s.ActivePid() != P2 || s.Player(P2).Act() != ActAction {
		t.Fatal("declaring end of round should hand the turn to the opponent")
	}

	s, err = s.StepAction(P2, EndRoundAction{})
	if err != nil {
		t.Fatalf("second end round rejected: %v", err)
	}
	// The first declarer moves first next round.
	if s.ActivePid() != P1 {
		t.Errorf("active pid = %v, want the first declarer P1", s.ActivePid())
	}

	s = s.Step()
	if s.Phase() != s.Mode().EndPhase() {
		t.Errorf("phase = %s, want EndPhase", s.Phase().Name())
	}
}

func TestDeathSwapSubPhase(t *testing.T) {
	pay := dice.NewActual(map[element.Element]int{element.Cryo: 1, element.Hydro: 2})
	s := actionReady(pay)
	victim, _ := s.Player(P2).Characters().Active()
	s = replaceCharacter(s, P2, victim.Builder().HP(2).Build())

	s, err := s.StepAction(P1, SkillAction{SkillName: "Alpha Strike", Instruction: DiceInstruction{Dice: pay}})
	if err != nil {
		t.Fatalf("skill rejected: %v", err)
	}
	s = drainStack(s)

	pid, waiting := s.WaitingFor()
	if !waiting || pid != P2 {
		t.Fatalf("WaitingFor = %v/%v, want P2 resolving a death swap", pid, waiting)
	}
	if _, err := s.StepAction(P2, SkillAction{SkillName: "Beta Strike"}); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("skill during death swap: err = %v, want ErrIllegalAction", err)
	}
	if _, err := s.StepAction(P2, DeathSwapAction{CharacterID: 1}); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("swapping to the fallen character: err = %v, want ErrIllegalAction", err)
	}

	s, err = s.StepAction(P2, DeathSwapAction{CharacterID: 2})
	if err != nil {
		t.Fatalf("death swap rejected: %v", err)
	}
	s = drainStack(s)

	if got := s.Player(P2).Characters().ActiveID(); got != 2 {
		t.Errorf("active id = %d, want the replacement 2", got)
	}
	// The interrupted turn order resumes: P1's combat action still passes the
	// turn to P2 after the sub-phase resolves.
	if s.ActivePid() != P2 || s.Player(P2).Act() != ActAction {
		t.Error("turn should pass to P2 once the death swap resolves")
	}
}
