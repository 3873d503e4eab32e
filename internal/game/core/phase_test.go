package core

import (
	"errors"
	"testing"

	"github.com/invokesim/invoke-server-go/internal/game/card"
)

func TestCardSelectDealAndRedraw(t *testing.T) {
	s := newTestState(1)
	s = s.Step()

	for _, pid := range []Pid{P1, P2} {
		p := s.Player(pid)
		if p.Hand().NumCards() != 5 || p.Deck().NumCards() != 25 {
			t.Fatalf("player %v dealt hand=%d deck=%d, want 5/25",
				pid, p.Hand().NumCards(), p.Deck().NumCards())
		}
		if p.Act() != ActAction {
			t.Fatalf("player %v act = %v, want ACTION", pid, p.Act())
		}
	}

	s, err := s.StepAction(P1, CardsSelectAction{Cards: card.New(map[string]int{"Token": 2})})
	if err != nil {
		t.Fatalf("redraw rejected: %v", err)
	}
	p1 := s.Player(P1)
	if p1.Hand().NumCards() != 5 || p1.Deck().NumCards() != 25 {
		t.Errorf("after redraw hand=%d deck=%d, want 5/25", p1.Hand().NumCards(), p1.Deck().NumCards())
	}

	if _, err := s.StepAction(P1, CardsSelectAction{}); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("second selection: err = %v, want ErrIllegalAction", err)
	}

	s, err = s.StepAction(P2, CardsSelectAction{})
	if err != nil {
		t.Fatalf("empty selection rejected: %v", err)
	}
	s = s.Step()
	if s.Phase() != s.Mode().StartingHandSelectPhase() {
		t.Errorf("phase = %s, want StartingHandSelectPhase", s.Phase().Name())
	}
}

func TestCardSelectRejectsOverReturn(t *testing.T) {
	s := newTestState(1).Step()
	_, err := s.StepAction(P1, CardsSelectAction{Cards: card.New(map[string]int{"Token": 6})})
	if !errors.Is(err, ErrIllegalAction) {
		t.Errorf("returning more copies than held: err = %v, want ErrIllegalAction", err)
	}
}

func TestStartingHandSelect(t *testing.T) {
	s := newTestState(1)
	s = s.Builder().Phase(s.Mode().StartingHandSelectPhase()).Build()
	s = s.Step()

	if _, err := s.StepAction(P1, CharacterSelectAction{CharacterID: 99}); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("unknown character: err = %v, want ErrIllegalAction", err)
	}

	s, err := s.StepAction(P1, CharacterSelectAction{CharacterID: 1})
	if err != nil {
		t.Fatalf("selection rejected: %v", err)
	}
	s, err = s.StepAction(P2, CharacterSelectAction{CharacterID: 2})
	if err != nil {
		t.Fatalf("selection rejected: %v", err)
	}
	if s.Player(P1).Characters().ActiveID() != 1 || s.Player(P2).Characters().ActiveID() != 2 {
		t.Error("selections should set the starting active characters")
	}

	s = s.Step()
	if s.Phase() != s.Mode().RollPhase() {
		t.Errorf("phase = %s, want RollPhase", s.Phase().Name())
	}
}

func TestRollPhaseDealsDice(t *testing.T) {
	s := newTestState(1)
	s = s.Builder().Phase(s.Mode().RollPhase()).Build()
	s = s.Step()

	if s.Phase() != s.Mode().ActionPhase() {
		t.Fatalf("phase = %s, want ActionPhase", s.Phase().Name())
	}
	for _, pid := range []Pid{P1, P2} {
		d := s.Player(pid).Dice()
		if d.NumDice() != s.Mode().DiceRolledPerRound() {
			t.Errorf("player %v rolled %d dice, want %d", pid, d.NumDice(), s.Mode().DiceRolledPerRound())
		}
		if !d.IsLegal() {
			t.Errorf("player %v rolled an illegal pool %v", pid, d)
		}
	}
}

func TestEndPhaseAdvancesRound(t *testing.T) {
	s := newTestState(1)
	s = s.Builder().Phase(s.Mode().EndPhase()).Build()

	for i := 0; s.Phase() == s.Mode().EndPhase(); i++ {
		if i > 100 {
			t.Fatal("end phase did not terminate")
		}
		s = s.Step()
	}

	if s.Phase() != s.Mode().RollPhase() {
		t.Fatalf("phase = %s, want RollPhase", s.Phase().Name())
	}
	if s.Round() != 2 {
		t.Errorf("round = %d, want 2", s.Round())
	}
	for _, pid := range []Pid{P1, P2} {
		p := s.Player(pid)
		if p.Hand().NumCards() != s.Mode().CardsDrawnPerRound() {
			t.Errorf("player %v drew %d cards, want %d", pid, p.Hand().NumCards(), s.Mode().CardsDrawnPerRound())
		}
		if !p.Dice().IsEmpty() {
			t.Errorf("player %v kept dice %v across rounds", pid, p.Dice())
		}
	}
}

func TestEndPhaseRoundLimitEndsGame(t *testing.T) {
	s := newTestState(1)
	s = s.Builder().Phase(s.Mode().EndPhase()).Round(s.Mode().RoundLimit()).Build()

	for i := 0; !s.GameEnd(); i++ {
		if i > 100 {
			t.Fatal("end phase did not terminate")
		}
		s = s.Step()
	}
	if _, ok := s.Winner(); ok {
		t.Error("timing out at the round limit should be a draw")
	}
}

// endRoundAgent plays the dullest legal game: keep the opening hand, pick the
// first character, end every round immediately.
type endRoundAgent struct{}

func (endRoundAgent) ChooseAction(s *GameState, pid Pid) PlayerAction {
	switch s.Phase() {
	case s.Mode().CardSelectPhase():
		return CardsSelectAction{}
	case s.Mode().StartingHandSelectPhase():
		return CharacterSelectAction{CharacterID: 1}
	}
	return EndRoundAction{}
}

func TestMachineSelfPlayDrawsAtRoundLimit(t *testing.T) {
	m := NewGameStateMachine(newTestState(42), endRoundAgent{}, endRoundAgent{})
	if err := m.Run(); err != nil {
		t.Fatalf("self-play failed: %v", err)
	}
	if !m.Ended() {
		t.Fatal("machine reported not ended after Run")
	}
	final := m.State()
	if _, ok := final.Winner(); ok {
		t.Error("a passive match should end in a draw")
	}
	if final.Round() != final.Mode().RoundLimit() {
		t.Errorf("round = %d, want the round limit %d", final.Round(), final.Mode().RoundLimit())
	}
	for _, pid := range []Pid{P1, P2} {
		p := final.Player(pid)
		if total := p.Hand().NumCards() + p.Deck().NumCards(); total != 30 {
			t.Errorf("player %v hand+deck = %d, want all 30 cards accounted for", pid, total)
		}
	}
	if len(m.History()) < 2 {
		t.Error("history should record every snapshot")
	}
}
