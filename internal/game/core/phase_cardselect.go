package core

// cardSelectPhase deals the opening hands and lets each player return any
// subset of their hand to the deck for an equal-sized redraw, once.
type cardSelectPhase struct{}

func (cardSelectPhase) Name() string { return "CardSelectPhase" }

func (cardSelectPhase) Step(s *GameState) *GameState {
	switch {
	case bothAct(s, ActPassiveWait):
		return dealOpeningHands(s)
	case bothAct(s, ActEnd):
		return s.Builder().
			Phase(s.Mode().StartingHandSelectPhase()).
			FPlayer(P1, resetToPassive).
			FPlayer(P2, resetToPassive).
			Build()
	}
	panic("core: card select phase stepped while waiting for a player")
}

func dealOpeningHands(s *GameState) *GameState {
	size := s.Mode().InitialHandSize()
	b := s.Builder()
	for _, pid := range []Pid{P1, P2} {
		deck, drawn := s.Player(pid).Deck().PickRandom(s.RNG(), size)
		b.FPlayer(pid, func(p *PlayerState) *PlayerState {
			return p.Builder().
				Act(ActAction).
				Deck(deck).
				Hand(p.Hand().AddAll(drawn)).
				Build()
		})
	}
	return b.Build()
}

func (cardSelectPhase) StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error) {
	selection, ok := action.(CardsSelectAction)
	if !ok {
		return nil, illegalActionf("%s not allowed during card selection", action.ActionName())
	}
	player := s.Player(pid)
	if player.Act() != ActAction {
		return nil, illegalActionf("player %v has already selected", pid)
	}
	hand := player.Hand()
	for _, name := range selection.Cards.Names() {
		if selection.Cards.Get(name) > hand.Get(name) {
			return nil, illegalActionf("returning %d copies of %q, holding %d",
				selection.Cards.Get(name), name, hand.Get(name))
		}
	}

	// Returned cards rejoin the deck before the redraw, so a returned card may
	// be drawn right back.
	deck, drawn := player.Deck().AddAll(selection.Cards).PickRandom(s.RNG(), selection.Cards.NumCards())
	for _, name := range selection.Cards.Names() {
		for i := 0; i < selection.Cards.Get(name); i++ {
			hand = hand.Remove(name)
		}
	}
	return s.Builder().FPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().
			Act(ActEnd).
			Deck(deck).
			Hand(hand.AddAll(drawn)).
			Build()
	}).Build(), nil
}

func (cardSelectPhase) WaitingFor(s *GameState) (Pid, bool) {
	if bothAct(s, ActPassiveWait) {
		return 0, false
	}
	return waitingActor(s)
}
