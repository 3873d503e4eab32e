package core

// startingHandSelectPhase waits for each player to pick their starting active
// character.
type startingHandSelectPhase struct{}

func (startingHandSelectPhase) Name() string { return "StartingHandSelectPhase" }

func (startingHandSelectPhase) Step(s *GameState) *GameState {
	switch {
	case bothAct(s, ActPassiveWait):
		return s.Builder().
			FPlayer(P1, func(p *PlayerState) *PlayerState { return p.Builder().Act(ActAction).Build() }).
			FPlayer(P2, func(p *PlayerState) *PlayerState { return p.Builder().Act(ActAction).Build() }).
			Build()
	case bothAct(s, ActEnd):
		return s.Builder().
			Phase(s.Mode().RollPhase()).
			FPlayer(P1, resetToPassive).
			FPlayer(P2, resetToPassive).
			Build()
	}
	panic("core: starting hand select phase stepped while waiting for a player")
}

func (startingHandSelectPhase) StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error) {
	selection, ok := action.(CharacterSelectAction)
	if !ok {
		return nil, illegalActionf("%s not allowed during character selection", action.ActionName())
	}
	player := s.Player(pid)
	if player.Act() != ActAction {
		return nil, illegalActionf("player %v has already selected", pid)
	}
	c, ok := player.Characters().Get(selection.CharacterID)
	if !ok {
		return nil, illegalActionf("unknown character %d", selection.CharacterID)
	}
	if c.Defeated() {
		return nil, illegalActionf("character %d is defeated", selection.CharacterID)
	}
	return s.Builder().FPlayer(pid, func(p *PlayerState) *PlayerState {
		return p.Builder().
			Act(ActEnd).
			FCharacters(func(cs Characters) Characters { return cs.WithActiveID(c.ID()) }).
			Build()
	}).Build(), nil
}

func (startingHandSelectPhase) WaitingFor(s *GameState) (Pid, bool) {
	if bothAct(s, ActPassiveWait) {
		return 0, false
	}
	return waitingActor(s)
}
