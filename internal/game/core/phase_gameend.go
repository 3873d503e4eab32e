package core

// gameEndPhase is terminal: the game is over and the winner, if any, is
// derivable from the snapshot.
type gameEndPhase struct{}

func (gameEndPhase) Name() string { return "GameEndPhase" }

func (gameEndPhase) Step(s *GameState) *GameState {
	return s
}

func (gameEndPhase) StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error) {
	return nil, illegalActionf("the game has ended")
}

func (gameEndPhase) WaitingFor(s *GameState) (Pid, bool) {
	return 0, false
}
