package core

// Phase is one game phase of the state machine. Phases are stateless
// singletons owned by the Mode; all state lives in the snapshot.
type Phase interface {
	Name() string

	// Step advances the game one engine-driven step. It must only be called
	// when WaitingFor reports no waiting player.
	Step(s *GameState) *GameState

	// StepAction consumes a submitted action, or rejects it with an error
	// wrapping ErrIllegalAction and no state change.
	StepAction(s *GameState, pid Pid, action PlayerAction) (*GameState, error)

	// WaitingFor reports which player must act, or ok=false when the engine
	// can self-advance.
	WaitingFor(s *GameState) (Pid, bool)
}

// waitingActor returns the player whose phase tag is "action", checking the
// active player first so the traversal favor matches turn order.
func waitingActor(s *GameState) (Pid, bool) {
	active := s.ActivePid()
	if s.Player(active).Act() == ActAction {
		return active, true
	}
	if s.Player(active.Other()).Act() == ActAction {
		return active.Other(), true
	}
	return 0, false
}

// deathSwapping reports the player that must resolve a death swap: the
// effect-stack front is the death-swap sentinel and that player's tag is
// "action".
func deathSwapping(s *GameState) (Pid, bool) {
	front, ok := s.EffectStack().Peek()
	if !ok {
		return 0, false
	}
	if _, isSentinel := front.(DeathSwapPhaseStartEffect); !isSentinel {
		return 0, false
	}
	return waitingActor(s)
}

// handleDeathSwapAction pops the sentinel and queues the chosen swap. Shared
// by the action and end phases, which can both host a death-swap sub-phase.
func handleDeathSwapAction(s *GameState, pid Pid, action DeathSwapAction) (*GameState, error) {
	swapper, ok := deathSwapping(s)
	if !ok || swapper != pid {
		return nil, illegalActionf("player %v has no death swap to resolve", pid)
	}
	target := StaticTarget{Pid: pid, Zone: ZoneCharacter, ID: action.CharacterID}
	c, ok := s.CharacterAt(target)
	if !ok {
		return nil, illegalActionf("unknown character %d", action.CharacterID)
	}
	if c.Defeated() {
		return nil, illegalActionf("character %d is defeated", action.CharacterID)
	}
	stack, _ := s.EffectStack().Pop()
	return s.Builder().EffectStack(stack.PushFront(SwapCharacterEffect{Target: target})).Build(), nil
}

// bothAct reports whether both players carry the given phase tag.
func bothAct(s *GameState, act Act) bool {
	return s.Player(P1).Act() == act && s.Player(P2).Act() == act
}

// executingEffects reports whether the stack can self-drain: non-empty and
// not blocked on the death-swap sentinel.
func executingEffects(s *GameState) bool {
	front, ok := s.EffectStack().Peek()
	if !ok {
		return false
	}
	_, isSentinel := front.(DeathSwapPhaseStartEffect)
	return !isSentinel
}
