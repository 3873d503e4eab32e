package core

import "github.com/invokesim/invoke-server-go/internal/game/element"

// PreprocessType selects which aspect of a damage value a status may rewrite
// before it is finalized. The three passes run in this order.
type PreprocessType int

const (
	PPDmgElement PreprocessType = iota
	PPDmgReaction
	PPDmgAmount
)

// Damage is the preprocessable value threaded through the status walk during
// damage resolution: element kind, numeric amount and reaction metadata.
type Damage struct {
	Source   StaticTarget
	Target   DamageTarget
	Element  element.Element
	Amount   int
	Reaction *element.Detail
}

// DamageTarget selects which character a damage effect resolves against,
// relative to its source.
type DamageTarget int

const (
	TargetOppoActive DamageTarget = iota
	TargetSelfActive
)

// StatusUpdate describes a status's own fate after reacting or preprocessing.
// The zero value keeps the status unchanged; Updated replaces it in place;
// Remove drops it.
type StatusUpdate struct {
	Updated Status
	Remove  bool
}

// StatusReaction is the outcome of a status reacting to a signal: zero or
// more effects to queue, plus the status's own fate.
type StatusReaction struct {
	Effects []Effect
	Self    StatusUpdate
}

// Status is the capability contract every status, summon and support
// implements. Implementations are immutable values: React and Preprocess
// return replacements instead of mutating the receiver.
type Status interface {
	// Name identifies the status type; at most one live instance per name
	// exists in any one collection.
	Name() string

	// ReactsTo reports whether the status wants the given signal. The trigger
	// protocol only invokes React for signals the status declares.
	ReactsTo(signal TriggeringSignal) bool

	// React responds to a signal. source addresses the status's holder.
	React(s *GameState, source StaticTarget, signal TriggeringSignal) StatusReaction

	// Preprocess may transform a damage value before it is finalized. It
	// returns the (possibly unchanged) damage and the status's own fate.
	Preprocess(s *GameState, source StaticTarget, d Damage, pp PreprocessType) (Damage, StatusUpdate)
}

// PassiveStatus provides default no-op React/Preprocess/ReactsTo behavior for
// statuses that only care about a subset of the contract. Embed it and
// override what matters.
type PassiveStatus struct{}

// ReactsTo reports no interest in any signal.
func (PassiveStatus) ReactsTo(TriggeringSignal) bool { return false }

// React keeps the status unchanged and queues nothing.
func (PassiveStatus) React(*GameState, StaticTarget, TriggeringSignal) StatusReaction {
	return StatusReaction{}
}

// Preprocess passes the damage through untouched and keeps the status.
func (PassiveStatus) Preprocess(_ *GameState, _ StaticTarget, d Damage, _ PreprocessType) (Damage, StatusUpdate) {
	return d, StatusUpdate{}
}

// Statuses is an ordered status collection with at most one live instance per
// status name. Update replaces in place, preserving position; new statuses
// append. It is a value type: mutations return new collections.
type Statuses struct {
	items []Status
}

// NewStatuses builds a collection from the given statuses, keeping order.
func NewStatuses(items ...Status) Statuses {
	return Statuses{items: append([]Status(nil), items...)}
}

// All returns the statuses in stored order.
func (s Statuses) All() []Status {
	return append([]Status(nil), s.items...)
}

// Len returns the number of live statuses.
func (s Statuses) Len() int {
	return len(s.items)
}

// Find returns the status with the given name.
func (s Statuses) Find(name string) (Status, bool) {
	for _, st := range s.items {
		if st.Name() == name {
			return st, true
		}
	}
	return nil, false
}

// Contains reports whether a status with the given name is live.
func (s Statuses) Contains(name string) bool {
	_, ok := s.Find(name)
	return ok
}

// Update replaces the same-named status in place, preserving its position,
// or appends when absent.
func (s Statuses) Update(st Status) Statuses {
	for i, held := range s.items {
		if held.Name() == st.Name() {
			items := append([]Status(nil), s.items...)
			items[i] = st
			return Statuses{items: items}
		}
	}
	items := make([]Status, 0, len(s.items)+1)
	items = append(items, s.items...)
	return Statuses{items: append(items, st)}
}

// Remove returns the collection without the named status; removing an absent
// status is a no-op returning the receiver.
func (s Statuses) Remove(name string) Statuses {
	for i, held := range s.items {
		if held.Name() == name {
			items := make([]Status, 0, len(s.items)-1)
			items = append(items, s.items[:i]...)
			return Statuses{items: append(items, s.items[i+1:]...)}
		}
	}
	return s
}
