// Package core implements the rules engine: immutable game-state snapshots,
// the effect stack and its interpreter, the status trigger protocol, the
// damage/reaction pipeline and the phase state machine. The concrete catalog
// of characters, cards and statuses lives outside this package and is
// dispatched purely through the capability interfaces declared here.
package core

import "fmt"

// Pid identifies one of the two player slots.
type Pid int

const (
	P1 Pid = 1
	P2 Pid = 2
)

// Other returns the opposing player id.
func (p Pid) Other() Pid {
	switch p {
	case P1:
		return P2
	case P2:
		return P1
	}
	panic(fmt.Sprintf("core: unknown pid %d", int(p)))
}

func (p Pid) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	}
	return fmt.Sprintf("PID_%d", int(p))
}

// Zone identifies the addressable entity collections of a player.
type Zone int

const (
	ZoneCharacter Zone = iota
	ZoneSummons
	ZoneSupports
	// ZonePlayer addresses the player itself, for player-scoped statuses.
	ZonePlayer
)

var zoneNames = map[Zone]string{
	ZoneCharacter: "CHARACTER",
	ZoneSummons:   "SUMMONS",
	ZoneSupports:  "SUPPORTS",
	ZonePlayer:    "PLAYER",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// StaticTarget addresses a character or entity across successive immutable
// snapshots. Every mutation produces a new character value, so effects carry
// this triple instead of live references.
type StaticTarget struct {
	Pid  Pid
	Zone Zone
	ID   int
}

// TriggeringSignal names a game event broadcast to statuses.
type TriggeringSignal int

const (
	SignalFastAction TriggeringSignal = iota
	SignalCombatAction
	SignalDeathEvent
	SignalSwapEvent
	SignalRoundStart
	SignalEndRoundCheckOut
	SignalRoundEnd
)

var signalNames = map[TriggeringSignal]string{
	SignalFastAction:       "FAST_ACTION",
	SignalCombatAction:     "COMBAT_ACTION",
	SignalDeathEvent:       "DEATH_EVENT",
	SignalSwapEvent:        "SWAP_EVENT",
	SignalRoundStart:       "ROUND_START",
	SignalEndRoundCheckOut: "END_ROUND_CHECK_OUT",
	SignalRoundEnd:         "ROUND_END",
}

func (s TriggeringSignal) String() string {
	if name, ok := signalNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SIGNAL_%d", int(s))
}

// Act is the per-player phase tag within a game phase.
type Act int

const (
	ActPassiveWait Act = iota
	ActActiveWait
	ActAction
	ActEnd
)

var actNames = map[Act]string{
	ActPassiveWait: "PASSIVE_WAIT",
	ActActiveWait:  "ACTIVE_WAIT",
	ActAction:      "ACTION",
	ActEnd:         "END",
}

func (a Act) String() string {
	if name, ok := actNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ACT_%d", int(a))
}

// StatusNamespace identifies which ordered status collection a status lives
// in. Character-scoped namespaces require a character target; the rest are
// player-scoped.
type StatusNamespace int

const (
	NSCharacterStatus StatusNamespace = iota
	NSEquipment
	NSTalent
	NSHidden
	NSCombat
	NSSummon
	NSSupport
)

var namespaceNames = map[StatusNamespace]string{
	NSCharacterStatus: "CHARACTER_STATUS",
	NSEquipment:       "EQUIPMENT",
	NSTalent:          "TALENT",
	NSHidden:          "HIDDEN",
	NSCombat:          "COMBAT",
	NSSummon:          "SUMMON",
	NSSupport:         "SUPPORT",
}

func (n StatusNamespace) String() string {
	if name, ok := namespaceNames[n]; ok {
		return name
	}
	return fmt.Sprintf("NAMESPACE_%d", int(n))
}

// CharacterScoped reports whether the namespace is attached to a character
// rather than to the player.
func (n StatusNamespace) CharacterScoped() bool {
	switch n {
	case NSCharacterStatus, NSEquipment, NSTalent:
		return true
	}
	return false
}
