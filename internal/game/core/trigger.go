package core

// statusVisit is one stop of the trigger traversal: a status, where it lives,
// and the target addressing its holder.
type statusVisit struct {
	target StaticTarget
	ns     StatusNamespace
	status Status
}

// visitOrder enumerates every status holder of a player in the fixed
// traversal order: characters in activity order (active first, then bench
// order), each contributing character statuses, equipment and talents in
// stored order; then the player's hidden statuses, combat statuses, summons
// and supports, each in stored order. Both trigger_all and preprocessing walk
// this order; changing it changes game outcomes.
func visitOrder(s *GameState, pid Pid) []statusVisit {
	player := s.Player(pid)
	var visits []statusVisit

	for _, c := range player.Characters().ActivityOrder() {
		target := StaticTarget{Pid: pid, Zone: ZoneCharacter, ID: c.ID()}
		for _, entry := range c.StatusesOrdered() {
			visits = append(visits, statusVisit{target: target, ns: entry.ns, status: entry.status})
		}
	}

	playerTarget := StaticTarget{Pid: pid, Zone: ZonePlayer}
	for _, st := range player.HiddenStatuses().All() {
		visits = append(visits, statusVisit{target: playerTarget, ns: NSHidden, status: st})
	}
	for _, st := range player.CombatStatuses().All() {
		visits = append(visits, statusVisit{target: playerTarget, ns: NSCombat, status: st})
	}
	for _, st := range player.Summons().All() {
		visits = append(visits, statusVisit{target: StaticTarget{Pid: pid, Zone: ZoneSummons}, ns: NSSummon, status: st})
	}
	for _, st := range player.Supports().All() {
		visits = append(visits, statusVisit{target: StaticTarget{Pid: pid, Zone: ZoneSupports}, ns: NSSupport, status: st})
	}
	return visits
}

// triggerAll expands a signal into the reactions of every eligible status of
// one player. Reaction decisions run against the state threaded through the
// loop — a later status sees an earlier status's self-update — but the
// resulting effects are batched in traversal order and returned for the
// caller to splice onto the stack, never executed inline.
func triggerAll(s *GameState, pid Pid, signal TriggeringSignal) (*GameState, []Effect) {
	var batched []Effect
	for _, visit := range visitOrder(s, pid) {
		// Re-resolve: an earlier reaction may have updated or removed this
		// status, and its holder may have changed.
		col, ok := statusCollection(s, visit.target, visit.ns)
		if !ok {
			continue
		}
		current, ok := col.Find(visit.status.Name())
		if !ok || !current.ReactsTo(signal) {
			continue
		}
		reaction := current.React(s, visit.target, signal)
		s = applyStatusUpdate(s, visit.target, visit.ns, current, reaction.Self)
		batched = append(batched, reaction.Effects...)
	}
	return s, batched
}

// preprocessAll threads a damage value through every status of one player in
// traversal order, letting each transform it; status self-updates fold into
// the returned state immediately.
func preprocessAll(s *GameState, pid Pid, d Damage, pp PreprocessType) (*GameState, Damage) {
	for _, visit := range visitOrder(s, pid) {
		col, ok := statusCollection(s, visit.target, visit.ns)
		if !ok {
			continue
		}
		current, ok := col.Find(visit.status.Name())
		if !ok {
			continue
		}
		var update StatusUpdate
		d, update = current.Preprocess(s, visit.target, d, pp)
		s = applyStatusUpdate(s, visit.target, visit.ns, current, update)
	}
	return s, d
}
