package dice

import (
	"fmt"

	"github.com/invokesim/invoke-server-go/internal/game/element"
)

// satisfy checks feasibility without building an allocation: pure kinds are
// deducted first with shortfalls converted into an OMNI need, then the OMNI
// ("same kind") requirement is checked against the best remaining pile plus
// leftover OMNI. ANY needs no check beyond the caller's total-count guard.
func (d ActualDice) satisfy(req AbstractDice) bool {
	if !d.IsLegal() || !req.IsLegal() {
		panic(fmt.Sprintf("dice: satisfy on illegal dice %v vs %v", d, req))
	}

	omniNeeded := 0
	mostPure := 0
	for _, e := range element.PureElements {
		left := d.Get(e) - req.Get(e)
		if left < 0 {
			omniNeeded += -left
			left = 0
		}
		if left > mostPure {
			mostPure = left
		}
	}
	if d.Get(element.Omni) < omniNeeded {
		return false
	}

	omniRemained := d.Get(element.Omni) - omniNeeded
	return omniRemained+mostPure >= req.Get(element.Omni)
}

// LooselySatisfy reports whether d can pay req using at least req's total
// count of dice (surplus dice may be left over).
func (d ActualDice) LooselySatisfy(req AbstractDice) bool {
	if d.NumDice() < req.NumDice() {
		return false
	}
	return d.satisfy(req)
}

// JustSatisfy reports whether d pays req exactly, with no die left over. This
// is the legality check for a player-submitted dice selection.
func (d ActualDice) JustSatisfy(req AbstractDice) bool {
	if d.NumDice() != req.NumDice() {
		return false
	}
	return d.satisfy(req)
}

// BasicallySatisfy allocates a concrete subset of d that pays req, or returns
// ok=false when no allocation exists. Resolution order is fixed:
//
//  1. Pure kinds deduct directly; shortfalls accumulate as an OMNI need.
//  2. The OMNI requirement ("N of one same kind") picks the pile whose count
//     is closest to N from above; if no pile covers N, the largest pile is
//     drained and the shortfall joins the OMNI need. Ties break on the fixed
//     kind order.
//  3. The ANY requirement drains the smallest remaining piles first,
//     conserving large piles, and spills into held OMNI if kinds run out.
//
// Finally the accumulated OMNI need must be covered by literal OMNI dice.
func (d ActualDice) BasicallySatisfy(req AbstractDice) (ActualDice, bool) {
	if req.NumDice() > d.NumDice() {
		return ActualDice{}, false
	}

	remaining := d
	var answer ActualDice
	omniRequired := 0

	for _, e := range element.PureElements {
		need := req.Get(e)
		if need == 0 {
			continue
		}
		have := remaining.Get(e)
		if have < need {
			answer = answer.addKind(e, have)
			remaining = remaining.subKind(e, have)
			omniRequired += need - have
		} else {
			answer = answer.addKind(e, need)
			remaining = remaining.subKind(e, need)
		}
	}

	if omni := req.Get(element.Omni); omni > 0 {
		bestElem := element.Element(-1)
		bestCount := 0
		for _, e := range element.PureElements {
			thisCount := remaining.Get(e)
			switch {
			case bestCount == omni:
				// exact pile already found
			case bestCount > omni && thisCount >= omni && thisCount < bestCount:
				bestElem, bestCount = e, thisCount
			case bestCount < omni && thisCount > bestCount:
				bestElem, bestCount = e, thisCount
			}
		}
		if bestElem >= 0 {
			take := min(bestCount, omni)
			answer = answer.addKind(bestElem, take)
			remaining = remaining.subKind(bestElem, take)
			omniRequired += omni - take
		} else {
			omniRequired += omni
		}
	}

	if anyNeed := req.Get(element.Any); anyNeed > 0 {
		for anyNeed > 0 {
			smallest := element.Element(-1)
			smallestCount := 0
			for _, e := range element.PureElements {
				c := remaining.Get(e)
				if c > 0 && (smallest < 0 || c < smallestCount) {
					smallest, smallestCount = e, c
				}
			}
			if smallest < 0 {
				break
			}
			take := min(smallestCount, anyNeed)
			answer = answer.addKind(smallest, take)
			remaining = remaining.subKind(smallest, take)
			anyNeed -= take
		}
		if anyNeed > 0 {
			if remaining.Get(element.Omni) < anyNeed {
				return ActualDice{}, false
			}
			answer = answer.addKind(element.Omni, anyNeed)
			remaining = remaining.subKind(element.Omni, anyNeed)
		}
	}

	if omniRequired > 0 {
		if remaining.Get(element.Omni) < omniRequired {
			return ActualDice{}, false
		}
		answer = answer.addKind(element.Omni, omniRequired)
	}
	return answer, true
}

func (d ActualDice) addKind(e element.Element, n int) ActualDice {
	i, _ := kindIndex(e)
	d.counts[i] += n
	return d
}

func (d ActualDice) subKind(e element.Element, n int) ActualDice {
	i, _ := kindIndex(e)
	d.counts[i] -= n
	return d
}
