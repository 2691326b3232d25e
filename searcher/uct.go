package searcher

import (
	"math"

	"banqi/utils"
)

// score blends the child's own mean with its AMAF mean and adds the UCB
// exploration term. Means are negated since they belong to the opponent.
func (a *arena) score(child int, raveEquivalence float64) float64 {
	n := &a.nodes[child]
	if n.visits == 0 {
		return math.Inf(1)
	}

	beta, amafTerm := 0.0, 0.0
	if n.amafVisits > 0 {
		beta = math.Sqrt(raveEquivalence / (3*float64(n.visits) + raveEquivalence))
		amafTerm = -n.amafMean
	}
	exploration := a.nodes[n.parent].cSqrtLogN / n.sqrtN
	return (1-beta)*(-n.mean) + beta*amafTerm + exploration
}

// bestChild returns the highest scoring child, the first one on ties.
func (a *arena) bestChild(id int, raveEquivalence float64) int {
	best, bestScore := -1, math.Inf(-1)
	for _, child := range a.nodes[id].children {
		if s := a.score(child, raveEquivalence); best < 0 || s > bestScore {
			best, bestScore = child, s
		}
	}
	return best
}

func (a *arena) creditSiblings(parent int, value float64, played []step) {
	for _, sibling := range a.nodes[parent].children {
		n := &a.nodes[sibling]
		if utils.FindIndex(played, step{move: n.move, mover: n.mover}) >= 0 {
			a.updateAMAF(sibling, value)
		}
	}
}
