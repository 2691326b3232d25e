package searcher

import (
	"math"

	"banqi/game"
)

const noParent = -1

// node is one entry of the search arena. Its statistics are kept from the
// perspective of the side to move at the node, so a parent prefers the child
// with the lowest mean.
type node struct {
	parent   int
	children []int
	depth    int
	move     game.Move  // Move that led here from the parent
	mover    game.Color // Color that played move

	visits    int
	sum       float64
	sumSq     float64
	mean      float64
	variance  float64
	sqrtN     float64
	cSqrtLogN float64 // C * sqrt(ln N), cached for the children's exploration term

	amafVisits int
	amafSum    float64
	amafMean   float64
}

// arena owns every node of one search, children refer to each other by index.
// Index 0 is the root.
type arena struct {
	nodes       []node
	exploration float64
}

func newArena(exploration float64) *arena {
	a := &arena{
		nodes:       make([]node, 0, 1024),
		exploration: exploration,
	}
	a.nodes = append(a.nodes, node{parent: noParent, move: game.NoMove, mover: game.NoColor})
	return a
}

func (a *arena) size() int {
	return len(a.nodes)
}

func (a *arena) addChild(parent int, move game.Move, mover game.Color) int {
	id := len(a.nodes)
	a.nodes = append(a.nodes, node{
		parent: parent,
		depth:  a.nodes[parent].depth + 1,
		move:   move,
		mover:  mover,
	})
	a.nodes[parent].children = append(a.nodes[parent].children, id)
	return id
}

func (a *arena) update(id int, value float64) {
	n := &a.nodes[id]
	n.visits++
	n.sum += value
	n.sumSq += value * value
	visits := float64(n.visits)
	n.mean = n.sum / visits
	n.variance = math.Max(0, n.sumSq/visits-n.mean*n.mean)
	n.sqrtN = math.Sqrt(visits)
	n.cSqrtLogN = a.exploration * math.Sqrt(math.Log(visits))
}

func (a *arena) updateAMAF(id int, value float64) {
	n := &a.nodes[id]
	n.amafVisits++
	n.amafSum += value
	n.amafMean = n.amafSum / float64(n.amafVisits)
}

// backup walks from id to the root. value is from the perspective of the side
// to move at id and flips sign at every level. Siblings whose move was played
// by the same color anywhere later in trajectory receive AMAF credit.
func (a *arena) backup(id int, value float64, trajectory []step) {
	for id != noParent {
		a.update(id, value)
		parent := a.nodes[id].parent
		if parent != noParent {
			a.creditSiblings(parent, value, trajectory[a.nodes[parent].depth:])
		}
		value = -value
		id = parent
	}
}
