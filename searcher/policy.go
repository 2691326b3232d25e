package searcher

import (
	"sort"

	"golang.org/x/exp/rand"

	"banqi/game"
)

// WeightedRandom picks a move with probability proportional to its heuristic
// score. Negative scores count as zero, uniform when every weight is zero.
func WeightedRandom(rng *rand.Rand, state game.State, moves []game.Move, heuristic game.Heuristic) game.Move {
	if len(moves) == 0 {
		panic("cannot pick from zero moves")
	}
	prefix := make([]int, len(moves))
	total := 0
	for i, move := range moves {
		if w := heuristic(state, move); w > 0 {
			total += w
		}
		prefix[i] = total
	}
	if total == 0 {
		return moves[rng.Intn(len(moves))]
	}
	// First index whose prefix sum exceeds r
	r := rng.Intn(total)
	i := sort.SearchInts(prefix, r+1)
	return moves[i]
}
