package searcher

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"banqi/experiments/metrics"
	"banqi/game"
)

const EngineAlphaBeta = "alphabeta"

type ABOption func(ab *AlphaBeta)

// AlphaBeta is an iterative deepening fail-soft negamax. Flips are searched
// as the deterministic reveal the position commits to.
type AlphaBeta struct {
	maxDepth      int
	winScore      int
	nearWinMargin int
	evaluate      game.Evaluate
	material      game.Evaluate
	order         game.Heuristic
	metrics       metrics.Collector
}

type ABResult struct {
	Best   game.Move
	Second game.Move // NoMove when the root has a single move
	Score  int       // Score of Best at the last completed depth
	Depth  int       // Last completed depth, 0 if none finished
	Nodes  int
}

func WithMaxDepth(depth int) ABOption {
	return func(ab *AlphaBeta) {
		if depth > 0 {
			ab.maxDepth = depth
		}
	}
}

func WithWinScore(score, nearWinMargin int) ABOption {
	return func(ab *AlphaBeta) {
		if score > 0 && nearWinMargin >= 0 {
			ab.winScore = score
			ab.nearWinMargin = nearWinMargin
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) ABOption {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithTerminalMaterialFn(material game.Evaluate) ABOption {
	return func(ab *AlphaBeta) {
		if material != nil {
			ab.material = material
		}
	}
}

func WithOrderingFn(order game.Heuristic) ABOption {
	return func(ab *AlphaBeta) {
		if order != nil {
			ab.order = order
		}
	}
}

func WithABMetrics(collector metrics.Collector) ABOption {
	return func(ab *AlphaBeta) {
		if collector != nil {
			ab.metrics = collector
		}
	}
}

func NewAlphaBeta(options ...ABOption) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		maxDepth:      50,
		winScore:      100000,
		nearWinMargin: 5000,
		evaluate:      game.Score,
		material:      game.MaterialBalance,
		order:         game.MoveHeuristic,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	return ab
}

type scoredMove struct {
	move  game.Move
	score int
}

// ordered returns the legal moves sorted by heuristic, best first. Ties keep
// generation order.
func (ab *AlphaBeta) ordered(state game.State) []game.Move {
	moves := state.LegalMoves()
	scored := make([]scoredMove, len(moves))
	for i, move := range moves {
		scored[i] = scoredMove{move: move, score: ab.order(state, move)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i := range scored {
		moves[i] = scored[i].move
	}
	return moves
}

// Search deepens from depth 1 until the deadline trips, maxDepth is reached,
// or a forced win is found. An interrupted depth is discarded.
func (ab *AlphaBeta) Search(state game.State, deadline *Deadline) ABResult {
	moves := ab.ordered(state)
	result := ABResult{Best: game.NoMove, Second: game.NoMove}
	if len(moves) == 0 {
		return result
	}
	result.Best = moves[0]
	if len(moves) > 1 {
		result.Second = moves[1]
	}
	if len(moves) == 1 {
		return result
	}

	for depth := 1; depth <= ab.maxDepth; depth++ {
		if deadline.Expired() {
			break
		}
		best, second, score, ok := ab.searchRoot(state, moves, depth, deadline)
		if !ok {
			break
		}
		result.Best, result.Second, result.Score, result.Depth = best, second, score, depth
		ab.metrics.SetDepth(depth)
		log.Debug().Msgf("alphabeta depth %d: best %s score %d nodes %d", depth, best, score, deadline.Nodes())
		if score > ab.winScore-ab.nearWinMargin {
			break
		}
	}
	result.Nodes = deadline.Nodes()
	ab.metrics.SetNodes(result.Nodes)
	return result
}

func (ab *AlphaBeta) searchRoot(state game.State, moves []game.Move, depth int, deadline *Deadline) (game.Move, game.Move, int, bool) {
	alpha, beta := -math.MaxInt32, math.MaxInt32
	best, second := game.NoMove, game.NoMove
	mx, secondScore := -math.MaxInt32, -math.MaxInt32
	for _, move := range moves {
		t := -ab.negamax(state.Play(move), depth-1, -beta, -max(alpha, mx), deadline)
		if deadline.Interrupted() {
			return game.NoMove, game.NoMove, 0, false
		}
		switch {
		case t > mx:
			second, secondScore = best, mx
			best, mx = move, t
		case t > secondScore:
			second, secondScore = move, t
		}
	}
	return best, second, mx, true
}

// negamax returns the value of state for its side to move. A tripped deadline
// makes every pending call return 0, the caller discards the result.
func (ab *AlphaBeta) negamax(state game.State, depth, alpha, beta int, deadline *Deadline) int {
	if deadline.Poll() {
		return 0
	}
	mover := state.Player()
	if winner := state.Winner(); winner != game.NoColor {
		return ab.terminal(state, winner, mover, depth)
	}
	if depth == 0 {
		return ab.evaluate(state, mover)
	}

	moves := ab.ordered(state)
	if len(moves) == 0 {
		return -(ab.winScore + depth)
	}
	mx := -math.MaxInt32
	for _, move := range moves {
		t := -ab.negamax(state.Play(move), depth-1, -beta, -max(alpha, mx), deadline)
		if deadline.Interrupted() {
			return 0
		}
		if t > mx {
			mx = t
			if mx >= beta {
				return mx
			}
		}
	}
	return mx
}

// terminal prefers faster wins and slower losses through the remaining depth.
func (ab *AlphaBeta) terminal(state game.State, winner, mover game.Color, depth int) int {
	material := ab.material(state, mover)
	switch winner {
	case mover:
		return ab.winScore + depth + material
	case mover.Opponent():
		return -(ab.winScore + depth) + material
	}
	return material
}
