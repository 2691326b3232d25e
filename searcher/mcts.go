package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"banqi/experiments/metrics"
	"banqi/game"
)

const EngineMCTS = "mcts"

type Option func(mcts *MCTS)

// MCTS is a single-threaded UCB1 tree search with RAVE blending. Every search
// builds a fresh arena, nothing is reused across moves.
type MCTS struct {
	exploration       float64
	raveEquivalence   float64
	amafCutoff        int
	simsPerChild      int
	bestChildRollouts int
	rolloutCap        int
	tieBreak          float64
	episodes          int
	heuristic         game.Heuristic
	material          game.Evaluate
	rng               *rand.Rand
	tree              *arena
	metrics           metrics.Collector
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRaveEquivalence(k float64) Option {
	return func(m *MCTS) {
		if k >= 0 {
			m.raveEquivalence = k
		}
	}
}

func WithAMAFCutoff(plies int) Option {
	return func(m *MCTS) {
		if plies >= 0 {
			m.amafCutoff = plies
		}
	}
}

func WithSimulationsPerChild(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.simsPerChild = n
		}
	}
}

func WithBestChildRollouts(n int) Option {
	return func(m *MCTS) {
		if n >= 0 {
			m.bestChildRollouts = n
		}
	}
}

func WithRolloutCap(plies int) Option {
	return func(m *MCTS) {
		if plies > 0 {
			m.rolloutCap = plies
		}
	}
}

func WithMaterialTieBreak(weight float64) Option {
	return func(m *MCTS) {
		m.tieBreak = weight
	}
}

// WithEpisodes stops the search after a fixed number of iterations, the
// deadline still applies.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithHeuristic(heuristic game.Heuristic) Option {
	return func(m *MCTS) {
		if heuristic != nil {
			m.heuristic = heuristic
		}
	}
}

func WithMaterialFn(material game.Evaluate) Option {
	return func(m *MCTS) {
		if material != nil {
			m.material = material
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration:       1.4,
		raveEquivalence:   1000,
		amafCutoff:        15,
		simsPerChild:      1,
		bestChildRollouts: 1,
		rolloutCap:        200,
		tieBreak:          0.02,
		heuristic:         game.MoveHeuristic,
		material:          PieceBalance,
		rng:               rand.New(rand.NewSource(42)),
		metrics:           metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs iterations until the deadline expires and returns the visited
// root move with the best mean for the side to move.
func (m *MCTS) Search(state game.State, deadline *Deadline) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove
	}
	if len(moves) == 1 {
		return moves[0]
	}

	m.tree = newArena(m.exploration)
	for i := 0; !deadline.Expired(); i++ {
		if m.episodes > 0 && i >= m.episodes {
			break
		}
		m.iterate(state, deadline)
		m.metrics.AddEpisode()
	}
	m.metrics.SetNodes(m.tree.size())
	return m.decide(moves)
}

func (m *MCTS) iterate(root game.State, deadline *Deadline) {
	leaf, state, path := m.selectLeaf(root)

	if winner := state.Winner(); winner != game.NoColor {
		m.tree.backup(leaf, m.outcome(state, winner, state.Player()), path)
		return
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		m.tree.backup(leaf, LOSS, path)
		return
	}

	mover := state.Player()
	for _, move := range moves {
		m.tree.addChild(leaf, move, mover)
	}
	for _, child := range m.tree.nodes[leaf].children {
		if deadline.Expired() {
			return
		}
		m.simulateChild(child, state, path)
	}
	for r := 0; r < m.bestChildRollouts && !deadline.Expired(); r++ {
		child := m.tree.bestChild(leaf, m.raveEquivalence)
		m.simulateChild(child, state, path)
	}
}

func (m *MCTS) selectLeaf(state game.State) (int, game.State, []step) {
	id := 0
	var path []step
	for len(m.tree.nodes[id].children) > 0 {
		id = m.tree.bestChild(id, m.raveEquivalence)
		n := &m.tree.nodes[id]
		path = append(path, step{move: n.move, mover: n.mover})
		state = state.Play(n.move)
	}
	return id, state, path
}

func (m *MCTS) simulateChild(child int, parent game.State, path []step) {
	n := m.tree.nodes[child]
	state := parent.Play(n.move)
	prefix := append(path[:len(path):len(path)], step{move: n.move, mover: n.mover})
	for s := 0; s < m.simsPerChild; s++ {
		value, played := m.rollout(state)
		m.tree.backup(child, value, append(prefix[:len(prefix):len(prefix)], played...))
	}
}

// rollout plays heuristic-weighted moves until the game ends or the cap is
// reached. The value is from the perspective of the side to move at state.
// A side left without moves loses, as in iterate.
func (m *MCTS) rollout(state game.State) (float64, []step) {
	perspective := state.Player()
	var played []step
	m.metrics.AddRollout()
	winner := state.Winner()
	for ply := 0; ply < m.rolloutCap && winner == game.NoColor; ply++ {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			winner = state.Player().Opponent()
			break
		}
		move := WeightedRandom(m.rng, state, moves, m.heuristic)
		if ply < m.amafCutoff {
			played = append(played, step{move: move, mover: state.Player()})
		}
		state = state.Play(move)
		winner = state.Winner()
	}
	if winner != game.NoColor {
		m.metrics.AddFullPlayout()
	}
	return m.outcome(state, winner, perspective), played
}

func (m *MCTS) outcome(state game.State, winner, perspective game.Color) float64 {
	return float64(game.Outcome(winner, perspective)) + m.tieBreak*float64(m.material(state, perspective))
}

func (m *MCTS) decide(moves []game.Move) game.Move {
	best, bestValue := game.NoMove, math.Inf(-1)
	for _, child := range m.tree.nodes[0].children {
		n := &m.tree.nodes[child]
		if n.visits == 0 {
			continue
		}
		if value := -n.mean; value > bestValue {
			best, bestValue = n.move, value
		}
	}
	if best == game.NoMove {
		return moves[0]
	}
	return best
}
