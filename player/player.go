package player

import (
	"context"
	"sync"

	"golang.org/x/exp/rand"

	"banqi/agent"
	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/searcher"
)

const (
	EngineRandom = "random"
	EngineGreedy = "greedy"
)

// Random plays a uniformly random legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ agent.Agent = (*Random)(nil)

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) FindMove(_ context.Context, position *game.Position) (game.Move, metrics.SearchMetric, error) {
	moves := position.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, agent.ErrNoLegalMoves
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return moves[p.rng.Intn(len(moves))], metrics.SearchMetric{Engine: EngineRandom}, nil
}

// Greedy samples from the rollout policy, so it mostly grabs the biggest
// capture on offer.
type Greedy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ agent.Agent = (*Greedy)(nil)

func NewGreedy(seed uint64) *Greedy {
	return &Greedy{rng: rand.New(rand.NewSource(seed))}
}

func (p *Greedy) FindMove(_ context.Context, position *game.Position) (game.Move, metrics.SearchMetric, error) {
	moves := position.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, agent.ErrNoLegalMoves
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	move := searcher.WeightedRandom(p.rng, position, moves, game.MoveHeuristic)
	return move, metrics.SearchMetric{Engine: EngineGreedy}, nil
}
