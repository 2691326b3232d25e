package agent

import (
	"context"

	"github.com/rs/zerolog/log"

	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/meta"
	"banqi/searcher"
)

type Option func(w *Wakasagi)

// Wakasagi picks an engine per turn: exact alpha-beta once the material is
// decided, MCTS otherwise. The repetition guard is the only state kept
// between turns, so one value serves one game at a time.
type Wakasagi struct {
	params  meta.Params
	clock   searcher.Clock
	guard   *searcher.RepetitionGuard
	mcts    *searcher.MCTS
	ab      *searcher.AlphaBeta
	metrics metrics.Collector
}

func WithClock(clock searcher.Clock) Option {
	return func(w *Wakasagi) {
		w.clock = clock
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(w *Wakasagi) {
		if collector != nil {
			w.metrics = collector
		}
	}
}

func NewWakasagi(params meta.Params, options ...Option) *Wakasagi {
	w := &Wakasagi{
		params:  params,
		guard:   searcher.NewRepetitionGuard(),
		metrics: metrics.NewCollector(),
	}
	for _, option := range options {
		option(w)
	}
	w.mcts, w.ab = NewEngines(params, w.metrics)
	return w
}

// NewEngines builds the two searchers the scheduler chooses between, both
// reporting to collector.
func NewEngines(params meta.Params, collector metrics.Collector) (*searcher.MCTS, *searcher.AlphaBeta) {
	mcts := searcher.NewMCTS(
		searcher.WithExploration(params.Exploration),
		searcher.WithRaveEquivalence(params.RaveEquivalence),
		searcher.WithAMAFCutoff(params.AMAFCutoff),
		searcher.WithSimulationsPerChild(params.SimulationsPerChild),
		searcher.WithBestChildRollouts(params.BestChildRollouts),
		searcher.WithRolloutCap(params.RolloutCap),
		searcher.WithMaterialTieBreak(params.MaterialTieBreak),
		searcher.WithSeed(params.Seed),
		searcher.WithMetrics(collector),
	)
	ab := searcher.NewAlphaBeta(
		searcher.WithMaxDepth(params.MaxDepth),
		searcher.WithWinScore(params.WinScore, params.NearWinMargin),
		searcher.WithABMetrics(collector),
	)
	return mcts, ab
}

func (w *Wakasagi) FindMove(ctx context.Context, position *game.Position) (game.Move, metrics.SearchMetric, error) {
	if position.IsOpening() {
		w.guard.NewEpoch()
	}
	if len(position.LegalMoves()) == 0 {
		return game.NoMove, metrics.SearchMetric{}, ErrNoLegalMoves
	}

	deadline := searcher.NewDeadline(w.params.MoveBudget,
		searcher.WithContext(ctx),
		searcher.WithCheckInterval(w.params.CheckInterval),
		searcher.WithClock(w.clock),
	)

	var move game.Move
	if searcher.ShouldUseExactSearch(position) {
		w.metrics.Start(searcher.EngineAlphaBeta)
		move = w.exactMove(position, deadline)
	} else {
		w.metrics.Start(searcher.EngineMCTS)
		move = w.mcts.Search(position, deadline)
	}
	metric := w.metrics.Complete()

	log.Info().
		Str("engine", metric.Engine).
		Str("side", position.Side.String()).
		Str("move", move.String()).
		Int("depth", metric.Depth).
		Int("nodes", metric.Nodes).
		Int("episodes", metric.Episodes).
		Dur("elapsed", deadline.Elapsed()).
		Dur("budget", deadline.Budget()).
		Msg("turn")
	return move, metric, nil
}

// exactMove runs alpha-beta and records the position it leads to. With
// AvoidRepetition set, a winning line that returns to a position seen twice
// this game gives way to the runner-up move.
func (w *Wakasagi) exactMove(position *game.Position, deadline *searcher.Deadline) game.Move {
	result := w.ab.Search(position, deadline)
	move := result.Best
	if w.params.AvoidRepetition && result.Second != game.NoMove {
		next := position.Apply(move)
		if w.guard.ShouldAvoid(next.Hash(), game.Score(next, position.Side)) {
			log.Debug().Msgf("repetition: playing %s instead of %s", result.Second, move)
			move = result.Second
			w.metrics.SetRepetition(true)
		}
	}
	w.guard.Record(position.Apply(move).Hash())
	return move
}
