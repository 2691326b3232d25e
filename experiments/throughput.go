package experiments

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"banqi/agent"
	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/meta"
	"banqi/searcher"
)

// Throughput is the average search rate over a set of positions.
type Throughput struct {
	Positions       int
	EpisodesPerSec  float64
	NodesPerSec     float64 // Alpha-beta nodes, zero when no position was exact
	PlayoutFraction float64 // Rollouts that reached a finished game
}

// MeasureThroughput searches each position for budget with the engine the
// scheduler would pick and reports the rates.
func MeasureThroughput(params meta.Params, positions []*game.Position, budget time.Duration) Throughput {
	collector := metrics.NewCollector()
	mcts, ab := agent.NewEngines(params, collector)

	var samples []metrics.SearchMetric
	for i, position := range positions {
		if len(position.LegalMoves()) < 2 {
			continue
		}
		deadline := searcher.NewDeadline(budget, searcher.WithCheckInterval(params.CheckInterval))
		if searcher.ShouldUseExactSearch(position) {
			collector.Start(searcher.EngineAlphaBeta)
			ab.Search(position, deadline)
		} else {
			collector.Start(searcher.EngineMCTS)
			mcts.Search(position, deadline)
		}
		metric := collector.Complete()
		samples = append(samples, metric)
		log.Debug().Msgf("position %d: %s %d episodes, %d nodes in %s", i, metric.Engine, metric.Episodes, metric.Nodes, metric.Duration)
	}

	result := Throughput{Positions: len(samples)}
	if len(samples) == 0 {
		return result
	}

	mctsRuns := lo.Filter(samples, func(m metrics.SearchMetric, _ int) bool { return m.Engine == searcher.EngineMCTS })
	abRuns := lo.Filter(samples, func(m metrics.SearchMetric, _ int) bool { return m.Engine == searcher.EngineAlphaBeta })

	result.EpisodesPerSec = rate(mctsRuns, func(m metrics.SearchMetric) int { return m.Episodes })
	result.NodesPerSec = rate(abRuns, func(m metrics.SearchMetric) int { return m.Nodes })
	rollouts := lo.SumBy(mctsRuns, func(m metrics.SearchMetric) int { return m.Rollouts })
	if rollouts > 0 {
		result.PlayoutFraction = float64(lo.SumBy(mctsRuns, func(m metrics.SearchMetric) int { return m.FullPlayouts })) / float64(rollouts)
	}
	return result
}

func rate(runs []metrics.SearchMetric, count func(metrics.SearchMetric) int) float64 {
	elapsed := lo.SumBy(runs, func(m metrics.SearchMetric) time.Duration { return m.Duration })
	if elapsed <= 0 {
		return 0
	}
	return float64(lo.SumBy(runs, count)) / elapsed.Seconds()
}
