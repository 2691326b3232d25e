package engine

import (
	"banqi/experiments/metrics"
	"banqi/game"
)

type Engine interface {
	// Run plays a game till there's a winner or the turn cap is reached
	Run() (winner game.Color, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
