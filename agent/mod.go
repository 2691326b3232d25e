package agent

import (
	"context"
	"errors"

	"banqi/experiments/metrics"
	"banqi/game"
)

var ErrNoLegalMoves = errors.New("no legal moves")

type Agent interface {
	// FindMove returns the move to play in the position and the metrics of the search behind it
	FindMove(ctx context.Context, position *game.Position) (game.Move, metrics.SearchMetric, error)
}
