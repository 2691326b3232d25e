package communication

import (
	"time"

	"banqi/experiments/metrics"
	"banqi/game"
)

// MoveRequest asks an agent server for a move in the position given as a
// notation record.
type MoveRequest struct {
	Position string `json:"position"`
}

type MoveResponse struct {
	Move      string `json:"move"`
	Engine    string `json:"engine"`
	Depth     int    `json:"depth"`
	Nodes     int    `json:"nodes"`
	Episodes  int    `json:"episodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewMoveResponse(move game.Move, metric metrics.SearchMetric) MoveResponse {
	return MoveResponse{
		Move:      move.String(),
		Engine:    metric.Engine,
		Depth:     metric.Depth,
		Nodes:     metric.Nodes,
		Episodes:  metric.Episodes,
		ElapsedMs: metric.Duration.Milliseconds(),
	}
}

func (r MoveResponse) Metric() metrics.SearchMetric {
	return metrics.SearchMetric{
		Engine:   r.Engine,
		Duration: time.Duration(r.ElapsedMs) * time.Millisecond,
		Episodes: r.Episodes,
		Nodes:    r.Nodes,
		Depth:    r.Depth,
	}
}
