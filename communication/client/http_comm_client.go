package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"banqi/agent"
	"banqi/communication"
	"banqi/experiments/metrics"
	"banqi/game"
)

// RemoteAgent asks an agent server for every move.
type RemoteAgent struct {
	serverURL string
	client    *http.Client
}

var _ agent.Agent = (*RemoteAgent)(nil)

func NewRemoteAgent(serverURL string, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

func (a *RemoteAgent) FindMove(ctx context.Context, position *game.Position) (game.Move, metrics.SearchMetric, error) {
	body, err := json.Marshal(communication.MoveRequest{Position: position.Record()})
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.serverURL+"/move", bytes.NewReader(body))
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		return game.NoMove, metrics.SearchMetric{}, agent.ErrNoLegalMoves
	default:
		var failure communication.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("agent server returned %d: %s", resp.StatusCode, failure.Error)
	}

	var response communication.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("failed to decode move response: %w", err)
	}
	move, err := game.ParseMove(response.Move)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	return move, response.Metric(), nil
}
