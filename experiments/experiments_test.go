package experiments

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/meta"
	"banqi/player"
)

func at(s string) game.Square {
	sq, err := game.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func TestNewAgent(t *testing.T) {
	t.Run("baselines", func(t *testing.T) {
		a, err := NewAgent(metrics.AgentConfig{Name: "r", Kind: KindRandom}, 1)
		require.NoError(t, err)
		require.IsType(t, &player.Random{}, a)

		a, err = NewAgent(metrics.AgentConfig{Name: "g", Kind: KindGreedy}, 1)
		require.NoError(t, err)
		require.IsType(t, &player.Greedy{}, a)
	})

	t.Run("wakasagi with config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "params.yaml")
		require.NoError(t, os.WriteFile(path, []byte("exploration: 0.7\n"), 0644))

		_, err := NewAgent(metrics.AgentConfig{Name: "w", Kind: KindWakasagi, Config: path}, 1)
		require.NoError(t, err)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NewAgent(metrics.AgentConfig{Name: "x", Kind: "alien"}, 1)
		require.ErrorContains(t, err, "unknown kind")

		_, err = NewAgent(metrics.AgentConfig{Name: "x", Kind: KindRemote}, 1)
		require.ErrorContains(t, err, "without url")

		_, err = NewAgent(metrics.AgentConfig{Name: "x", Kind: KindWakasagi, Config: "/does/not/exist.yaml"}, 1)
		require.Error(t, err)
	})
}

func TestShowdown(t *testing.T) {
	var out bytes.Buffer
	dir := t.TempDir()
	s := NewShowdown(
		metrics.AgentConfig{ID: 1, Name: "greedy", Kind: KindGreedy},
		metrics.AgentConfig{ID: 2, Name: "random", Kind: KindRandom},
		WithGames(4),
		WithConcurrency(2),
		WithSeed(7),
		WithTurnLimit(80),
		WithOutput(&out),
		WithRecords(dir),
	)

	tally, results, err := s.Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 4, tally.Games)
	require.Len(t, results, 4)
	require.InDelta(t, 4.0, tally.Points[0]+tally.Points[1], 1e-9)
	require.Equal(t, 4, tally.Wins[0]+tally.Wins[1]+tally.Draws)
	for i, r := range results {
		require.Equal(t, i+1, r.Game)
		require.Equal(t, i%2, r.Red, "colors alternate")
		require.Equal(t, len(r.Moves), r.Metric.TotalMoves)
	}
	require.Contains(t, out.String(), "greedy (red) vs random (black)")
	require.Contains(t, out.String(), "random (red) vs greedy (black)")
	require.Contains(t, out.String(), fmt.Sprintf("(%d wins, %d losses, %d draws)", tally.Wins[0], tally.Wins[1], tally.Draws))

	matches, err := filepath.Glob(filepath.Join(dir, "showdown", "*", "move_records.parquet"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestShowdownCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewShowdown(
		metrics.AgentConfig{Name: "a", Kind: KindRandom},
		metrics.AgentConfig{Name: "b", Kind: KindRandom},
		WithGames(2),
	)
	_, _, err := s.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestTally(t *testing.T) {
	results := []Result{
		{Points: [2]float64{1, 0}},
		{Points: [2]float64{0.5, 0.5}},
		{Points: [2]float64{0, 1}},
		{Points: [2]float64{1, 0}},
	}

	tally := tallyResults(results)

	require.Equal(t, [2]int{2, 1}, tally.Wins)
	require.Equal(t, 1, tally.Draws)
	require.Equal(t, [2]float64{2.5, 1.5}, tally.Points)
}

func TestMeasureThroughput(t *testing.T) {
	decided := game.NewPosition(game.Red).
		Put(at("a1"), game.NewPiece(game.Red, game.General)).
		Put(at("b1"), game.NewPiece(game.Red, game.Chariot)).
		Put(at("h4"), game.NewPiece(game.Black, game.Horse))
	opening := game.NewStartingPosition().Apply(game.NewFlip(at("d2")))

	result := MeasureThroughput(meta.Default(), []*game.Position{decided, opening}, 30*time.Millisecond)

	require.Equal(t, 2, result.Positions)
	require.Greater(t, result.EpisodesPerSec, 0.0)
	require.Greater(t, result.NodesPerSec, 0.0)
	require.GreaterOrEqual(t, result.PlayoutFraction, 0.0)
	require.LessOrEqual(t, result.PlayoutFraction, 1.0)
}
