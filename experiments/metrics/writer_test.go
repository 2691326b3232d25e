package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

func sampleRecords() ([]GameRecord, []MoveRecord) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	games := []GameRecord{{
		ID:     1,
		Agent1: 10,
		Agent2: 20,
		GameMetric: GameMetric{
			StartingPlayer: "red",
			Winner:         "black",
			StartTime:      start,
			EndTime:        start.Add(3 * time.Second),
			Duration:       3 * time.Second,
			TotalMoves:     2,
		},
	}}
	moves := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "red", Move: "c2", SearchMetric: SearchMetric{Engine: "mcts", Episodes: 40, Rollouts: 90, Nodes: 900}}},
		{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: "black", Move: "c2-c3", SearchMetric: SearchMetric{Engine: "alphabeta", Depth: 7, Repetition: true}}},
	}
	return games, moves
}

func TestWriter(t *testing.T) {
	games, moves := sampleRecords()
	w, err := NewWriter(t.TempDir(), "showdown")
	require.NoError(t, err)

	t.Run("csv", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 10, Name: "wakasagi", Kind: "wakasagi", MoveBudget: time.Second}}))
		require.NoError(t, w.WriteGameRecords(games))
		require.NoError(t, w.WriteMoveRecords(moves))

		f, err := os.Open(filepath.Join(w.Dir(), "move_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "2", "black", "c2-c3", "alphabeta", "0s", "0", "0", "0", "0", "7", "true"}, rows[2])
	})

	t.Run("parquet", func(t *testing.T) {
		require.NoError(t, w.WriteParquet(games, moves))

		gameRows, err := parquet.ReadFile[GameRow](filepath.Join(w.Dir(), "game_records.parquet"))
		require.NoError(t, err)
		require.Len(t, gameRows, 1)
		require.Equal(t, "black", gameRows[0].Winner)
		require.Equal(t, int64(3000), gameRows[0].DurationMs)

		moveRows, err := parquet.ReadFile[MoveRow](filepath.Join(w.Dir(), "move_records.parquet"))
		require.NoError(t, err)
		require.Len(t, moveRows, 2)
		require.Equal(t, int32(900), moveRows[0].Nodes)
		require.Equal(t, int32(90), moveRows[0].Rollouts)
		require.True(t, moveRows[1].Repetition)
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("mcts")
	c.AddEpisode()
	c.AddEpisode()
	c.AddRollout()
	c.AddRollout()
	c.AddRollout()
	c.AddFullPlayout()
	c.SetNodes(12)
	c.SetDepth(3)

	metric := c.Complete()
	require.Equal(t, "mcts", metric.Engine)
	require.Equal(t, 2, metric.Episodes)
	require.Equal(t, 3, metric.Rollouts)
	require.Equal(t, 1, metric.FullPlayouts)
	require.Equal(t, 12, metric.Nodes)
	require.Equal(t, 3, metric.Depth)

	c.Start("alphabeta")
	require.Equal(t, 0, c.Complete().Episodes, "start resets the counters")
	require.Equal(t, 0, c.Complete().Rollouts)
}
