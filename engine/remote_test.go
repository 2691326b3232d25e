package engine

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"banqi/communication/server"
	"banqi/player"
)

func TestRemoteEngine(t *testing.T) {
	red := httptest.NewServer(server.NewServer(player.NewGreedy(1)).Handler())
	defer red.Close()
	black := httptest.NewServer(server.NewServer(player.NewRandom(2)).Handler())
	defer black.Close()

	e := NewRemoteEngine(red.URL, black.URL, 4, 5*time.Second, WithMaxTurns(30))
	_, gameMetric, moveMetrics, err := e.Run()

	require.NoError(t, err)
	require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
	require.NotEmpty(t, moveMetrics)
	require.Equal(t, player.EngineGreedy, moveMetrics[0].Engine)
}
