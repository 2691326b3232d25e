package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"banqi/game"
)

func twoChildArena() (*arena, int, int) {
	a := newArena(1.4)
	first := a.addChild(0, game.NewMove(0, 0), game.Red)
	second := a.addChild(0, game.NewMove(0, 1), game.Red)
	return a, first, second
}

func TestScore(t *testing.T) {
	t.Run("unvisited child is infinite", func(t *testing.T) {
		a, first, _ := twoChildArena()
		require.True(t, math.IsInf(a.score(first, 1000), 1))
	})

	t.Run("plain UCB without AMAF samples", func(t *testing.T) {
		a, first, _ := twoChildArena()
		a.update(0, 0)
		a.update(0, 0)
		a.update(0, 0)
		a.update(first, 0.5)
		a.update(first, -0.5)
		a.update(first, 1)

		want := -a.nodes[first].mean + 1.4*math.Sqrt(math.Log(3))/math.Sqrt(3)
		require.InDelta(t, want, a.score(first, 1000), 1e-9)
	})

	t.Run("AMAF blending weight", func(t *testing.T) {
		a, first, _ := twoChildArena()
		a.update(0, 0)
		a.update(first, 1)
		a.updateAMAF(first, -1)

		beta := math.Sqrt(1000.0 / (3 + 1000.0))
		want := (1-beta)*(-1) + beta*1 + 0 // ln 1 = 0 so no exploration
		require.InDelta(t, want, a.score(first, 1000), 1e-9)
	})

	t.Run("a losing child scores low for the parent", func(t *testing.T) {
		a, first, second := twoChildArena()
		a.update(0, 0)
		a.update(0, 0)
		a.update(first, 1)   // Good for the opponent
		a.update(second, -1) // Bad for the opponent
		require.Equal(t, second, a.bestChild(0, 0))
	})
}

func TestBestChild(t *testing.T) {
	t.Run("ties go to the first child", func(t *testing.T) {
		a, first, second := twoChildArena()
		a.update(0, 0)
		a.update(0, 0)
		a.update(first, 0.25)
		a.update(second, 0.25)
		require.Equal(t, first, a.bestChild(0, 1000))
	})

	t.Run("first unvisited child wins", func(t *testing.T) {
		a, first, _ := twoChildArena()
		require.Equal(t, first, a.bestChild(0, 1000))
	})

	t.Run("unvisited beats visited", func(t *testing.T) {
		a, first, second := twoChildArena()
		a.update(0, -1)
		a.update(first, -1)
		require.Equal(t, second, a.bestChild(0, 1000))
	})
}

func TestBackup(t *testing.T) {
	t.Run("flips sign per level and credits matching siblings", func(t *testing.T) {
		a, first, second := twoChildArena()
		grandchild := a.addChild(first, game.NewMove(1, 1), game.Black)
		trajectory := []step{
			{move: game.NewMove(0, 0), mover: game.Red},
			{move: game.NewMove(1, 1), mover: game.Black},
			{move: game.NewMove(0, 1), mover: game.Red},
		}

		a.backup(grandchild, 1, trajectory)

		require.Equal(t, 1.0, a.nodes[grandchild].mean)
		require.Equal(t, -1.0, a.nodes[first].mean)
		require.Equal(t, 1.0, a.nodes[0].mean)
		require.Equal(t, 0, a.nodes[second].visits)
		require.Equal(t, 1, a.nodes[second].amafVisits, "Red played the second move later")
		require.Equal(t, -1.0, a.nodes[second].amafMean)
		require.Equal(t, 1, a.nodes[first].amafVisits)
		require.Equal(t, 1, a.nodes[grandchild].amafVisits)
	})

	t.Run("same move by the other color earns no credit", func(t *testing.T) {
		a, first, second := twoChildArena()
		trajectory := []step{
			{move: game.NewMove(0, 0), mover: game.Red},
			{move: game.NewMove(0, 1), mover: game.Black},
		}

		a.backup(first, 1, trajectory)

		require.Equal(t, 0, a.nodes[second].amafVisits)
	})

	t.Run("variance tracks the samples", func(t *testing.T) {
		a := newArena(1.4)
		a.update(0, 1)
		a.update(0, -1)
		require.Equal(t, 0.0, a.nodes[0].mean)
		require.InDelta(t, 1.0, a.nodes[0].variance, 1e-9)
		require.InDelta(t, math.Sqrt2, a.nodes[0].sqrtN, 1e-9)
	})
}
