package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"banqi/game"
)

func TestRepetitionGuard(t *testing.T) {
	t.Run("counts visits within an epoch", func(t *testing.T) {
		g := NewRepetitionGuard()
		hash := game.StateHash(42)
		require.Equal(t, 0, g.Seen(hash))
		require.Equal(t, 1, g.Record(hash))
		require.Equal(t, 2, g.Record(hash))
		require.Equal(t, 2, g.Seen(hash))
	})

	t.Run("a new epoch forgets earlier games", func(t *testing.T) {
		g := NewRepetitionGuard()
		hash := game.StateHash(7)
		g.Record(hash)
		g.Record(hash)
		g.NewEpoch()
		require.Equal(t, 1, g.Epoch())
		require.Equal(t, 0, g.Seen(hash))
		require.Equal(t, 1, g.Record(hash))
	})

	t.Run("avoids a third visit only when ahead", func(t *testing.T) {
		g := NewRepetitionGuard()
		hash := game.StateHash(9)
		g.Record(hash)
		require.False(t, g.ShouldAvoid(hash, 100))
		g.Record(hash)
		require.True(t, g.ShouldAvoid(hash, 100))
		require.False(t, g.ShouldAvoid(hash, 0))
		require.False(t, g.ShouldAvoid(hash, -30))
	})
}
