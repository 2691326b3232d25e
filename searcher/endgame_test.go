package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"banqi/game"
)

func TestShouldUseExactSearch(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]game.Piece
		want   bool
	}{
		{
			name: "general covers every enemy piece",
			pieces: map[string]game.Piece{
				"a1": game.NewPiece(game.Red, game.General),
				"h4": game.NewPiece(game.Black, game.Advisor),
				"g4": game.NewPiece(game.Black, game.Horse),
			},
			want: true,
		},
		{
			name: "a defending cannon keeps it open",
			pieces: map[string]game.Piece{
				"a1": game.NewPiece(game.Red, game.General),
				"h4": game.NewPiece(game.Black, game.Cannon),
			},
			want: false,
		},
		{
			name: "attacking cannons do not count",
			pieces: map[string]game.Piece{
				"a1": game.NewPiece(game.Red, game.Cannon),
				"b1": game.NewPiece(game.Red, game.Cannon),
				"h4": game.NewPiece(game.Black, game.Soldier),
				"h3": game.NewPiece(game.Black, game.Soldier),
			},
			want: false,
		},
		{
			name: "soldier against a lone general",
			pieces: map[string]game.Piece{
				"a1": game.NewPiece(game.Red, game.Soldier),
				"h4": game.NewPiece(game.Black, game.General),
			},
			want: true,
		},
		{
			name: "symmetric for black",
			pieces: map[string]game.Piece{
				"a1": game.NewPiece(game.Red, game.Horse),
				"h4": game.NewPiece(game.Black, game.Chariot),
				"h3": game.NewPiece(game.Black, game.Soldier),
			},
			want: true,
		},
		{
			name: "nobody dominates",
			pieces: map[string]game.Piece{
				"a1": game.NewPiece(game.Red, game.Horse),
				"b1": game.NewPiece(game.Red, game.Cannon),
				"h4": game.NewPiece(game.Black, game.Chariot),
				"h3": game.NewPiece(game.Black, game.Soldier),
				"g3": game.NewPiece(game.Black, game.Cannon),
			},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := game.NewPosition(game.Red)
			for square, piece := range tc.pieces {
				p.Put(at(square), piece)
			}
			require.Equal(t, tc.want, ShouldUseExactSearch(p))
		})
	}

	t.Run("opening position is never exact", func(t *testing.T) {
		require.False(t, ShouldUseExactSearch(game.NewStartingPosition()))
	})
}
