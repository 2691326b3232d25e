package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"banqi/agent"
	"banqi/game"
)

func at(s string) game.Square {
	sq, err := game.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func TestBaselines(t *testing.T) {
	players := map[string]agent.Agent{
		EngineRandom: NewRandom(1),
		EngineGreedy: NewGreedy(1),
	}

	for name, p := range players {
		t.Run(name+" plays legal moves", func(t *testing.T) {
			position := game.NewStartingPosition()
			for i := 0; i < 20 && position.Winner() == game.NoColor; i++ {
				move, metric, err := p.FindMove(context.Background(), position)
				require.NoError(t, err)
				require.True(t, position.IsLegal(move), "move %s", move)
				require.Equal(t, name, metric.Engine)
				position = position.Apply(move)
			}
		})

		t.Run(name+" without moves", func(t *testing.T) {
			stuck := game.NewPosition(game.Red).
				Put(at("a1"), game.NewPiece(game.Red, game.Soldier)).
				Put(at("a2"), game.NewPiece(game.Black, game.Chariot)).
				Put(at("b1"), game.NewPiece(game.Black, game.Chariot))
			_, _, err := p.FindMove(context.Background(), stuck)
			require.ErrorIs(t, err, agent.ErrNoLegalMoves)
		})
	}

	t.Run("greedy takes the big capture", func(t *testing.T) {
		position := game.NewPosition(game.Red).
			Put(at("a1"), game.NewPiece(game.Red, game.General)).
			Put(at("a2"), game.NewPiece(game.Black, game.Advisor)).
			Put(at("h4"), game.NewPiece(game.Black, game.Soldier))
		capture := game.NewMove(at("a1"), at("a2"))
		p := NewGreedy(9)

		hits := 0
		for i := 0; i < 100; i++ {
			move, _, err := p.FindMove(context.Background(), position)
			require.NoError(t, err)
			if move == capture {
				hits++
			}
		}
		require.GreaterOrEqual(t, hits, 90)
	})
}
