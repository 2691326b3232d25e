package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	t.Run("material is symmetric", func(t *testing.T) {
		p := NewPosition(Red).
			Put(sq("a1"), NewPiece(Red, Advisor)).
			Put(sq("h4"), NewPiece(Black, Horse))
		require.Equal(t, PieceValue[Advisor]-PieceValue[Horse], MaterialBalance(p, Red))
		require.Equal(t, -MaterialBalance(p, Red), MaterialBalance(p, Black))
	})

	t.Run("proximity rewards closing on a capturable piece", func(t *testing.T) {
		far := NewPosition(Red).
			Put(sq("a1"), NewPiece(Red, Advisor)).
			Put(sq("h4"), NewPiece(Black, Horse))
		near := NewPosition(Red).
			Put(sq("g4"), NewPiece(Red, Advisor)).
			Put(sq("h3"), NewPiece(Black, Horse))

		require.Equal(t, MaterialBalance(far, Red)-10, Score(far, Red))
		require.Equal(t, MaterialBalance(near, Red)-2, Score(near, Red))
		require.Greater(t, Score(near, Red), Score(far, Red))
	})

	t.Run("no penalty when nothing is capturable", func(t *testing.T) {
		p := NewPosition(Red).
			Put(sq("a1"), NewPiece(Red, Soldier)).
			Put(sq("h4"), NewPiece(Black, Advisor))
		require.Equal(t, MaterialBalance(p, Red), Score(p, Red))
	})
}

func TestMoveHeuristic(t *testing.T) {
	p := NewPosition(Red).
		Put(sq("a1"), NewPiece(Red, General)).
		Put(sq("a2"), NewPiece(Black, Advisor)).
		Put(sq("h4"), NewPiece(Red, Soldier)).
		Put(sq("g3"), NewPiece(Black, Chariot)).
		Put(sq("d1"), HiddenCell)
	p.Pool[Black][Soldier] = 1

	require.Equal(t, captureTable[General][Advisor], MoveHeuristic(p, NewMove(sq("a1"), sq("a2"))))
	require.Equal(t, quietTable[General], MoveHeuristic(p, NewMove(sq("a1"), sq("b1"))))
	require.Equal(t, RiskyMoveScore, MoveHeuristic(p, NewMove(sq("h4"), sq("g4"))), "chariot can take back")
	require.Equal(t, RiskyMoveScore, MoveHeuristic(p, NewMove(sq("h4"), sq("h3"))))
	require.Equal(t, FlipScore, MoveHeuristic(p, NewFlip(sq("d1"))))

	for _, m := range p.LegalMoves() {
		require.GreaterOrEqual(t, MoveHeuristic(p, m), 0)
	}
}

func TestRiskyMoves(t *testing.T) {
	p := NewPosition(Red).
		Put(sq("a1"), NewPiece(Red, Chariot)).
		Put(sq("c1"), NewPiece(Black, Chariot)).
		Put(sq("e1"), NewPiece(Red, Soldier)).
		Put(sq("g1"), NewPiece(Black, General)).
		Put(sq("a4"), NewPiece(Red, Horse)).
		Put(sq("c4"), NewPiece(Black, Cannon)).
		Put(sq("h4"), NewPiece(Red, Horse)).
		Put(sq("h2"), NewPiece(Black, Elephant))

	require.Equal(t, quietTable[Chariot], MoveHeuristic(p, NewMove(sq("a1"), sq("b1"))), "equal rank only trades")
	require.Equal(t, quietTable[Soldier], MoveHeuristic(p, NewMove(sq("e1"), sq("f1"))), "the general cannot take a soldier")
	require.Equal(t, quietTable[Horse], MoveHeuristic(p, NewMove(sq("a4"), sq("b4"))), "cannons are ignored")
	require.Equal(t, RiskyMoveScore, MoveHeuristic(p, NewMove(sq("h4"), sq("h3"))), "the elephant outranks the horse")
}
