package searcher

import "banqi/game"

// Rewards of a finished simulation, from the perspective of the side to move
// at the simulated node
const WIN = 1.0
const LOSS = -WIN
const DRAW = 0.0

// step is one ply of a simulation trajectory. AMAF credit matches both the
// move and the color that played it.
type step struct {
	move  game.Move
	mover game.Color
}

// PieceBalance is the default material tie-break for simulation outcomes: the
// difference in remaining piece counts.
func PieceBalance(s game.State, perspective game.Color) int {
	p, ok := s.(*game.Position)
	if !ok {
		panic("unexpected state type")
	}
	return p.Count(perspective) - p.Count(perspective.Opponent())
}
