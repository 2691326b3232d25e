package game

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Color
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() Color
}

// Evaluate scores a state from the perspective of the given color, positive
// values favoring that color.
type Evaluate func(s State, perspective Color) int

// Heuristic scores a move in a state for move ordering and rollout weighting.
// Higher is more attractive, scores are never negative.
type Heuristic func(s State, m Move) int

// Outcome maps a winner to +1/0/-1 from the perspective of the given color.
// NoColor (game not over) maps to 0 as well.
func Outcome(winner, perspective Color) int {
	switch winner {
	case perspective:
		return 1
	case perspective.Opponent():
		return -1
	}
	return 0
}
