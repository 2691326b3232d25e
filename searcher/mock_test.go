package searcher

import (
	"golang.org/x/exp/rand"

	"banqi/game"
)

// mockNode is a hand-built game tree. Moves default to {0, i} for the i-th
// child unless listed explicitly.
type mockNode struct {
	id       int
	children []*mockNode
	moves    []game.Move
	value    int // Static value for the side to move
	over     bool
	winner   game.Color // Meaningful only when over
}

type mockState struct {
	node   *mockNode
	player game.Color
}

var _ game.State = mockState{}

func newMockState(root *mockNode) mockState {
	return mockState{node: root, player: game.Red}
}

func (s mockState) Player() game.Color {
	return s.player
}

func (s mockState) LegalMoves() []game.Move {
	if s.node.over {
		return nil
	}
	moves := make([]game.Move, len(s.node.children))
	for i := range s.node.children {
		if s.node.moves != nil {
			moves[i] = s.node.moves[i]
		} else {
			moves[i] = game.NewMove(0, game.Square(i))
		}
	}
	return moves
}

func (s mockState) Play(m game.Move) game.State {
	for i, move := range s.LegalMoves() {
		if move == m {
			return mockState{node: s.node.children[i], player: s.player.Opponent()}
		}
	}
	panic("illegal mock move " + m.String())
}

func (s mockState) Hash() game.StateHash {
	return game.StateHash(s.node.id)
}

func (s mockState) Winner() game.Color {
	if !s.node.over {
		return game.NoColor
	}
	return s.node.winner
}

func mockEvaluate(s game.State, perspective game.Color) int {
	ms := s.(mockState)
	if ms.player == perspective {
		return ms.node.value
	}
	return -ms.node.value
}

func mockHeuristic(game.State, game.Move) int { return 1 }

func mockMaterial(game.State, game.Color) int { return 0 }

// buildTree returns a uniform tree whose nodes carry random static values.
func buildTree(rng *rand.Rand, depth, branching int) *mockNode {
	next := 0
	var build func(depth int) *mockNode
	build = func(depth int) *mockNode {
		n := &mockNode{id: next, value: rng.Intn(201) - 100}
		next++
		if depth == 0 {
			return n
		}
		for i := 0; i < branching; i++ {
			n.children = append(n.children, build(depth-1))
		}
		return n
	}
	return build(depth)
}

// minimax is the plain reference search over a mock tree.
func minimax(s mockState, depth int) int {
	if depth == 0 || len(s.node.children) == 0 {
		return mockEvaluate(s, s.player)
	}
	best := -1 << 30
	for _, move := range s.LegalMoves() {
		if v := -minimax(s.Play(move).(mockState), depth-1); v > best {
			best = v
		}
	}
	return best
}

func leaf(id int, winner game.Color) *mockNode {
	return &mockNode{id: id, over: true, winner: winner}
}
