package game

// PieceValue is the material weight of each piece type.
var PieceValue = [PieceTypeNB]int{
	Soldier:  10,
	Cannon:   45,
	Horse:    25,
	Chariot:  35,
	Elephant: 60,
	Advisor:  90,
	General:  150,
}

// captureTable scores a capture by attacker (row) and victim (column). Zero
// entries are captures the rank rule forbids.
var captureTable = [PieceTypeNB][PieceTypeNB]int{
	//        -  P    C    H    R    E    A    K
	Soldier:  {0, 60, 0, 0, 0, 0, 0, 900},
	Cannon:   {0, 55, 270, 150, 210, 360, 540, 890},
	Horse:    {0, 58, 268, 148, 0, 0, 0, 0},
	Chariot:  {0, 57, 267, 147, 208, 0, 0, 0},
	Elephant: {0, 56, 265, 146, 207, 358, 0, 0},
	Advisor:  {0, 54, 263, 144, 205, 356, 538, 0},
	General:  {0, 0, 260, 140, 200, 350, 535, 880},
}

// quietTable scores a non-capturing step by the moving piece.
var quietTable = [PieceTypeNB]int{
	Soldier:  6,
	Cannon:   8,
	Horse:    6,
	Chariot:  6,
	Elephant: 5,
	Advisor:  4,
	General:  3,
}

const (
	RiskyMoveScore = 1
	FlipScore      = 8
)

func asPosition(s State) *Position {
	p, ok := s.(*Position)
	if !ok {
		panic("unexpected state type")
	}
	return p
}

// MaterialBalance sums the weights of revealed pieces, own positive and the
// opponent's negative.
func MaterialBalance(s State, perspective Color) int {
	p := asPosition(s)
	score := 0
	for _, pc := range p.Board {
		if !pc.Revealed() {
			continue
		}
		if pc.Side == perspective {
			score += PieceValue[pc.Type]
		} else {
			score -= PieceValue[pc.Type]
		}
	}
	return score
}

// Score is the static evaluation: material plus a proximity term rewarding
// closeness to an enemy piece that one of our pieces could win by rank.
func Score(s State, perspective Color) int {
	p := asPosition(s)
	score := MaterialBalance(p, perspective)

	minDist := -1
	for target, victim := range p.Board {
		if !victim.Revealed() || victim.Side == perspective {
			continue
		}
		for from, hunter := range p.Board {
			if !hunter.Revealed() || hunter.Side != perspective || !Dominates(hunter.Type, victim.Type) {
				continue
			}
			if d := Distance(Square(from), Square(target)); minDist < 0 || d < minDist {
				minDist = d
			}
		}
	}
	if minDist > 0 {
		score -= minDist
	}
	return score
}

// MoveHeuristic orders moves for alpha-beta and weights the rollout policy.
func MoveHeuristic(s State, m Move) int {
	p := asPosition(s)
	if m.IsFlip() {
		return FlipScore
	}
	attacker := p.Board[m.From]
	victim := p.Board[m.To]
	if victim.Revealed() {
		return captureTable[attacker.Type][victim.Type]
	}
	if isRisky(p, m, attacker) {
		return RiskyMoveScore
	}
	return quietTable[attacker.Type]
}

// isRisky reports whether a higher-ranked non-cannon enemy next to the
// destination could take the moving piece straight back. Equal ranks trade
// and do not count.
func isRisky(p *Position, m Move, mover Piece) bool {
	for _, adj := range neighbours[m.To] {
		enemy := p.Board[adj]
		if !enemy.Revealed() || enemy.Side == mover.Side || enemy.Type == Cannon {
			continue
		}
		if enemy.Type > mover.Type && CanCapture(enemy.Type, mover.Type) {
			return true
		}
	}
	return false
}
