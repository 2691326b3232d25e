package game

import "golang.org/x/exp/rand"

const zobristSeed = 42

var (
	zobristPiece  [ColorNB][PieceTypeNB][SquareNB]uint64
	zobristHidden [SquareNB]uint64
	zobristSide   uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	for c := range zobristPiece {
		for pt := range zobristPiece[c] {
			for sq := range zobristPiece[c][pt] {
				zobristPiece[c][pt][sq] = rng.Uint64()
			}
		}
	}
	for sq := range zobristHidden {
		zobristHidden[sq] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// Hash XORs together the keys of every occupied square and the side to move.
func (p *Position) Hash() StateHash {
	var h uint64
	for sq, pc := range p.Board {
		switch {
		case pc.Hidden:
			h ^= zobristHidden[sq]
		case pc.Revealed():
			h ^= zobristPiece[pc.Side][pc.Type][sq]
		}
	}
	if p.Side == Black {
		h ^= zobristSide
	}
	return StateHash(h)
}
