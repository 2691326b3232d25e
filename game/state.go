package game

import (
	"errors"
	"fmt"
)

var (
	ErrBadRecord   = errors.New("malformed position record")
	ErrNotInPool   = errors.New("revealed piece is not in the hidden pool")
	ErrIllegalMove = errors.New("illegal move")
)

// Position is a Banqi position. It is a plain value: copying it copies the
// whole board, so Play never mutates the receiver.
type Position struct {
	Board [SquareNB]Piece
	Pool  [ColorNB][PieceTypeNB]int8 // Face-down pieces left per color and type
	Side  Color                      // Side to move
	Clock int                        // Plies since the last capture or flip
}

var _ State = (*Position)(nil)

// NewPosition returns an empty board with the given side to move.
func NewPosition(side Color) *Position {
	p := &Position{Side: side}
	for sq := range p.Board {
		p.Board[sq] = Empty
	}
	return p
}

// NewStartingPosition returns the opening layout: every square face down and
// the full force of both colors in the pool, red to move.
func NewStartingPosition() *Position {
	p := NewPosition(Red)
	for sq := range p.Board {
		p.Board[sq] = HiddenCell
	}
	for c := Red; c < ColorNB; c++ {
		p.Pool[c] = InitialCount
	}
	return p
}

// Put places a piece on a square, used when setting up positions.
func (p *Position) Put(sq Square, pc Piece) *Position {
	p.Board[sq] = pc
	return p
}

func (p *Position) Player() Color {
	return p.Side
}

func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// Count returns how many pieces a color still owns, face up or face down. With
// types given, only those piece types are counted.
func (p *Position) Count(c Color, types ...PieceType) int {
	if c != Red && c != Black {
		return 0
	}
	match := func(pt PieceType) bool {
		if len(types) == 0 {
			return true
		}
		for _, t := range types {
			if t == pt {
				return true
			}
		}
		return false
	}
	n := 0
	for _, pc := range p.Board {
		if pc.Revealed() && pc.Side == c && match(pc.Type) {
			n++
		}
	}
	for _, pt := range PieceTypes {
		if match(pt) {
			n += int(p.Pool[c][pt])
		}
	}
	return n
}

func (p *Position) HiddenSquares() int {
	n := 0
	for _, pc := range p.Board {
		if pc.Hidden {
			n++
		}
	}
	return n
}

func (p *Position) poolSize() int {
	n := 0
	for c := range p.Pool {
		for _, k := range p.Pool[c] {
			n += int(k)
		}
	}
	return n
}

// IsInitial reports whether this is the opening layout with nothing revealed.
func (p *Position) IsInitial() bool {
	return p.HiddenSquares() == SquareNB
}

// IsOpening reports whether at most the first flip has been played, which is
// the first position either color gets to move in.
func (p *Position) IsOpening() bool {
	return p.HiddenSquares() >= SquareNB-1 && p.Count(Red)+p.Count(Black) == SquareNB
}

func (p *Position) LegalMoves() []Move {
	moves := make([]Move, 0, 32)
	for sq := Square(0); sq < SquareNB; sq++ {
		pc := p.Board[sq]
		if pc.Hidden {
			moves = append(moves, NewFlip(sq))
			continue
		}
		if !pc.Revealed() || pc.Side != p.Side {
			continue
		}
		moves = p.appendPieceMoves(moves, sq, pc)
	}
	return moves
}

func (p *Position) appendPieceMoves(moves []Move, sq Square, pc Piece) []Move {
	for _, d := range Directions {
		to := sq.Step(d)
		if to == NoSquare {
			continue
		}
		target := p.Board[to]
		if target.IsEmpty() ||
			(target.Revealed() && target.Side != pc.Side && CanCapture(pc.Type, target.Type)) {
			moves = append(moves, NewMove(sq, to))
		}
	}
	if pc.Type == Cannon {
		for _, d := range Directions {
			if to := p.cannonTarget(sq, d, pc.Side); to != NoSquare {
				moves = append(moves, NewMove(sq, to))
			}
		}
	}
	return moves
}

// cannonTarget walks from sq over exactly one screen and returns the first
// occupied square behind it when that holds a revealed enemy piece.
func (p *Position) cannonTarget(sq Square, d Direction, side Color) Square {
	to := sq.Step(d)
	for to != NoSquare && p.Board[to].IsEmpty() {
		to = to.Step(d)
	}
	if to == NoSquare {
		return NoSquare
	}
	to = to.Step(d)
	for to != NoSquare && p.Board[to].IsEmpty() {
		to = to.Step(d)
	}
	if to == NoSquare {
		return NoSquare
	}
	if target := p.Board[to]; target.Revealed() && target.Side != side {
		return to
	}
	return NoSquare
}

func (p *Position) hasLegalMove() bool {
	for sq := Square(0); sq < SquareNB; sq++ {
		pc := p.Board[sq]
		if pc.Hidden {
			return true
		}
		if pc.Revealed() && pc.Side == p.Side && len(p.appendPieceMoves(nil, sq, pc)) > 0 {
			return true
		}
	}
	return false
}

// Winner returns NoColor while the game is in play. A color without pieces
// loses, so does the side to move without a legal move.
func (p *Position) Winner() Color {
	red, black := p.Count(Red), p.Count(Black)
	switch {
	case red == 0 && black == 0:
		return Draw
	case red == 0:
		return Black
	case black == 0:
		return Red
	}
	if !p.hasLegalMove() {
		return p.Side.Opponent()
	}
	if p.Clock >= DrawPlies {
		return Draw
	}
	return NoColor
}

func (p *Position) Play(m Move) State {
	return p.Apply(m)
}

// Apply plays a move and returns the resulting position. Flips are resolved
// by a deterministic draw from the pool keyed on the position hash, so the
// same position and move always produce the same child inside search.
func (p *Position) Apply(m Move) *Position {
	if m.IsFlip() {
		next, err := p.PlayReveal(m, p.drawHidden(m.From))
		if err != nil {
			panic(fmt.Sprintf("flip on %s: %v", m.From, err))
		}
		return next
	}
	next := *p
	mover := next.Board[m.From]
	captured := next.Board[m.To].Revealed()
	next.Board[m.To] = mover
	next.Board[m.From] = Empty
	next.Side = p.Side.Opponent()
	if captured {
		next.Clock = 0
	} else {
		next.Clock = p.Clock + 1
	}
	return &next
}

// PlayReveal turns over the hidden piece at m.From showing pc, which must be
// in the pool. The gamemaster uses it to resolve real flips.
func (p *Position) PlayReveal(m Move, pc Piece) (*Position, error) {
	if !m.IsFlip() || !p.Board[m.From].Hidden {
		return nil, fmt.Errorf("%w: %s is not a flip", ErrIllegalMove, m)
	}
	if pc.Side != Red && pc.Side != Black || pc.Type == NoPiece || p.Pool[pc.Side][pc.Type] == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotInPool, pc.Side, pc.Type)
	}
	next := *p
	next.Board[m.From] = pc
	next.Pool[pc.Side][pc.Type]--
	next.Side = p.Side.Opponent()
	next.Clock = 0
	return &next, nil
}

func (p *Position) drawHidden(sq Square) Piece {
	total := p.poolSize()
	if total == 0 {
		return Empty
	}
	k := int(mix64(uint64(p.Hash())^uint64(sq+1)) % uint64(total))
	return p.PoolPiece(k)
}

// PoolPiece returns the k-th face-down piece counting through the pool in
// color then type order.
func (p *Position) PoolPiece(k int) Piece {
	for c := Red; c < ColorNB; c++ {
		for _, pt := range PieceTypes {
			n := int(p.Pool[c][pt])
			if k < n {
				return NewPiece(c, pt)
			}
			k -= n
		}
	}
	return Empty
}

// PoolSize is the number of face-down pieces left.
func (p *Position) PoolSize() int {
	return p.poolSize()
}

// IsLegal reports whether m is among the legal moves of the position.
func (p *Position) IsLegal(m Move) bool {
	for _, lm := range p.LegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}

func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
