package game

import (
	"fmt"
	"strings"
)

// Move is a from/to transition. A move whose From equals To turns over the
// hidden piece on that square.
type Move struct {
	From Square
	To   Square
}

var NoMove = Move{From: NoSquare, To: NoSquare}

func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

func NewFlip(sq Square) Move {
	return Move{From: sq, To: sq}
}

func (m Move) IsFlip() bool {
	return m.From == m.To && m.From != NoSquare
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	if m.IsFlip() {
		return m.From.String()
	}
	return m.From.String() + "-" + m.To.String()
}

// ParseMove reads "a1-a2" for a step or capture and "a1" for a flip.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if from, to, ok := strings.Cut(s, "-"); ok {
		f, err := ParseSquare(from)
		if err != nil {
			return NoMove, err
		}
		t, err := ParseSquare(to)
		if err != nil {
			return NoMove, err
		}
		if f == t {
			return NoMove, fmt.Errorf("%w: move %q", ErrBadRecord, s)
		}
		return NewMove(f, t), nil
	}
	sq, err := ParseSquare(s)
	if err != nil {
		return NoMove, err
	}
	return NewFlip(sq), nil
}
