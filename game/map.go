package game

import (
	"fmt"

	"banqi/utils"
)

const (
	FileNB   = 8
	RankNB   = 4
	SquareNB = FileNB * RankNB
)

// Square indexes the 8x4 board as rank*FileNB + file, a1 = 0, h4 = 31.
type Square int8

const NoSquare Square = -1

type Direction int8

const (
	North Direction = iota
	South
	East
	West
)

var Directions = [4]Direction{North, South, East, West}

func NewSquare(file, rank int) Square {
	return Square(rank*FileNB + file)
}

func (sq Square) File() int { return int(sq) % FileNB }
func (sq Square) Rank() int { return int(sq) / FileNB }

func (sq Square) Valid() bool {
	return sq >= 0 && sq < SquareNB
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// ParseSquare reads squares in the "a1".."h4" form.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: square %q", ErrBadRecord, s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file >= FileNB || rank < 0 || rank >= RankNB {
		return NoSquare, fmt.Errorf("%w: square %q", ErrBadRecord, s)
	}
	return NewSquare(file, rank), nil
}

// Step returns the neighbouring square in the given direction, or NoSquare
// when it falls off the board.
func (sq Square) Step(d Direction) Square {
	file, rank := sq.File(), sq.Rank()
	switch d {
	case North:
		rank++
	case South:
		rank--
	case East:
		file++
	case West:
		file--
	}
	if file < 0 || file >= FileNB || rank < 0 || rank >= RankNB {
		return NoSquare
	}
	return NewSquare(file, rank)
}

// Distance is the Manhattan distance between two squares.
func Distance(a, b Square) int {
	return squareDistance[a][b]
}

var (
	squareDistance [SquareNB][SquareNB]int
	neighbours     [SquareNB][]Square
)

func init() {
	for a := Square(0); a < SquareNB; a++ {
		for b := Square(0); b < SquareNB; b++ {
			squareDistance[a][b] = utils.Abs(a.File()-b.File()) + utils.Abs(a.Rank()-b.Rank())
		}
		for _, d := range Directions {
			if n := a.Step(d); n != NoSquare {
				neighbours[a] = append(neighbours[a], n)
			}
		}
	}
}
