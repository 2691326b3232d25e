package game

type Color int8

const (
	Red Color = iota
	Black
	NoColor
	Draw
)

const ColorNB = 2

func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	}
	return c
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	case Draw:
		return "draw"
	}
	return "none"
}

// PieceType is ordered by capture rank, Soldier lowest and General highest.
type PieceType int8

const (
	NoPiece PieceType = iota
	Soldier
	Cannon
	Horse
	Chariot
	Elephant
	Advisor
	General
	PieceTypeNB
)

var PieceTypes = [...]PieceType{Soldier, Cannon, Horse, Chariot, Elephant, Advisor, General}

// InitialCount is the number of pieces of each type a color starts with.
var InitialCount = [PieceTypeNB]int8{
	Soldier:  5,
	Cannon:   2,
	Horse:    2,
	Chariot:  2,
	Elephant: 2,
	Advisor:  2,
	General:  1,
}

func (pt PieceType) String() string {
	return [...]string{"none", "soldier", "cannon", "horse", "chariot", "elephant", "advisor", "general"}[pt]
}

// Piece is what sits on a square. An empty square has Type NoPiece, a face-down
// piece has Hidden set and no known color or type.
type Piece struct {
	Side   Color
	Type   PieceType
	Hidden bool
}

var (
	Empty      = Piece{Side: NoColor, Type: NoPiece}
	HiddenCell = Piece{Side: NoColor, Type: NoPiece, Hidden: true}
)

func NewPiece(c Color, pt PieceType) Piece {
	return Piece{Side: c, Type: pt}
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece && !p.Hidden
}

// Revealed reports whether the square holds a face-up piece.
func (p Piece) Revealed() bool {
	return p.Type != NoPiece
}

func (p Piece) Occupied() bool {
	return !p.IsEmpty()
}
