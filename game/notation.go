package game

import (
	"fmt"
	"strconv"
	"strings"
)

// StartingRecord is the opening layout: all 32 pieces face down, red to move.
const StartingRecord = "XXXXXXXX/XXXXXXXX/XXXXXXXX/XXXXXXXX r KAAEERRHHCCPPPPPkaaeerrhhccppppp 0"

var pieceLetters = [PieceTypeNB]byte{
	Soldier:  'p',
	Cannon:   'c',
	Horse:    'h',
	Chariot:  'r',
	Elephant: 'e',
	Advisor:  'a',
	General:  'k',
}

func pieceFromLetter(ch byte) (Piece, bool) {
	side := Black
	lower := ch
	if ch >= 'A' && ch <= 'Z' {
		side = Red
		lower = ch - 'A' + 'a'
	}
	for pt, l := range pieceLetters {
		if l != 0 && l == lower {
			return NewPiece(side, PieceType(pt)), true
		}
	}
	return Empty, false
}

func (pc Piece) Letter() byte {
	switch {
	case pc.Hidden:
		return 'X'
	case !pc.Revealed():
		return '.'
	}
	l := pieceLetters[pc.Type]
	if pc.Side == Red {
		l = l - 'a' + 'A'
	}
	return l
}

// ParsePosition reads a record "<board> <side> <pool> <clock>". The board lists
// rank 4 first, eight cells per rank separated by '/', digits for runs of
// empty squares and 'X' for a face-down piece. The pool is '-' or the letters
// of the face-down pieces. The clock may be omitted.
func ParsePosition(record string) (*Position, error) {
	fields := strings.Fields(record)
	if len(fields) < 3 || len(fields) > 4 {
		return nil, fmt.Errorf("%w: want 3 or 4 fields, got %d", ErrBadRecord, len(fields))
	}

	p := NewPosition(Red)
	rows := strings.Split(fields[0], "/")
	if len(rows) != RankNB {
		return nil, fmt.Errorf("%w: want %d ranks, got %d", ErrBadRecord, RankNB, len(rows))
	}
	for i, row := range rows {
		rank := RankNB - 1 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			switch {
			case ch >= '1' && ch <= '8':
				file += int(ch - '0')
			case ch == 'X':
				if file < FileNB {
					p.Board[NewSquare(file, rank)] = HiddenCell
				}
				file++
			default:
				pc, ok := pieceFromLetter(ch)
				if !ok {
					return nil, fmt.Errorf("%w: unknown piece %q", ErrBadRecord, ch)
				}
				if file < FileNB {
					p.Board[NewSquare(file, rank)] = pc
				}
				file++
			}
		}
		if file != FileNB {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrBadRecord, rank+1, file)
		}
	}

	switch fields[1] {
	case "r", "w":
		p.Side = Red
	case "b":
		p.Side = Black
	default:
		return nil, fmt.Errorf("%w: side %q", ErrBadRecord, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			pc, ok := pieceFromLetter(fields[2][i])
			if !ok {
				return nil, fmt.Errorf("%w: unknown pool piece %q", ErrBadRecord, fields[2][i])
			}
			p.Pool[pc.Side][pc.Type]++
		}
	}
	if hidden, pooled := p.HiddenSquares(), p.poolSize(); hidden != pooled {
		return nil, fmt.Errorf("%w: %d face-down squares but %d pooled pieces", ErrBadRecord, hidden, pooled)
	}

	if len(fields) == 4 {
		clock, err := strconv.Atoi(fields[3])
		if err != nil || clock < 0 {
			return nil, fmt.Errorf("%w: clock %q", ErrBadRecord, fields[3])
		}
		p.Clock = clock
	}
	return p, nil
}

// Record formats the position in the form read by ParsePosition.
func (p *Position) Record() string {
	var sb strings.Builder
	for rank := RankNB - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < FileNB; file++ {
			pc := p.Board[NewSquare(file, rank)]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.Side == Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" r ")
	}

	pool := 0
	for c := Red; c < ColorNB; c++ {
		for _, pt := range [...]PieceType{General, Advisor, Elephant, Chariot, Horse, Cannon, Soldier} {
			for k := int8(0); k < p.Pool[c][pt]; k++ {
				sb.WriteByte(NewPiece(c, pt).Letter())
				pool++
			}
		}
	}
	if pool == 0 {
		sb.WriteByte('-')
	}
	sb.WriteString(" " + strconv.Itoa(p.Clock))
	return sb.String()
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := RankNB - 1; rank >= 0; rank-- {
		sb.WriteString(strconv.Itoa(rank + 1))
		sb.WriteByte(' ')
		for file := 0; file < FileNB; file++ {
			sb.WriteByte(p.Board[NewSquare(file, rank)].Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}
