package game

// DrawPlies is the number of consecutive plies without a capture or a flip
// after which the game is drawn.
const DrawPlies = 50

// CanCapture applies the rank rule for an adjacent capture. The General may
// not take a Soldier while the Soldier may take the General, a Cannon never
// captures adjacently.
func CanCapture(attacker, victim PieceType) bool {
	switch attacker {
	case NoPiece, Cannon:
		return false
	case Soldier:
		return victim == Soldier || victim == General
	case General:
		return victim != Soldier && victim != NoPiece
	}
	return victim != NoPiece && attacker >= victim
}

// Dominates reports whether attacker can eventually take victim by rank alone,
// with the Cannon's jump capture counting against every target.
func Dominates(attacker, victim PieceType) bool {
	if attacker == Cannon {
		return victim != NoPiece
	}
	return CanCapture(attacker, victim)
}
