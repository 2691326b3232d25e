package searcher

import "banqi/game"

// ShouldUseExactSearch reports whether one side's material, revealed or still
// in the pool, can win every remaining enemy piece by rank. Cannons never
// count as a dominating force and any defending cannon keeps the position
// open since it can strike from range.
func ShouldUseExactSearch(p *game.Position) bool {
	return dominates(p, game.Red, game.Black) || dominates(p, game.Black, game.Red)
}

func dominates(p *game.Position, attacker, defender game.Color) bool {
	if p.Count(attacker) == 0 || p.Count(defender) == 0 {
		return false
	}
	if p.Count(defender, game.Cannon) > 0 {
		return false
	}
	for _, victim := range game.PieceTypes {
		if p.Count(defender, victim) == 0 {
			continue
		}
		covered := false
		for _, hunter := range game.PieceTypes {
			if hunter != game.Cannon && p.Count(attacker, hunter) > 0 && game.CanCapture(hunter, victim) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
