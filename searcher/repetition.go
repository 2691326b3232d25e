package searcher

import "banqi/game"

type visit struct {
	epoch int
	count int
}

// RepetitionGuard counts how often each position was reached within the
// current game. Starting a new epoch invalidates all counts without clearing
// the table.
type RepetitionGuard struct {
	epoch int
	seen  map[game.StateHash]visit
}

func NewRepetitionGuard() *RepetitionGuard {
	return &RepetitionGuard{seen: make(map[game.StateHash]visit)}
}

func (g *RepetitionGuard) NewEpoch() {
	g.epoch++
}

func (g *RepetitionGuard) Epoch() int {
	return g.epoch
}

// Record counts one more visit of hash and returns the new count.
func (g *RepetitionGuard) Record(hash game.StateHash) int {
	v := g.seen[hash]
	if v.epoch != g.epoch {
		v = visit{epoch: g.epoch}
	}
	v.count++
	g.seen[hash] = v
	return v.count
}

func (g *RepetitionGuard) Seen(hash game.StateHash) int {
	v, ok := g.seen[hash]
	if !ok || v.epoch != g.epoch {
		return 0
	}
	return v.count
}

// ShouldAvoid reports whether steering into hash repeats a position seen
// twice already while the mover is ahead.
func (g *RepetitionGuard) ShouldAvoid(hash game.StateHash, eval int) bool {
	return g.Seen(hash) >= 2 && eval > 0
}
