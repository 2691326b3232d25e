package gamemaster

import (
	"fmt"

	"golang.org/x/exp/rand"

	"banqi/game"
)

type update struct {
	move     game.Move
	position *game.Position
}

// LocalReferee resolves flips with a real random draw from the pool, unlike
// search which reveals deterministically.
type LocalReferee struct {
	position *game.Position
	rng      *rand.Rand
	updateCh chan update
	final    *game.Position
	gameOver bool
}

var _ Referee = (*LocalReferee)(nil)

func NewLocalReferee(seed uint64) *LocalReferee {
	return &LocalReferee{rng: rand.New(rand.NewSource(seed))}
}

func (r *LocalReferee) Init() (*game.Position, UpdateGetter) {
	return r.InitFrom(game.NewStartingPosition())
}

// InitFrom starts the game from an arbitrary position.
func (r *LocalReferee) InitFrom(start *game.Position) (*game.Position, UpdateGetter) {
	r.position = start
	r.final = nil
	r.gameOver = start.Winner() != game.NoColor
	r.updateCh = make(chan update, game.DrawPlies*2)
	return r.position, func() (game.Move, *game.Position) {
		select {
		case u, ok := <-r.updateCh:
			if !ok { // Game over
				return game.NoMove, r.final
			}
			return u.move, u.position
		default:
			return game.NoMove, nil
		}
	}
}

func (r *LocalReferee) Position() *game.Position {
	return r.position
}

func (r *LocalReferee) Winner() game.Color {
	return r.position.Winner()
}

func (r *LocalReferee) Play(move game.Move) error {
	if r.gameOver {
		return ErrGameOver
	}
	if !r.position.IsLegal(move) {
		return fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
	}

	next, err := r.resolve(move)
	if err != nil {
		return err
	}
	r.position = next

	r.push(update{move: move, position: next})
	if next.Winner() != game.NoColor {
		r.gameOver = true
		r.final = next
		close(r.updateCh)
	}
	return nil
}

func (r *LocalReferee) resolve(move game.Move) (*game.Position, error) {
	if !move.IsFlip() {
		return r.position.Apply(move), nil
	}
	revealed := r.position.PoolPiece(r.rng.Intn(r.position.PoolSize()))
	return r.position.PlayReveal(move, revealed)
}

// push drops the oldest update when nobody reads the feed.
func (r *LocalReferee) push(u update) {
	for {
		select {
		case r.updateCh <- u:
			return
		default:
			select {
			case <-r.updateCh:
			default:
			}
		}
	}
}
