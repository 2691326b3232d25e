package gamemaster

import (
	"errors"

	"banqi/game"
)

var ErrGameOver = errors.New("game is over")

// UpdateGetter returns the next played move and the position after it, or
// NoMove and nil when nothing new was played. After the final update the
// feed reports game.NoMove with the final position forever.
type UpdateGetter func() (game.Move, *game.Position)

// Referee owns the authoritative position of one game.
type Referee interface {
	Init() (*game.Position, UpdateGetter)
	Play(game.Move) error
	Position() *game.Position
	Winner() game.Color
}
