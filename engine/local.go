package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"banqi/agent"
	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/gamemaster"
	"banqi/meta"
)

type Option func(e *LocalEngine)

// LocalEngine drives two agents through a referee in one process. Agents[0]
// plays red, which always moves first.
type LocalEngine struct {
	Agents   [game.ColorNB]agent.Agent
	referee  *gamemaster.LocalReferee
	start    *game.Position
	maxTurns int
	ctx      context.Context
}

var _ Engine = (*LocalEngine)(nil)

func WithMaxTurns(turns int) Option {
	return func(e *LocalEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithStart(position *game.Position) Option {
	return func(e *LocalEngine) {
		if position != nil {
			e.start = position
		}
	}
}

func WithContext(ctx context.Context) Option {
	return func(e *LocalEngine) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

func NewLocalEngine(red, black agent.Agent, seed uint64, options ...Option) *LocalEngine {
	e := &LocalEngine{
		Agents:   [game.ColorNB]agent.Agent{red, black},
		referee:  gamemaster.NewLocalReferee(seed),
		start:    game.NewStartingPosition(),
		maxTurns: meta.MAX_TURNS,
		ctx:      context.Background(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run returns NoColor when the turn cap stops the game.
func (e *LocalEngine) Run() (game.Color, metrics.GameMetric, []metrics.MoveMetric, error) {
	position, updates := e.referee.InitFrom(e.start)
	gameMetric := metrics.GameMetric{
		StartingPlayer: position.Player().String(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("%s is starting", position.Player())

	var moveMetrics []metrics.MoveMetric
	turn := 1
	for e.referee.Winner() == game.NoColor && turn <= e.maxTurns {
		if err := e.ctx.Err(); err != nil {
			return game.NoColor, gameMetric, moveMetrics, err
		}
		player := position.Player()

		move, searchMetric, err := e.Agents[player].FindMove(e.ctx, position)
		if err != nil {
			return game.NoColor, gameMetric, moveMetrics, fmt.Errorf("%s at turn %d: %w", player, turn, err)
		}
		if err := e.referee.Play(move); err != nil {
			return game.NoColor, gameMetric, moveMetrics, fmt.Errorf("%s at turn %d: %w", player, turn, err)
		}
		played, next := updates()
		if next == nil {
			return game.NoColor, gameMetric, moveMetrics, fmt.Errorf("%s at turn %d: referee published no update", player, turn)
		}
		position = next
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player.String(),
			Move:         played.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("turn %d: %s played %s", turn, player, played)
		turn++
	}

	winner := e.referee.Winner()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = winner.String()
	if winner == game.NoColor {
		log.Info().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	} else {
		log.Info().Msgf("game ended with winner: %s", winner)
	}
	return winner, gameMetric, moveMetrics, nil
}
