package experiments

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"banqi/agent"
	"banqi/communication/client"
	"banqi/engine"
	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/meta"
	"banqi/player"
)

const (
	KindWakasagi = "wakasagi"
	KindRandom   = "random"
	KindGreedy   = "greedy"
	KindRemote   = "remote"
)

// Remote agents get this much on top of the move budget for the round trip.
const remoteSlack = 2 * time.Second

// NewAgent builds a fresh agent for one game.
func NewAgent(config metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	switch config.Kind {
	case KindWakasagi, "":
		params := meta.Default()
		if config.Config != "" {
			var err error
			params, err = meta.Load(config.Config)
			if err != nil {
				return nil, err
			}
		}
		if config.MoveBudget > 0 {
			params.MoveBudget = config.MoveBudget
		}
		params.Seed = seed
		return agent.NewWakasagi(params), nil
	case KindRandom:
		return player.NewRandom(seed), nil
	case KindGreedy:
		return player.NewGreedy(seed), nil
	case KindRemote:
		if config.URL == "" {
			return nil, fmt.Errorf("agent %q: remote agent without url", config.Name)
		}
		return client.NewRemoteAgent(config.URL, config.MoveBudget+remoteSlack), nil
	}
	return nil, fmt.Errorf("agent %q: unknown kind %q", config.Name, config.Kind)
}

type ShowdownOption func(s *Showdown)

// Showdown plays a series of games between two agent configurations,
// swapping colors every game.
type Showdown struct {
	agents      [2]metrics.AgentConfig
	games       int
	concurrency int
	seed        uint64
	maxTurns    int
	out         *termenv.Output
	recordDir   string
}

func WithGames(n int) ShowdownOption {
	return func(s *Showdown) {
		if n > 0 {
			s.games = n
		}
	}
}

func WithConcurrency(n int) ShowdownOption {
	return func(s *Showdown) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithSeed(seed uint64) ShowdownOption {
	return func(s *Showdown) {
		s.seed = seed
	}
}

func WithTurnLimit(turns int) ShowdownOption {
	return func(s *Showdown) {
		if turns > 0 {
			s.maxTurns = turns
		}
	}
}

func WithOutput(w io.Writer) ShowdownOption {
	return func(s *Showdown) {
		if w != nil {
			s.out = termenv.NewOutput(w)
		}
	}
}

// WithRecords stores agent configs, games and moves under dir once the
// showdown completes.
func WithRecords(dir string) ShowdownOption {
	return func(s *Showdown) {
		s.recordDir = dir
	}
}

func NewShowdown(first, second metrics.AgentConfig, options ...ShowdownOption) *Showdown {
	s := &Showdown{
		agents:      [2]metrics.AgentConfig{first, second},
		games:       10,
		concurrency: meta.GO_ROUTINES,
		seed:        1,
		maxTurns:    meta.MAX_TURNS,
		out:         termenv.NewOutput(io.Discard),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Result is the outcome of one showdown game from the point of view of the
// two configurations.
type Result struct {
	Game   int
	Red    int // index into the showdown agents
	Winner game.Color
	Points [2]float64
	Metric metrics.GameMetric
	Moves  []metrics.MoveMetric
}

type Tally struct {
	Games  int
	Wins   [2]int
	Draws  int
	Points [2]float64
}

func (s *Showdown) Run(ctx context.Context) (Tally, []Result, error) {
	results := make([]Result, s.games)
	var printMu sync.Mutex

	log.Info().Msgf("showdown: %d games of %s vs %s", s.games, s.agents[0].Name, s.agents[1].Name)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := 0; i < s.games; i++ {
		i := i
		g.Go(func() error {
			result, err := s.play(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result

			printMu.Lock()
			defer printMu.Unlock()
			s.printResult(result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, nil, err
	}

	tally := tallyResults(results)
	s.printTally(tally)

	if s.recordDir != "" {
		if err := s.writeRecords(results); err != nil {
			return tally, results, err
		}
	}
	return tally, results, nil
}

func (s *Showdown) play(ctx context.Context, i int) (Result, error) {
	red := i % 2
	black := 1 - red
	seed := s.seed + uint64(i)

	redAgent, err := NewAgent(s.agents[red], seed)
	if err != nil {
		return Result{}, err
	}
	blackAgent, err := NewAgent(s.agents[black], seed+uint64(s.games))
	if err != nil {
		return Result{}, err
	}

	e := engine.NewLocalEngine(redAgent, blackAgent, seed,
		engine.WithMaxTurns(s.maxTurns),
		engine.WithContext(ctx),
	)
	winner, gameMetric, moves, err := e.Run()
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Game:   i + 1,
		Red:    red,
		Winner: winner,
		Metric: gameMetric,
		Moves:  moves,
	}
	switch winner {
	case game.Red:
		result.Points[red] = 1
	case game.Black:
		result.Points[black] = 1
	default:
		result.Points = [2]float64{0.5, 0.5}
	}
	return result, nil
}

func tallyResults(results []Result) Tally {
	tally := Tally{Games: len(results)}
	for side := 0; side < 2; side++ {
		tally.Wins[side] = lo.CountBy(results, func(r Result) bool {
			return r.Points[side] == 1
		})
		tally.Points[side] = lo.SumBy(results, func(r Result) float64 {
			return r.Points[side]
		})
	}
	tally.Draws = tally.Games - tally.Wins[0] - tally.Wins[1]
	return tally
}

func (s *Showdown) printResult(r Result) {
	red, black := s.agents[r.Red].Name, s.agents[1-r.Red].Name
	var outcome termenv.Style
	switch r.Winner {
	case game.Red:
		outcome = s.out.String(fmt.Sprintf("%s wins", red)).Foreground(termenv.ANSIRed).Bold()
	case game.Black:
		outcome = s.out.String(fmt.Sprintf("%s wins", black)).Foreground(termenv.ANSIBrightBlack).Bold()
	default:
		outcome = s.out.String("draw").Foreground(termenv.ANSIYellow)
	}
	fmt.Fprintf(s.out, "game %3d  %s (red) vs %s (black)  %s in %d moves\n",
		r.Game, red, black, outcome, r.Metric.TotalMoves)
}

func (s *Showdown) printTally(t Tally) {
	header := s.out.String("result").Bold()
	fmt.Fprintf(s.out, "%s  %s %.1f - %.1f %s  (%d wins, %d losses, %d draws)\n",
		header, s.agents[0].Name, t.Points[0], t.Points[1], s.agents[1].Name,
		t.Wins[0], t.Wins[1], t.Draws)
}

func (s *Showdown) writeRecords(results []Result) error {
	writer, err := metrics.NewWriter(s.recordDir, "showdown")
	if err != nil {
		return err
	}

	agentIDs := lo.Map(s.agents[:], func(c metrics.AgentConfig, _ int) int { return c.ID })
	games := lo.Map(results, func(r Result, _ int) metrics.GameRecord {
		return metrics.GameRecord{
			ID:         r.Game,
			Agent1:     agentIDs[r.Red],
			Agent2:     agentIDs[1-r.Red],
			GameMetric: r.Metric,
		}
	})
	moves := lo.FlatMap(results, func(r Result, _ int) []metrics.MoveRecord {
		return lo.Map(r.Moves, func(m metrics.MoveMetric, _ int) metrics.MoveRecord {
			return metrics.MoveRecord{Game: r.Game, MoveMetric: m}
		})
	})

	if err := writer.WriteAgentConfigs(s.agents[:]); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return err
	}
	if err := writer.WriteParquet(games, moves); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored showdown records")
	return nil
}
