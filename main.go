package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"banqi/agent"
	"banqi/communication/server"
	"banqi/experiments"
	"banqi/experiments/metrics"
	"banqi/game"
	"banqi/meta"
)

func main() {
	mode := flag.String("mode", "play", "play, serve, showdown or bench")
	configPath := flag.String("config", "", "YAML parameter file")
	logLevel := flag.String("log-level", "info", "zerolog level")
	profileMode := flag.String("profile", "", "cpu or mem")
	addr := flag.String("addr", ":8080", "listen address for serve")
	budget := flag.Duration("budget", 0, "move budget, overrides the config")
	seed := flag.Uint64("seed", 0, "random seed, overrides the config")

	games := flag.Int("games", 10, "showdown games")
	jobs := flag.Int("j", meta.GO_ROUTINES, "concurrent showdown games")
	opponent := flag.String("opponent", experiments.KindGreedy, "showdown opponent: wakasagi, random, greedy or remote")
	opponentURL := flag.String("opponent-url", "", "agent server for a remote opponent")
	opponentConfig := flag.String("opponent-config", "", "YAML parameter file for a wakasagi opponent")
	records := flag.String("records", "", "directory for showdown records")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("bad log level")
	}
	zerolog.SetGlobalLevel(level)

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	params := meta.Default()
	if *configPath != "" {
		params, err = meta.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *budget > 0 {
		params.MoveBudget = *budget
	}
	if *seed != 0 {
		params.Seed = *seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "play":
		err = playLoop(ctx, agent.NewWakasagi(params), os.Stdin, os.Stdout)
	case "serve":
		log.Info().Str("addr", *addr).Msg("serving agent")
		err = server.NewServer(agent.NewWakasagi(params)).ListenAndServe(ctx, *addr)
	case "showdown":
		err = showdown(ctx, params, *configPath, metrics.AgentConfig{
			ID:         2,
			Name:       *opponent,
			Kind:       *opponent,
			URL:        *opponentURL,
			MoveBudget: params.MoveBudget,
			Config:     *opponentConfig,
		}, *games, *jobs, *records)
	case "bench":
		err = bench(params)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

// playLoop reads one position record per line and answers with one move per
// line. Positions without a legal move are answered with the null move.
func playLoop(ctx context.Context, a agent.Agent, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		position, err := game.ParsePosition(line)
		if err != nil {
			log.Warn().Err(err).Msg("skipping record")
			continue
		}

		move, _, err := a.FindMove(ctx, position)
		if err != nil && !errors.Is(err, agent.ErrNoLegalMoves) {
			return err
		}
		fmt.Fprintln(w, move)
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func showdown(ctx context.Context, params meta.Params, configPath string, opponent metrics.AgentConfig, games, jobs int, records string) error {
	s := experiments.NewShowdown(
		metrics.AgentConfig{
			ID:         1,
			Name:       "wakasagi",
			Kind:       experiments.KindWakasagi,
			MoveBudget: params.MoveBudget,
			Config:     configPath,
		},
		opponent,
		experiments.WithGames(games),
		experiments.WithConcurrency(jobs),
		experiments.WithSeed(params.Seed),
		experiments.WithOutput(os.Stdout),
		experiments.WithRecords(records),
	)
	_, _, err := s.Run(ctx)
	return err
}

func bench(params meta.Params) error {
	positions := []*game.Position{game.NewStartingPosition()}
	for _, sq := range []string{"d2", "e3", "a1", "h4"} {
		square, err := game.ParseSquare(sq)
		if err != nil {
			return err
		}
		positions = append(positions, positions[len(positions)-1].Apply(game.NewFlip(square)))
	}

	result := experiments.MeasureThroughput(params, positions, params.MoveBudget)
	log.Info().
		Int("positions", result.Positions).
		Float64("episodes_per_sec", result.EpisodesPerSec).
		Float64("nodes_per_sec", result.NodesPerSec).
		Float64("playout_fraction", result.PlayoutFraction).
		Msg("throughput")
	return nil
}
