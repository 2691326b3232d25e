// meta/meta.go
package meta

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MAX_TURNS caps the length of a game played by the local engine.
const MAX_TURNS = 400

// GO_ROUTINES is the default number of concurrent showdown games.
const GO_ROUTINES = 8

// Params holds every tunable of the search core.
type Params struct {
	Exploration         float64       `yaml:"exploration"`           // UCB exploration constant C
	RaveEquivalence     float64       `yaml:"rave_equivalence"`      // k in beta = sqrt(k / (3N + k))
	AMAFCutoff          int           `yaml:"amaf_cutoff"`           // Rollout plies recorded for AMAF
	SimulationsPerChild int           `yaml:"simulations_per_child"` // Rollouts for each newly expanded child
	BestChildRollouts   int           `yaml:"best_child_rollouts"`   // Extra rollouts of the best child per expansion
	RolloutCap          int           `yaml:"rollout_cap"`           // Safety cap on rollout length
	MaterialTieBreak    float64       `yaml:"material_tiebreak"`     // Weight of the piece count difference in outcomes
	MoveBudget          time.Duration `yaml:"move_budget"`
	MaxDepth            int           `yaml:"max_depth"`       // Alpha-beta iterative deepening cap
	WinScore            int           `yaml:"win_score"`       // Alpha-beta terminal win score
	NearWinMargin       int           `yaml:"near_win_margin"` // Stop deepening above WinScore - NearWinMargin
	CheckInterval       int           `yaml:"check_interval"`  // Alpha-beta nodes between clock checks
	AvoidRepetition     bool          `yaml:"avoid_repetition"`
	Seed                uint64        `yaml:"seed"`
}

func Default() Params {
	return Params{
		Exploration:         1.4,
		RaveEquivalence:     1000,
		AMAFCutoff:          15,
		SimulationsPerChild: 1,
		BestChildRollouts:   1,
		RolloutCap:          200,
		MaterialTieBreak:    0.02,
		MoveBudget:          4500 * time.Millisecond,
		MaxDepth:            50,
		WinScore:            100000,
		NearWinMargin:       5000,
		CheckInterval:       1024,
		AvoidRepetition:     false,
		Seed:                42,
	}
}

var ErrInvalidParams = errors.New("invalid parameters")

func (p Params) Validate() error {
	switch {
	case p.Exploration < 0:
		return fmt.Errorf("%w: exploration %v < 0", ErrInvalidParams, p.Exploration)
	case p.RaveEquivalence < 0:
		return fmt.Errorf("%w: rave_equivalence %v < 0", ErrInvalidParams, p.RaveEquivalence)
	case p.AMAFCutoff < 0:
		return fmt.Errorf("%w: amaf_cutoff %d < 0", ErrInvalidParams, p.AMAFCutoff)
	case p.SimulationsPerChild < 1:
		return fmt.Errorf("%w: simulations_per_child %d < 1", ErrInvalidParams, p.SimulationsPerChild)
	case p.BestChildRollouts < 0:
		return fmt.Errorf("%w: best_child_rollouts %d < 0", ErrInvalidParams, p.BestChildRollouts)
	case p.RolloutCap < 1:
		return fmt.Errorf("%w: rollout_cap %d < 1", ErrInvalidParams, p.RolloutCap)
	case p.MoveBudget < 0:
		return fmt.Errorf("%w: move_budget %s < 0", ErrInvalidParams, p.MoveBudget)
	case p.MaxDepth < 1:
		return fmt.Errorf("%w: max_depth %d < 1", ErrInvalidParams, p.MaxDepth)
	case p.NearWinMargin < 0 || p.NearWinMargin > p.WinScore:
		return fmt.Errorf("%w: near_win_margin %d outside [0, win_score]", ErrInvalidParams, p.NearWinMargin)
	case p.CheckInterval < 1:
		return fmt.Errorf("%w: check_interval %d < 1", ErrInvalidParams, p.CheckInterval)
	}
	return nil
}

// Load reads a YAML file over the defaults, fields missing from the file keep
// their default value.
func Load(path string) (Params, error) {
	params := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}
