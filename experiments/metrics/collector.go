package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Engine       string
	Duration     time.Duration
	Episodes     int // MCTS iterations
	Rollouts     int // MCTS simulations, several per episode
	FullPlayouts int // Rollouts that reached a finished game
	Nodes        int // Alpha-beta nodes visited or MCTS tree size
	Depth        int // Last completed alpha-beta depth
	Repetition   bool
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(engine string)
	AddEpisode()
	AddRollout()
	AddFullPlayout()
	SetNodes(n int)
	SetDepth(depth int)
	SetRepetition(value bool)
	Complete() SearchMetric
}

type collector struct {
	engine       string
	startTime    time.Time
	episodes     atomic.Int32
	rollouts     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
	depth        atomic.Int32
	repetition   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(engine string) {
	m.engine = engine
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.rollouts.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.depth.Store(0)
	m.repetition.Store(false)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) SetNodes(n int) {
	m.nodes.Store(int32(n))
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetRepetition(value bool) {
	m.repetition.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Engine:       m.engine,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		Rollouts:     int(m.rollouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Nodes:        int(m.nodes.Load()),
		Depth:        int(m.depth.Load()),
		Repetition:   m.repetition.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(engine string)      {}
func (m *dummyCollector) AddEpisode()              {}
func (m *dummyCollector) AddRollout()              {}
func (m *dummyCollector) AddFullPlayout()          {}
func (m *dummyCollector) SetNodes(n int)           {}
func (m *dummyCollector) SetDepth(depth int)       {}
func (m *dummyCollector) SetRepetition(value bool) {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
