package searcher

import (
	"context"
	"time"
)

// Clock returns the current time, injectable for tests.
type Clock func() time.Time

// Deadline carries the per-search time budget. Alpha-beta polls it once per
// visited node and only reads the clock every interval nodes, MCTS checks it
// before every iteration. Once expired it stays expired.
type Deadline struct {
	ctx      context.Context
	now      Clock
	start    time.Time
	budget   time.Duration
	interval int
	nodes    int
	expired  bool
}

type DeadlineOption func(d *Deadline)

func WithClock(clock Clock) DeadlineOption {
	return func(d *Deadline) {
		if clock != nil {
			d.now = clock
		}
	}
}

func WithCheckInterval(nodes int) DeadlineOption {
	return func(d *Deadline) {
		if nodes > 0 {
			d.interval = nodes
		}
	}
}

func WithContext(ctx context.Context) DeadlineOption {
	return func(d *Deadline) {
		if ctx != nil {
			d.ctx = ctx
		}
	}
}

func NewDeadline(budget time.Duration, options ...DeadlineOption) *Deadline {
	d := &Deadline{
		ctx:      context.Background(),
		now:      time.Now,
		budget:   budget,
		interval: 1024,
	}
	for _, option := range options {
		option(d)
	}
	d.start = d.now()
	return d
}

// Poll counts one visited node and reports whether the search must unwind.
func (d *Deadline) Poll() bool {
	if d.expired {
		return true
	}
	d.nodes++
	if d.nodes%d.interval == 0 {
		return d.Expired()
	}
	return false
}

// Expired reads the clock now and reports whether the budget is spent.
func (d *Deadline) Expired() bool {
	if d.expired {
		return true
	}
	if d.budget <= 0 || d.now().Sub(d.start) >= d.budget || d.ctx.Err() != nil {
		d.expired = true
	}
	return d.expired
}

// Interrupted reports whether the deadline tripped, without reading the clock.
func (d *Deadline) Interrupted() bool {
	return d.expired
}

func (d *Deadline) Nodes() int {
	return d.nodes
}

func (d *Deadline) Elapsed() time.Duration {
	return d.now().Sub(d.start)
}

func (d *Deadline) Budget() time.Duration {
	return d.budget
}
