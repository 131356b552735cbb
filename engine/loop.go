package engine

import (
	"context"
	"sync"
	"time"
)

// Clock supplies monotonic time to the fixed-step loop
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable Clock for tests and replays
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock frozen at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FixedStep drives an update callback at a fixed simulation rate using an accumulator
// Frame time beyond MaxCatchUp steps is dropped rather than replayed
type FixedStep struct {
	Step       time.Duration
	MaxCatchUp int
	Clock      Clock

	accumulator time.Duration
	last        time.Time
	started     bool
	steps       uint64
}

// NewFixedStep creates a loop ticking every step on the system clock
func NewFixedStep(step time.Duration) *FixedStep {
	return &FixedStep{
		Step:       step,
		MaxCatchUp: 8,
		Clock:      SystemClock{},
	}
}

// Steps returns the number of update calls issued so far
func (l *FixedStep) Steps() uint64 {
	return l.steps
}

// Advance feeds elapsed frame time into the accumulator and runs the due updates
// update returns false to request stop; Advance then reports false
func (l *FixedStep) Advance(elapsed time.Duration, update func(dt float64) bool) bool {
	if l.Step <= 0 {
		return false
	}
	if elapsed > 0 {
		l.accumulator += elapsed
	}

	dt := l.Step.Seconds()
	ran := 0
	for l.accumulator >= l.Step {
		if l.MaxCatchUp > 0 && ran >= l.MaxCatchUp {
			// Too far behind, drop the backlog
			l.accumulator = 0
			break
		}
		l.accumulator -= l.Step
		ran++
		l.steps++
		if !update(dt) {
			return false
		}
	}
	return true
}

// Tick samples the clock and advances by the time since the previous Tick
func (l *FixedStep) Tick(update func(dt float64) bool) bool {
	now := l.Clock.Now()
	if !l.started {
		l.started = true
		l.last = now
		return true
	}
	elapsed := now.Sub(l.last)
	l.last = now
	return l.Advance(elapsed, update)
}

// Run ticks until ctx is cancelled or update requests stop
// Returns ctx.Err() on cancellation, nil on a requested stop
func (l *FixedStep) Run(ctx context.Context, update func(dt float64) bool) error {
	if l.Clock == nil {
		l.Clock = SystemClock{}
	}
	poll := l.Step / 2
	if poll <= 0 {
		poll = time.Millisecond
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if !l.Tick(update) {
			return nil
		}
		timer.Reset(poll)
	}
}
