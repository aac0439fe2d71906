// The simulation scheduler: a two-state accumulator that runs one ordered
// tick pass whenever enough simulated time has elapsed. Ticks never overlap.
package engine

import (
	"log/slog"
	"time"
)

// SchedulerState is the scheduler's control state.
type SchedulerState uint8

const (
	StateIdle SchedulerState = iota
	StateTicking
)

// Scheduler accumulates elapsed time and drives the engine's tick passes.
type Scheduler struct {
	eng         *Engine
	interval    time.Duration
	accumulated time.Duration
	state       SchedulerState
}

// NewScheduler creates a scheduler using the engine's configured interval.
func NewScheduler(e *Engine) *Scheduler {
	interval := e.cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{eng: e, interval: interval}
}

// State returns the scheduler's current control state.
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// Advance adds elapsed time and runs tick passes for every full interval
// accumulated. Returns the number of passes run.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	s.accumulated += elapsed
	passes := 0
	for s.accumulated >= s.interval {
		s.accumulated -= s.interval
		s.state = StateTicking
		s.eng.Tick()
		s.state = StateIdle
		passes++
	}
	return passes
}

// Run drives the scheduler against the wall clock until stop closes.
// This is the standalone mode; embedded hosts call Advance from their own
// update loop instead.
func (s *Scheduler) Run(stop <-chan struct{}, onPass func(tick uint64)) {
	slog.Info("scheduler started", "interval", s.interval, "tick", s.eng.CurrentTick())

	last := time.Now()
	for {
		select {
		case <-stop:
			slog.Info("scheduler stopped", "tick", s.eng.CurrentTick())
			return
		case now := <-time.After(s.interval - s.accumulated):
			if s.Advance(now.Sub(last)) > 0 && onPass != nil {
				onPass(s.eng.CurrentTick())
			}
			last = now
		}
	}
}

// Tick runs one full simulation pass in fixed order: relationship decay and
// autonomous interactions, rumor upkeep, autonomous information diffusion,
// then group cohesion refresh.
func (e *Engine) Tick() {
	e.tick++

	e.decayRelationships()
	e.autonomousInteraction()
	e.tickRumors()
	e.tickDiffusion()
	e.refreshCohesion()
}
