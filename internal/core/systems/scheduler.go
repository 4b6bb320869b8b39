package systems

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zeusync/hexcurl/internal/core/observability/log"
)

var (
	ErrInvalidStep      = errors.New("fixed step must be positive")
	ErrSystemRegistered = errors.New("system already registered")
)

// maxStepsPerAdvance bounds catch-up work after a long stall.
const maxStepsPerAdvance = 240

type entry struct {
	system  System
	order   int
	metrics Metrics
}

// Scheduler runs systems at a fixed timestep. Frame time is accumulated and
// consumed in whole steps so the simulation is independent of frame rate.
type Scheduler struct {
	step        float64
	accumulator float64
	ticks       uint64
	state       StateIdentity
	entries     []*entry
	logger      log.Log
}

// NewScheduler creates a scheduler ticking every step seconds.
func NewScheduler(step float64, logger log.Log) (*Scheduler, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	return &Scheduler{
		step:   step,
		state:  StateRunning,
		logger: logger.With(log.String("component", "scheduler")),
	}, nil
}

// Register adds a system. Systems run by descending priority, then in
// registration order.
func (s *Scheduler) Register(sys System) error {
	for _, e := range s.entries {
		if e.system.Name() == sys.Name() {
			return fmt.Errorf("%w: %s", ErrSystemRegistered, sys.Name())
		}
	}
	s.entries = append(s.entries, &entry{system: sys, order: len(s.entries)})
	sort.SliceStable(s.entries, func(i, j int) bool {
		a, b := s.entries[i], s.entries[j]
		if a.system.Priority() != b.system.Priority() {
			return a.system.Priority() > b.system.Priority()
		}
		return a.order < b.order
	})
	return nil
}

// Advance accumulates frame time and runs as many fixed ticks as it covers.
// It returns the number of ticks run.
func (s *Scheduler) Advance(frameDelta float64) (int, error) {
	if s.state == StatePaused || !(frameDelta > 0) {
		return 0, nil
	}
	s.accumulator += frameDelta

	steps := 0
	for s.accumulator >= s.step {
		if steps == maxStepsPerAdvance {
			s.logger.Warn("Dropping accumulated time",
				log.Float64("dropped", s.accumulator),
				log.Int("steps", steps),
			)
			s.accumulator = 0
			break
		}
		if err := s.Tick(); err != nil {
			return steps, err
		}
		s.accumulator -= s.step
		steps++
	}
	return steps, nil
}

// Tick runs every system once with the fixed step.
func (s *Scheduler) Tick() error {
	for _, e := range s.entries {
		start := time.Now()
		err := e.system.FixedUpdate(s.step)
		e.metrics.record(start, err)
		if err != nil {
			return fmt.Errorf("system %s: %w", e.system.Name(), err)
		}
	}
	s.ticks++
	return nil
}

// Pause stops Advance from running ticks.
func (s *Scheduler) Pause() { s.state = StatePaused }

// Resume undoes Pause. Time that passed while paused is not replayed.
func (s *Scheduler) Resume() { s.state = StateRunning }

// Reset clears the accumulator and tick counter.
func (s *Scheduler) Reset() {
	s.accumulator = 0
	s.ticks = 0
}

func (s *Scheduler) State() StateIdentity { return s.state }
func (s *Scheduler) Ticks() uint64        { return s.ticks }

// Metrics returns a copy of the named system's metrics.
func (s *Scheduler) Metrics(name string) (Metrics, bool) {
	for _, e := range s.entries {
		if e.system.Name() == name {
			return e.metrics, true
		}
	}
	return Metrics{}, false
}
