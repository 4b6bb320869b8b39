package simulation

import (
	"github.com/zeusync/hexcurl/internal/core/events/bus"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/core/systems"
)

// Integrator is the system that steps the live world every fixed tick while
// the level is being played.
type Integrator struct {
	world       *World
	params      Params
	bus         bus.EventBus
	logger      log.Log
	minVelocity float64
}

// NewIntegrator creates the motion system for world. Stones slower than
// minVelocity count as stopped.
func NewIntegrator(world *World, params Params, eventBus bus.EventBus, logger log.Log, minVelocity float64) *Integrator {
	return &Integrator{
		world:       world,
		params:      params,
		bus:         eventBus,
		logger:      logger.Named("integrator"),
		minVelocity: minVelocity,
	}
}

func (i *Integrator) Name() string               { return "integrator" }
func (i *Integrator) Priority() systems.Priority { return systems.PriorityHigh }

func (i *Integrator) FixedUpdate(dt float64) error {
	w := i.world
	if w.Phase != PhasePlaying {
		return nil
	}

	p := i.params
	p.Dt = dt
	report := Step(w.Stones, w.Tiles, w.Goal, p)
	w.Tick++

	for _, c := range report.Collisions {
		i.logger.Debug("Stones collided",
			log.Uint64("tick", w.Tick),
			log.Int("a", c.A),
			log.Int("b", c.B),
		)
	}

	var events []bus.Event
	for _, idx := range report.Snapped {
		if w.reached[idx] {
			continue
		}
		w.reached[idx] = true
		events = append(events, newEvent(EventStoneReachedGoal, i.stoneEvent(idx)))
		i.logger.Info("Stone reached goal",
			log.String("level", w.Level.Name),
			log.Int("stone", idx),
			log.Uint64("tick", w.Tick),
		)
	}

	for idx := range w.Stones {
		moving := w.Stones[idx].Moving(i.minVelocity)
		switch {
		case moving:
			w.stopped[idx] = false
			if w.reached[idx] {
				w.reached[idx] = false
				i.logger.Info("Stone knocked off the goal",
					log.String("level", w.Level.Name),
					log.Int("stone", idx),
					log.Uint64("tick", w.Tick),
				)
			}
		case !w.reached[idx] && !w.stopped[idx]:
			w.stopped[idx] = true
			events = append(events, newEvent(EventStoneStopped, i.stoneEvent(idx)))
			i.logger.Info("Stone stopped short of the goal",
				log.String("level", w.Level.Name),
				log.Int("stone", idx),
				log.Point("position", w.Stones[idx].Position.X, w.Stones[idx].Position.Y),
			)
		}
	}

	if len(events) > 0 {
		if err := i.bus.PublishBatch(events...); err != nil {
			i.logger.Warn("Event delivery failed", log.Error(err))
		}
	}
	return nil
}

func (i *Integrator) stoneEvent(idx int) StoneEvent {
	s := i.world.Stones[idx]
	return StoneEvent{
		Level:    i.world.Level.Name,
		Tick:     i.world.Tick,
		Index:    idx,
		StoneID:  s.ID,
		Position: s.Position,
	}
}
