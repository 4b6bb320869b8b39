package simulation

import (
	"github.com/zeusync/hexcurl/internal/core/events/bus"
	"github.com/zeusync/hexcurl/internal/core/level"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/core/systems"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

// sweepTolerance is how far short of the full budget a painted tile may be.
const sweepTolerance = 2.0

// Completion watches the world for the level's win condition and publishes
// level.complete once.
type Completion struct {
	world  *World
	budget float64
	bus    bus.EventBus
	logger log.Log
}

func NewCompletion(world *World, budget float64, eventBus bus.EventBus, logger log.Log) *Completion {
	return &Completion{
		world:  world,
		budget: budget,
		bus:    eventBus,
		logger: logger.Named("completion"),
	}
}

func (c *Completion) Name() string               { return "completion" }
func (c *Completion) Priority() systems.Priority { return systems.PriorityNormal }

func (c *Completion) FixedUpdate(float64) error {
	w := c.world
	if w.Phase != PhasePlaying || !c.Satisfied() {
		return nil
	}

	w.Phase = PhaseComplete
	c.logger.Info("Level complete",
		log.String("level", w.Level.Name),
		log.Uint64("tick", w.Tick),
	)
	if err := c.bus.Publish(newEvent(EventLevelComplete, LevelEvent{Level: w.Level.Name, Tick: w.Tick})); err != nil {
		c.logger.Warn("Event delivery failed", log.Error(err))
	}
	return nil
}

// Satisfied reports whether the win condition currently holds.
func (c *Completion) Satisfied() bool {
	w := c.world
	switch w.Level.Completion {
	case level.CompleteOnSweep:
		if len(w.sweepable) == 0 {
			return false
		}
		maintain := tile.Of(tile.MaintainSpeed)
		for _, idx := range w.sweepable {
			t := &w.Tiles[idx]
			painted := 0.0
			switch {
			case t.Drag != nil:
				painted = t.Drag.Distance(maintain)
			case t.Type == maintain:
				painted = c.budget
			}
			if painted+sweepTolerance < c.budget {
				return false
			}
		}
		return true
	default:
		if len(w.Stones) == 0 {
			return false
		}
		for idx := range w.Stones {
			if !w.reached[idx] {
				return false
			}
		}
		return true
	}
}
