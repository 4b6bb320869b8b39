package simulation

import (
	"fmt"
	"sync"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/events/bus"
	"github.com/zeusync/hexcurl/internal/core/grid"
	"github.com/zeusync/hexcurl/internal/core/level"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/core/stone"
	"github.com/zeusync/hexcurl/internal/core/systems"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

// Session runs one level at a time. Ticks, sweeps and previews are serialized
// so tile blend state only changes between ticks. Events are published while
// the session lock is held, so handlers must not call back into the Session.
type Session struct {
	mu        sync.Mutex
	cfg       config.Config
	bus       bus.EventBus
	logger    log.Log
	world     *World
	scheduler *systems.Scheduler
	predictor *Predictor
}

// NewSession validates cfg. A nil logger falls back to the process logger.
func NewSession(cfg config.Config, eventBus bus.EventBus, logger log.Log) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if logger == nil {
		logger = log.Provide()
	}
	return &Session{
		cfg:    cfg,
		bus:    eventBus,
		logger: logger.Named("session"),
	}, nil
}

// Bus returns the event bus the session publishes on.
func (s *Session) Bus() bus.EventBus { return s.bus }

// Start begins a fresh run of l, discarding any previous run.
func (s *Session) Start(l *level.Level) error {
	if l == nil {
		return ErrNilLevel
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(l)
}

func (s *Session) startLocked(l *level.Level) error {
	world := NewWorld(l, s.cfg.Physics.StoneRadius)
	params := NewParams(s.cfg.Physics, l.HexRadius)
	logger := s.logger.With(log.String("level", l.Name))

	scheduler, err := systems.NewScheduler(s.cfg.Physics.FixedDelta, logger)
	if err != nil {
		return err
	}
	minVelocity := s.cfg.Preview.MinVelocity
	if err = scheduler.Register(NewIntegrator(world, params, s.bus, logger, minVelocity)); err != nil {
		return err
	}
	if err = scheduler.Register(NewCompletion(world, s.cfg.Physics.MinSweepDistance, s.bus, logger)); err != nil {
		return err
	}

	s.world = world
	s.scheduler = scheduler
	s.predictor = NewPredictor(params, NewPreviewOptions(s.cfg.Preview), logger)

	logger.Info("Level started",
		log.Int("stones", len(world.Stones)),
		log.Int("tiles", len(world.Tiles)),
		log.String("phase", world.Phase.String()),
	)
	s.publish(newEvent(EventLevelStarted, LevelEvent{Level: l.Name}))
	return nil
}

// Restart starts the current level again.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return ErrNotStarted
	}
	return s.startLocked(s.world.Level)
}

// Advance feeds frameDelta seconds of wall time into the session. During the
// countdown it only counts down; time left over when the countdown ends is
// dropped. While playing it runs as many fixed ticks as the time covers.
func (s *Session) Advance(frameDelta float64) error {
	if frameDelta < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, frameDelta)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.world
	if w == nil {
		return ErrNotStarted
	}

	if w.Phase == PhaseCountdown {
		w.Countdown -= frameDelta
		if w.Countdown > 0 {
			return nil
		}
		w.Countdown = 0
		w.Phase = PhasePlaying
		s.publish(newEvent(EventLevelPlaying, LevelEvent{Level: w.Level.Name, Tick: w.Tick}))
		return nil
	}

	_, err := s.scheduler.Advance(frameDelta)
	return err
}

// Sweep paints brush onto the tile at coord by distance world units of drag.
func (s *Session) Sweep(coord grid.HexCoordinate, brush tile.Type, distance float64) (tile.SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return tile.SweepResult{}, ErrNotStarted
	}
	return s.sweepLocked(coord, brush, distance)
}

func (s *Session) sweepLocked(coord grid.HexCoordinate, brush tile.Type, distance float64) (tile.SweepResult, error) {
	w := s.world
	t, ok := w.TileAt(coord)
	if !ok {
		return tile.SweepResult{}, fmt.Errorf("%w: %s", ErrUnknownTile, coord)
	}
	res, err := t.Sweep(brush, distance, s.cfg.Physics.MinSweepDistance)
	if err != nil {
		return res, err
	}
	if res.Repainted {
		s.logger.Debug("Tile repainted",
			log.String("coord", coord.String()),
			log.String("from", res.From.String()),
			log.String("to", t.Type.String()),
		)
		s.publish(newEvent(EventTileRepainted, RepaintEvent{
			Level: w.Level.Name,
			Coord: coord,
			From:  res.From,
			To:    t.Type,
		}))
	}
	return res, nil
}

// SweepAt is Sweep on the cell under a world position.
func (s *Session) SweepAt(pos physics.Vec2, brush tile.Type, distance float64) (tile.SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return tile.SweepResult{}, ErrNotStarted
	}
	coord, ok := s.world.Level.Grid.WorldToHex(pos)
	if !ok {
		return tile.SweepResult{}, fmt.Errorf("%w: (%g, %g)", ErrOutsideGrid, pos.X, pos.Y)
	}
	return s.sweepLocked(coord, brush, distance)
}

// Preview returns the predicted path of every stone from the current state.
func (s *Session) Preview() ([][]physics.Vec2, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return nil, ErrNotStarted
	}
	return s.predictor.Preview(s.world.Snapshot()), nil
}

func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		s.scheduler.Pause()
	}
}

func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		s.scheduler.Resume()
	}
}

// Phase returns the current phase, or false when nothing was started.
func (s *Session) Phase() (Phase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return 0, false
	}
	return s.world.Phase, true
}

// Stones returns a copy of the live stones.
func (s *Session) Stones() []stone.Stone {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return nil
	}
	return stone.Clone(s.world.Stones)
}

// Tick returns the number of physics ticks run in the current level.
func (s *Session) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return 0
	}
	return s.world.Tick
}

// Level returns the running level.
func (s *Session) Level() (*level.Level, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		return nil, false
	}
	return s.world.Level, true
}

// PredictorStats returns the preview cache counters.
func (s *Session) PredictorStats() (hits, misses uint64) {
	s.mu.Lock()
	p := s.predictor
	s.mu.Unlock()
	if p == nil {
		return 0, 0
	}
	return p.Stats()
}

func (s *Session) publish(e bus.Event) {
	if err := s.bus.Publish(e); err != nil {
		s.logger.Warn("Event delivery failed", log.String("event", e.Type()), log.Error(err))
	}
}
