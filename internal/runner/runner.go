// Package runner plays levels headless. Each level gets its own Session and
// event bus, so levels run in parallel without sharing state.
package runner

import (
	"context"
	"fmt"
	"math"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/events/bus"
	"github.com/zeusync/hexcurl/internal/core/level"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/core/simulation"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
	"github.com/zeusync/hexcurl/pkg/concurrent"
)

// stallFrames is how many consecutive frames every stone must be at rest
// before a run is abandoned.
const stallFrames = 64

// Options bound a batch run.
type Options struct {
	// MaxSeconds is the simulated time each level may take.
	MaxSeconds float64
	// Frame is the wall-clock delta fed to each Advance call. Zero means the
	// configured fixed step.
	Frame float64
	// Workers caps how many levels run at once. Zero means GOMAXPROCS.
	Workers int
}

func DefaultOptions() Options {
	return Options{MaxSeconds: 60}
}

// Result summarizes one level run.
type Result struct {
	Level     string
	Completed bool
	Stalled   bool
	Ticks     uint64
	Seconds   float64
	Reached   int
	Stopped   int
	Repainted int
	// PreviewDrift is the largest distance between a stone's predicted end
	// point and where it actually ended up.
	PreviewDrift float64
}

// Runner plays levels from a catalog.
type Runner struct {
	cfg     config.Config
	catalog *level.Catalog
	logger  log.Log
	opts    Options
}

func New(cfg config.Config, catalog *level.Catalog, logger log.Log, opts Options) (*Runner, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if !(opts.MaxSeconds > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTime, opts.MaxSeconds)
	}
	if !(opts.Frame > 0) {
		opts.Frame = cfg.Physics.FixedDelta
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner config: %w", err)
	}
	if logger == nil {
		logger = log.Provide()
	}
	return &Runner{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger.Named("runner"),
		opts:    opts,
	}, nil
}

// Run plays the named levels, or every level when names is empty. Results
// keep the order of names.
func (r *Runner) Run(ctx context.Context, names ...string) ([]Result, error) {
	if len(names) == 0 {
		names = r.catalog.Names()
	}
	levels := make([]*level.Level, len(names))
	for i, name := range names {
		l, err := r.catalog.Get(name)
		if err != nil {
			return nil, err
		}
		levels[i] = l
	}

	return concurrent.Map(ctx, levels, r.opts.Workers, r.RunLevel)
}

// RunLevel plays l until it completes, every stone comes to rest, or the time
// limit passes. Sweep levels are painted with MaintainSpeed before play.
func (r *Runner) RunLevel(ctx context.Context, l *level.Level) (Result, error) {
	logger := r.logger.With(log.String("level", l.Name))
	res := Result{Level: l.Name}

	eventBus := bus.New()
	eventBus.AddObserver(bus.NewLogObserver(logger))
	if err := r.subscribe(eventBus, &res); err != nil {
		return res, err
	}

	session, err := simulation.NewSession(r.cfg, eventBus, logger)
	if err != nil {
		return res, err
	}
	if err = session.Start(l); err != nil {
		return res, err
	}
	if l.Completion == level.CompleteOnSweep {
		if err = r.paint(session, l); err != nil {
			return res, err
		}
	}

	predicted, err := session.Preview()
	if err != nil {
		return res, err
	}

	frames := int(math.Ceil((float64(l.Countdown) + r.opts.MaxSeconds) / r.opts.Frame))
	still := 0
	for i := 0; i < frames; i++ {
		if err = ctx.Err(); err != nil {
			return res, err
		}
		if err = session.Advance(r.opts.Frame); err != nil {
			return res, fmt.Errorf("level %s: %w", l.Name, err)
		}
		phase, _ := session.Phase()
		if phase == simulation.PhaseComplete {
			res.Completed = true
			break
		}
		if phase == simulation.PhasePlaying && r.atRest(session) {
			still++
		} else {
			still = 0
		}
		if still >= stallFrames {
			res.Stalled = true
			break
		}
	}

	res.Ticks = session.Tick()
	res.Seconds = float64(res.Ticks) * r.cfg.Physics.FixedDelta
	res.PreviewDrift = drift(predicted, session)

	logger.Info("Level finished",
		log.Bool("completed", res.Completed),
		log.Bool("stalled", res.Stalled),
		log.Uint64("ticks", res.Ticks),
		log.Float64("preview_drift", res.PreviewDrift),
	)
	return res, nil
}

func (r *Runner) subscribe(eventBus bus.EventBus, res *Result) error {
	counters := map[string]*int{
		simulation.EventStoneReachedGoal: &res.Reached,
		simulation.EventStoneStopped:     &res.Stopped,
		simulation.EventTileRepainted:    &res.Repainted,
	}
	for typ, n := range counters {
		_, err := eventBus.Subscribe(typ, func(bus.Event) error {
			*n++
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) paint(session *simulation.Session, l *level.Level) error {
	brush := tile.Of(tile.MaintainSpeed)
	for _, p := range l.Tiles {
		if !p.Type.Kind.Sweepable() {
			continue
		}
		if _, err := session.Sweep(p.Coord, brush, r.cfg.Physics.MinSweepDistance); err != nil {
			return fmt.Errorf("paint %s: %w", p.Coord, err)
		}
	}
	return nil
}

// atRest reports whether a level with stones has all of them below the
// minimum velocity. Stoneless levels never stall.
func (r *Runner) atRest(session *simulation.Session) bool {
	stones := session.Stones()
	if len(stones) == 0 {
		return false
	}
	for _, s := range stones {
		if s.Moving(r.cfg.Preview.MinVelocity) {
			return false
		}
	}
	return true
}

func drift(predicted [][]physics.Vec2, session *simulation.Session) float64 {
	var worst float64
	for i, s := range session.Stones() {
		if i >= len(predicted) || len(predicted[i]) == 0 {
			continue
		}
		end := predicted[i][len(predicted[i])-1]
		worst = math.Max(worst, end.Sub(s.Position).Length())
	}
	return worst
}
