package simulation

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
	"github.com/zeusync/hexcurl/internal/core/stone"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
	"github.com/zeusync/hexcurl/pkg/generic"
)

// PreviewOptions bound a trajectory preview.
type PreviewOptions struct {
	StepCap     int
	SampleEvery int
	MinVelocity float64
}

func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{StepCap: 10000, SampleEvery: 3, MinVelocity: 1}
}

func NewPreviewOptions(cfg config.PreviewConfig) PreviewOptions {
	return PreviewOptions{
		StepCap:     cfg.StepCap,
		SampleEvery: cfg.SampleEvery,
		MinVelocity: cfg.MinVelocity,
	}
}

func (o PreviewOptions) normalized() PreviewOptions {
	d := DefaultPreviewOptions()
	if o.StepCap <= 0 {
		o.StepCap = d.StepCap
	}
	if o.SampleEvery <= 0 {
		o.SampleEvery = d.SampleEvery
	}
	if !(o.MinVelocity >= 0) {
		o.MinVelocity = d.MinVelocity
	}
	return o
}

// Trajectory is the outcome of one preview run.
type Trajectory struct {
	Paths  [][]physics.Vec2
	Steps  int
	Capped bool
}

// SimulateTrajectories forward-simulates a copy of snapshot and returns one
// polyline per stone. Each polyline starts at the stone's position, gains a
// point after every SampleEvery-th tick and ends at the final position.
func SimulateTrajectories(snapshot Snapshot, p Params, opts PreviewOptions) [][]physics.Vec2 {
	return simulate(snapshot, p, opts).Paths
}

func simulate(snapshot Snapshot, p Params, opts PreviewOptions) Trajectory {
	opts = opts.normalized()
	snap := snapshot.Clone()
	stones := snap.Stones

	paths := make([][]physics.Vec2, len(stones))
	for i := range stones {
		paths[i] = []physics.Vec2{stones[i].Position}
	}

	steps := 0
	for i := 0; i < opts.StepCap; i++ {
		if allStopped(stones, opts.MinVelocity) {
			break
		}
		step(stones, snap.Tiles, snap.Goal, p, nil)
		steps++
		if i%opts.SampleEvery == 0 {
			for j := range stones {
				paths[j] = append(paths[j], stones[j].Position)
			}
		}
	}

	for j := range stones {
		if last := paths[j][len(paths[j])-1]; last != stones[j].Position {
			paths[j] = append(paths[j], stones[j].Position)
		}
	}

	return Trajectory{
		Paths:  paths,
		Steps:  steps,
		Capped: steps == opts.StepCap && !allStopped(stones, opts.MinVelocity),
	}
}

// Predictor serves previews for a level and reuses the last result while the
// snapshot is unchanged.
type Predictor struct {
	params Params
	opts   PreviewOptions
	logger log.Log

	mu     sync.Mutex
	key    uint64
	cached [][]physics.Vec2
	valid  bool
	hits   uint64
	misses uint64
}

func NewPredictor(params Params, opts PreviewOptions, logger log.Log) *Predictor {
	return &Predictor{
		params: params,
		opts:   opts.normalized(),
		logger: logger.Named("predictor"),
	}
}

// Preview returns the trajectories for snapshot. The result is a copy the
// caller may keep.
func (p *Predictor) Preview(snapshot Snapshot) [][]physics.Vec2 {
	key := Fingerprint(snapshot, p.params, p.opts)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.valid && p.key == key {
		p.hits++
		return copyPaths(p.cached)
	}
	p.misses++

	t := simulate(snapshot, p.params, p.opts)
	if t.Capped {
		p.logger.Warn("Preview hit the step cap",
			log.Int("step_cap", p.opts.StepCap),
			log.Int("stones", len(snapshot.Stones)),
		)
	}
	p.key, p.cached, p.valid = key, t.Paths, true
	return copyPaths(t.Paths)
}

// Stats returns cache hits and misses.
func (p *Predictor) Stats() (hits, misses uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

// Invalidate drops the cached preview.
func (p *Predictor) Invalidate() {
	p.mu.Lock()
	p.valid = false
	p.cached = nil
	p.mu.Unlock()
}

func copyPaths(paths [][]physics.Vec2) [][]physics.Vec2 {
	out := make([][]physics.Vec2, len(paths))
	for i, path := range paths {
		out[i] = append([]physics.Vec2(nil), path...)
	}
	return out
}

type fingerprintScratch struct {
	h   *xxhash.Digest
	buf []byte
}

var scratchPool = generic.NewPool(
	func() *fingerprintScratch {
		return &fingerprintScratch{h: xxhash.New(), buf: make([]byte, 0, 256)}
	},
	func(s *fingerprintScratch) {
		s.h.Reset()
		s.buf = s.buf[:0]
	},
)

// Fingerprint hashes everything a preview depends on. Stone IDs are left out
// since they do not affect motion.
func Fingerprint(snapshot Snapshot, p Params, opts PreviewOptions) uint64 {
	return generic.With(scratchPool, func(s *fingerprintScratch) uint64 {
		return s.fingerprint(snapshot, p, opts)
	})
}

func (s *fingerprintScratch) fingerprint(snapshot Snapshot, p Params, opts PreviewOptions) uint64 {
	f := func(v float64) { s.buf = binary.LittleEndian.AppendUint64(s.buf, math.Float64bits(v)) }
	n := func(v int) { s.buf = binary.LittleEndian.AppendUint64(s.buf, uint64(int64(v))) }
	vec := func(v physics.Vec2) {
		f(v.X)
		f(v.Y)
	}
	flush := func() {
		_, _ = s.h.Write(s.buf)
		s.buf = s.buf[:0]
	}

	f(p.Dt)
	f(p.HexRadius)
	f(p.Effects.Drag)
	f(p.Effects.SlowDown)
	f(p.Effects.Rotation)
	f(p.Effects.SpeedUp)
	n(p.Effects.Samples)
	f(p.SnapDistance)
	f(p.SnapVelocity)
	n(opts.StepCap)
	n(opts.SampleEvery)
	f(opts.MinVelocity)

	if snapshot.Goal != nil {
		n(1)
		vec(*snapshot.Goal)
	} else {
		n(0)
	}

	n(len(snapshot.Stones))
	for _, st := range snapshot.Stones {
		writeStone(st, f, vec)
		flush()
	}

	n(len(snapshot.Tiles))
	for i := range snapshot.Tiles {
		writeTile(&snapshot.Tiles[i], f, n, vec)
		flush()
	}
	flush()
	return s.h.Sum64()
}

func writeStone(s stone.Stone, f func(float64), vec func(physics.Vec2)) {
	f(s.Radius)
	vec(s.Position)
	vec(s.Velocity)
}

func writeTile(t *tile.Tile, f func(float64), n func(int), vec func(physics.Vec2)) {
	n(t.Coord.Q)
	n(t.Coord.R)
	vec(t.Position)
	n(int(t.Type.Kind))
	n(int(t.Type.Facing))
	if t.Drag == nil {
		n(-1)
		return
	}
	f(t.Drag.Total())
	shares := t.Drag.Shares()
	n(len(shares))
	for _, s := range shares {
		n(int(s.Type.Kind))
		n(int(s.Type.Facing))
		f(s.Distance)
	}
}
