// Package simulation advances stones across a level. Live ticks and trajectory
// previews run the same step function so their results agree bit for bit.
package simulation

import (
	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/stone"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

// Params are the per-level physics inputs of one tick.
type Params struct {
	Dt           float64
	HexRadius    float64
	Effects      tile.Coefficients
	SnapDistance float64
	SnapVelocity float64
}

// NewParams combines the physics config with a level's hex radius.
func NewParams(cfg config.PhysicsConfig, hexRadius float64) Params {
	return Params{
		Dt:        cfg.FixedDelta,
		HexRadius: hexRadius,
		Effects: tile.Coefficients{
			Drag:     cfg.DragCoefficient,
			SlowDown: cfg.SlowDownFactor,
			Rotation: cfg.RotationFactor,
			SpeedUp:  cfg.SpeedUpFactor,
			Samples:  cfg.OverlapSamples,
		},
		SnapDistance: cfg.SnapDistance,
		SnapVelocity: cfg.SnapVelocity,
	}
}

// Collision names two stones, by index, that bounced off each other.
type Collision struct {
	A, B int
}

// StepReport describes what happened during one tick.
type StepReport struct {
	Collisions []Collision
	Snapped    []int
}

// Step advances stones by one tick in place. Every tick runs, in order:
// pairwise collisions, movement, tile effects at the new positions, and the
// goal snap. tiles are read only.
func Step(stones []stone.Stone, tiles []tile.Tile, goal *physics.Vec2, p Params) StepReport {
	var report StepReport
	step(stones, tiles, goal, p, &report)
	return report
}

func step(stones []stone.Stone, tiles []tile.Tile, goal *physics.Vec2, p Params, report *StepReport) {
	for i := range stones {
		for j := i + 1; j < len(stones); j++ {
			a, b := &stones[i], &stones[j]
			v1, v2, ok := physics.ResolveCollision(a.Position, a.Velocity, a.Radius, b.Position, b.Velocity, b.Radius)
			if !ok {
				continue
			}
			a.Velocity, b.Velocity = v1, v2
			if report != nil {
				report.Collisions = append(report.Collisions, Collision{A: i, B: j})
			}
		}
	}

	for i := range stones {
		s := &stones[i]
		s.Position = s.Position.Add(s.Velocity.Scale(p.Dt))
	}

	for i := range stones {
		s := &stones[i]
		s.Velocity = tile.ComputeEffects(s.Position, s.Velocity, tiles, p.HexRadius, s.Radius, p.Effects)
	}

	if goal == nil {
		return
	}
	for i := range stones {
		s := &stones[i]
		if s.Position.Distance(*goal) < p.SnapDistance && s.Velocity.Length() < p.SnapVelocity {
			s.Position = *goal
			s.Velocity = physics.Zero
			if report != nil {
				report.Snapped = append(report.Snapped, i)
			}
		}
	}
}

func allStopped(stones []stone.Stone, minVelocity float64) bool {
	for i := range stones {
		if stones[i].Moving(minVelocity) {
			return false
		}
	}
	return true
}
