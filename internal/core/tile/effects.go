package tile

import (
	"math"

	"github.com/zeusync/hexcurl/internal/core/geometry"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
)

const (
	// TileInset shrinks each hexagon before the overlap test so neighboring
	// cells do not both claim a stone sitting on their shared edge.
	TileInset = 2.0

	DefaultOverlapSamples = 60

	minOverlapRatio = 0.01
	minBlendWeight  = 0.001
	pullStrength    = 0.5
	epsilon         = 1e-10
)

// Coefficients are the tunables of the tile-effect model.
type Coefficients struct {
	Drag     float64
	SlowDown float64
	Rotation float64
	SpeedUp  float64
	Samples  int
}

type effectState struct {
	velocity physics.Vec2
	rotation float64
	drag     float64
}

// ComputeEffects returns the velocity of a stone at stonePos after every
// overlapping tile has acted on it. Walls change the velocity as they are
// visited. Rotation and drag are accumulated and applied once at the end,
// rotation first.
func ComputeEffects(stonePos, velocity physics.Vec2, tiles []Tile, hexRadius, stoneRadius float64, c Coefficients) physics.Vec2 {
	samples := c.Samples
	if samples < 3 {
		samples = DefaultOverlapSamples
	}

	st := effectState{velocity: velocity}
	for i := range tiles {
		t := &tiles[i]
		ratio := geometry.OverlapRatio(stonePos, stoneRadius, t.Position, hexRadius-TileInset, samples)
		if ratio < minOverlapRatio {
			continue
		}
		t.each(func(typ Type, weight float64) {
			if weight < minBlendWeight {
				return
			}
			st.apply(typ, weight, ratio, stonePos, t.Position, hexRadius, c)
		})
	}

	if math.Abs(st.rotation) > epsilon {
		st.velocity = st.velocity.Rotate(st.rotation)
	}
	if st.drag > 0 {
		st.velocity = st.velocity.Scale(math.Max(0, 1-math.Min(st.drag, 1)))
	}
	return st.velocity
}

func (st *effectState) apply(typ Type, weight, ratio float64, stonePos, tilePos physics.Vec2, hexRadius float64, c Coefficients) {
	weighted := ratio * weight

	switch typ.Kind {
	case Wall:
		normal := geometry.HexEdgeNormal(stonePos.Sub(tilePos))
		dot := st.velocity.Dot(normal)
		if dot >= 0 {
			return
		}
		speed := st.velocity.Length()
		st.velocity = st.velocity.Sub(normal.Scale(2 * dot * weight))
		if newSpeed := st.velocity.Length(); newSpeed > epsilon {
			st.velocity = st.velocity.Scale(speed / newSpeed)
		}

	case MaintainSpeed:
		st.drag += c.Drag * weighted

	case SlowDown:
		st.drag += c.Drag * weighted * c.SlowDown

	case TurnCounterclockwise:
		st.rotation += c.Rotation * weighted
		st.drag += c.Drag * weighted

	case TurnClockwise:
		st.rotation -= c.Rotation * weighted
		st.drag += c.Drag * weighted

	case Goal:
		st.pull(stonePos, tilePos, weighted, epsilon)
		st.drag += c.Drag * c.SlowDown * weighted

	case SpeedUp:
		if !st.pull(stonePos, tilePos, weighted, hexRadius/4) {
			st.velocity = typ.Facing.Vector().Scale(c.SpeedUp)
		}
	}
}

// pull nudges the velocity toward the tile center when the stone is farther
// than minDistance from it. It reports whether the pull was applied.
func (st *effectState) pull(stonePos, tilePos physics.Vec2, weighted, minDistance float64) bool {
	toCenter := tilePos.Sub(stonePos)
	distance := toCenter.Length()
	if distance <= minDistance {
		return false
	}
	st.velocity = st.velocity.Add(toCenter.Scale(pullStrength * weighted / distance))
	return true
}
