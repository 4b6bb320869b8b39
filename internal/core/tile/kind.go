package tile

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/hexcurl/internal/core/systems/physics"
)

// Kind is the behavior family of a tile.
type Kind uint8

const (
	Wall Kind = iota
	MaintainSpeed
	SlowDown
	TurnCounterclockwise
	TurnClockwise
	Goal
	SpeedUp
)

var kindNames = [...]string{
	Wall:                 "wall",
	MaintainSpeed:        "maintain_speed",
	SlowDown:             "slow_down",
	TurnCounterclockwise: "turn_counterclockwise",
	TurnClockwise:        "turn_clockwise",
	Goal:                 "goal",
	SpeedUp:              "speed_up",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Sweepable reports whether a resting tile of this kind can be repainted.
func (k Kind) Sweepable() bool {
	switch k {
	case MaintainSpeed, SlowDown, TurnCounterclockwise, TurnClockwise:
		return true
	default:
		return false
	}
}

// Brush reports whether this kind can be painted onto another tile.
func (k Kind) Brush() bool {
	switch k {
	case MaintainSpeed, TurnCounterclockwise, TurnClockwise:
		return true
	default:
		return false
	}
}

// Facing is the launch direction of a SpeedUp tile.
type Facing uint8

const (
	Up Facing = iota
	UpRight
	DownRight
	Down
	DownLeft
	UpLeft
)

var facingNames = [...]string{
	Up:        "up",
	UpRight:   "up_right",
	DownRight: "down_right",
	Down:      "down",
	DownLeft:  "down_left",
	UpLeft:    "up_left",
}

func (f Facing) String() string {
	if int(f) < len(facingNames) {
		return facingNames[f]
	}
	return fmt.Sprintf("facing(%d)", uint8(f))
}

// Angle returns the facing direction in radians, counter-clockwise from +X.
func (f Facing) Angle() float64 {
	switch f {
	case Up:
		return math.Pi / 2
	case UpRight:
		return math.Pi / 6
	case DownRight:
		return -math.Pi / 6
	case Down:
		return -math.Pi / 2
	case DownLeft:
		return -math.Pi/2 - math.Pi/3
	case UpLeft:
		return math.Pi/2 + math.Pi/3
	default:
		return 0
	}
}

// Vector returns the unit vector for the facing.
func (f Facing) Vector() physics.Vec2 { return physics.FromAngle(f.Angle()) }

// ParseFacing is the inverse of Facing.String.
func ParseFacing(s string) (Facing, error) {
	for i, name := range facingNames {
		if name == s {
			return Facing(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFacing, s)
}

// Type is a tile behavior. Facing is only meaningful for SpeedUp and is zero
// otherwise, so Type values compare equal exactly when they behave the same.
type Type struct {
	Kind   Kind
	Facing Facing
}

// Of returns the Type for a kind without a direction.
func Of(k Kind) Type { return Type{Kind: k} }

// SpeedUpTowards returns a SpeedUp type launching toward f.
func SpeedUpTowards(f Facing) Type { return Type{Kind: SpeedUp, Facing: f} }

func (t Type) String() string {
	if t.Kind == SpeedUp {
		return t.Kind.String() + ":" + t.Facing.String()
	}
	return t.Kind.String()
}

// ParseType parses the String form, e.g. "slow_down" or "speed_up:up_right".
func ParseType(s string) (Type, error) {
	name, facing, hasFacing := strings.Cut(strings.TrimSpace(s), ":")
	for i, kn := range kindNames {
		if kn != name {
			continue
		}
		k := Kind(i)
		if k != SpeedUp {
			if hasFacing {
				return Type{}, fmt.Errorf("%w: %q takes no direction", ErrUnknownType, s)
			}
			return Of(k), nil
		}
		if !hasFacing {
			return Type{}, fmt.Errorf("%w: %q needs a direction", ErrUnknownType, s)
		}
		f, err := ParseFacing(facing)
		if err != nil {
			return Type{}, err
		}
		return SpeedUpTowards(f), nil
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
