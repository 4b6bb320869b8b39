package physics

import "math"

// Lightweight 2D vector math shared by the geometry, tile and stone code.
// Vec2 is a value type; every operation returns a new vector.

// Vec2 is a 2D vector in world units.
type Vec2 struct{ X, Y float64 }

// Zero is the zero vector.
var Zero = Vec2{}

// UnitX is the fallback direction for degenerate normals.
var UnitX = Vec2{X: 1}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Length() float64 { return math.Sqrt(v.LengthSq()) }

func (v Vec2) DistanceSq(o Vec2) float64 { return o.Sub(v).LengthSq() }

func (v Vec2) Distance(o Vec2) float64 { return o.Sub(v).Length() }

// Normalize returns the unit vector, or Zero for a zero-length input.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Zero
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotate rotates counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns atan2(y, x) in (-π, π].
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// FromAngle returns the unit vector at angle radians.
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: cos, Y: sin}
}
