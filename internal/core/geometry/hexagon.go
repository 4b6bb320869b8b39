package geometry

import (
	"math"

	"github.com/zeusync/hexcurl/internal/core/systems/physics"
)

// Sqrt3Over2 is the apothem of a unit flat-top hexagon.
var Sqrt3Over2 = math.Sqrt(3) / 2

// hexEdgeNormals are the outward normals of a flat-top hexagon with vertices at
// 0°, 60°, ... Normal i belongs to the edge between vertex i and i+1, at 30°+60°·i.
var hexEdgeNormals = [6]physics.Vec2{
	{X: 0.8660254037844386, Y: 0.5},   // 30°
	{X: 0, Y: 1},                      // 90°
	{X: -0.8660254037844386, Y: 0.5},  // 150°
	{X: -0.8660254037844386, Y: -0.5}, // 210°
	{X: 0, Y: -1},                     // 270°
	{X: 0.8660254037844386, Y: -0.5},  // 330°
}

// HexagonVertices returns the six vertices of a flat-top hexagon in
// counter-clockwise order, starting at angle 0.
func HexagonVertices(center physics.Vec2, radius float64) [6]physics.Vec2 {
	var out [6]physics.Vec2
	for i := range out {
		out[i] = center.Add(physics.FromAngle(float64(i) * math.Pi / 3).Scale(radius))
	}
	return out
}

// HexEdgeNormal returns the outward normal of the hexagon edge facing rel,
// where rel is a position relative to the hexagon center. The edge is picked by
// the 60° sector containing rel's angle.
func HexEdgeNormal(rel physics.Vec2) physics.Vec2 {
	angle := rel.Angle()
	if angle < 0 {
		angle += 2 * math.Pi
	}
	sector := int(angle / (math.Pi / 3))
	if sector > 5 {
		sector = 5
	}
	return hexEdgeNormals[sector]
}

// PointInHexagon reports whether p lies inside the flat-top hexagon.
func PointInHexagon(p, center physics.Vec2, radius float64) bool {
	dx := math.Abs(p.X - center.X)
	dy := math.Abs(p.Y - center.Y)
	apothem := radius * Sqrt3Over2

	if dx > radius || dy > apothem {
		return false
	}
	// Slanted edges: dx*apothem + dy*radius/2 <= radius*apothem
	return dx*apothem+dy*radius/2 <= radius*apothem
}

// AABBIntersects is the fast reject test between a circle's bounding box and
// a flat-top hexagon's bounding box (half-extents R × R·√3/2).
func AABBIntersects(circleCenter physics.Vec2, circleRadius float64, hexCenter physics.Vec2, hexRadius float64) bool {
	hx := hexRadius
	hy := hexRadius * Sqrt3Over2
	return math.Abs(circleCenter.X-hexCenter.X) <= circleRadius+hx &&
		math.Abs(circleCenter.Y-hexCenter.Y) <= circleRadius+hy
}
