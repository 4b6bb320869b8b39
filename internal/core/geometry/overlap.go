package geometry

import (
	"math"

	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/pkg/generic"
)

// clipper owns the scratch buffers for one Sutherland–Hodgman pass. The two
// buffers are swapped after every clip edge.
type clipper struct {
	in  []physics.Vec2
	out []physics.Vec2
}

var clipperPool = generic.NewPool(
	func() *clipper {
		return &clipper{
			in:  make([]physics.Vec2, 0, 128),
			out: make([]physics.Vec2, 0, 128),
		}
	},
	func(c *clipper) {
		c.in = c.in[:0]
		c.out = c.out[:0]
	},
)

// OverlapArea returns the area of the intersection between a circle and a
// flat-top hexagon. The circle is approximated by a regular polygon with
// samples vertices, so the result is exact for that polygon and fully
// deterministic. samples must be at least 3.
func OverlapArea(circleCenter physics.Vec2, circleRadius float64, hexCenter physics.Vec2, hexRadius float64, samples int) float64 {
	if circleRadius <= 0 || hexRadius <= 0 {
		return 0
	}
	if !AABBIntersects(circleCenter, circleRadius, hexCenter, hexRadius) {
		return 0
	}

	c := clipperPool.Get()
	defer clipperPool.Put(c)

	c.in = appendCirclePolygon(c.in[:0], circleCenter, circleRadius, samples)
	window := HexagonVertices(hexCenter, hexRadius)
	clipped := c.clip(window[:])

	return PolygonArea(clipped)
}

// OverlapRatio returns the fraction of the circle's area that lies inside the
// hexagon, in [0, 1].
func OverlapRatio(circleCenter physics.Vec2, circleRadius float64, hexCenter physics.Vec2, hexRadius float64, samples int) float64 {
	circleArea := math.Pi * circleRadius * circleRadius
	if circleArea <= 0 {
		return 0
	}
	return OverlapArea(circleCenter, circleRadius, hexCenter, hexRadius, samples) / circleArea
}

// CirclePolygon returns a regular polygon with samples vertices inscribed in
// the circle, counter-clockwise from angle 0.
func CirclePolygon(center physics.Vec2, radius float64, samples int) []physics.Vec2 {
	return appendCirclePolygon(make([]physics.Vec2, 0, samples), center, radius, samples)
}

func appendCirclePolygon(dst []physics.Vec2, center physics.Vec2, radius float64, samples int) []physics.Vec2 {
	step := 2 * math.Pi / float64(samples)
	for i := 0; i < samples; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		dst = append(dst, physics.Vec2{X: center.X + radius*cos, Y: center.Y + radius*sin})
	}
	return dst
}

// ClipPolygon clips subject against a convex, counter-clockwise window using
// Sutherland–Hodgman. The result may be empty.
func ClipPolygon(subject, window []physics.Vec2) []physics.Vec2 {
	c := &clipper{
		in:  append(make([]physics.Vec2, 0, len(subject)+len(window)), subject...),
		out: make([]physics.Vec2, 0, len(subject)+len(window)),
	}
	return append([]physics.Vec2(nil), c.clip(window)...)
}

// clip runs every window edge over c.in and returns the surviving polygon.
// The returned slice aliases one of the clipper's buffers.
func (c *clipper) clip(window []physics.Vec2) []physics.Vec2 {
	n := len(window)
	for i := 0; i < n && len(c.in) > 0; i++ {
		a := window[i]
		b := window[(i+1)%n]
		edge := b.Sub(a)

		c.out = c.out[:0]
		prev := c.in[len(c.in)-1]
		prevInside := edge.Cross(prev.Sub(a)) >= 0

		for _, cur := range c.in {
			curInside := edge.Cross(cur.Sub(a)) >= 0
			switch {
			case curInside && prevInside:
				c.out = append(c.out, cur)
			case curInside && !prevInside:
				c.out = append(c.out, lineIntersection(prev, cur, a, b), cur)
			case !curInside && prevInside:
				c.out = append(c.out, lineIntersection(prev, cur, a, b))
			}
			prev, prevInside = cur, curInside
		}

		c.in, c.out = c.out, c.in
	}
	return c.in
}

// lineIntersection returns the point where segment p→q crosses the infinite
// line through a and b. Callers guarantee p and q lie on opposite sides.
func lineIntersection(p, q, a, b physics.Vec2) physics.Vec2 {
	edge := b.Sub(a)
	seg := q.Sub(p)
	denom := edge.Cross(seg)
	if denom == 0 {
		return q
	}
	t := edge.Cross(a.Sub(p)) / denom
	return p.Add(seg.Scale(t))
}

// PolygonArea returns the unsigned area of a simple polygon via the shoelace
// formula. Fewer than three vertices yields 0.
func PolygonArea(poly []physics.Vec2) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		sum += prev.Cross(cur)
		prev = cur
	}
	return math.Abs(sum) / 2
}
