package physics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeZeroVector(t *testing.T) {
	assert.Equal(t, Zero, Vec2{}.Normalize())
	assert.InDelta(t, 1.0, V(3, 4).Normalize().Length(), 1e-12)
}

func TestRotateQuarterTurn(t *testing.T) {
	r := V(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, r.X, 1e-12)
	assert.InDelta(t, 1.0, r.Y, 1e-12)
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(-math.Pi / 6)
	assert.InDelta(t, math.Sqrt(3)/2, v.X, 1e-12)
	assert.InDelta(t, -0.5, v.Y, 1e-12)
}

func TestResolveCollisionHeadOn(t *testing.T) {
	v1, v2, ok := ResolveCollision(V(0, 0), V(100, 0), 10, V(20, 0), V(-100, 0), 10)
	require.True(t, ok)
	assert.Equal(t, V(-85, 0), v1)
	assert.Equal(t, V(85, 0), v2)
}

func TestResolveCollisionSeparating(t *testing.T) {
	_, _, ok := ResolveCollision(V(0, 0), V(-50, 0), 10, V(15, 0), V(50, 0), 10)
	assert.False(t, ok)

	_, _, ok = ResolveCollision(V(0, 0), V(10, 0), 10, V(15, 0), V(10, 0), 10)
	assert.False(t, ok, "parallel motion has no closing speed")
}

func TestResolveCollisionNoOverlap(t *testing.T) {
	_, _, ok := ResolveCollision(V(0, 0), V(100, 0), 10, V(50, 0), V(-100, 0), 10)
	assert.False(t, ok)

	_, _, ok = ResolveCollision(V(0, 0), V(100, 0), 10, V(20.001, 0), V(-100, 0), 10)
	assert.False(t, ok)
}

func TestResolveCollisionCoincidentUsesXAxis(t *testing.T) {
	v1, v2, ok := ResolveCollision(V(5, 5), V(10, 3), 10, V(5, 5), V(0, 3), 10)
	require.True(t, ok)
	assert.False(t, math.IsNaN(v1.X) || math.IsNaN(v2.X))
	assert.Equal(t, 3.0, v1.Y)
	assert.Equal(t, 3.0, v2.Y)
	assert.Less(t, v1.X, 10.0)
	assert.Greater(t, v2.X, 0.0)
}

func TestResolveCollisionConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		p1 := V(rng.Float64()*10, rng.Float64()*10)
		p2 := p1.Add(FromAngle(rng.Float64() * 2 * math.Pi).Scale(rng.Float64() * 19))
		v1 := V(rng.Float64()*400-200, rng.Float64()*400-200)
		v2 := V(rng.Float64()*400-200, rng.Float64()*400-200)

		n1, n2, ok := ResolveCollisionWithRestitution(p1, v1, 10, p2, v2, 10, 1.0)
		if !ok {
			continue
		}
		before := v1.Add(v2)
		after := n1.Add(n2)
		assert.InDelta(t, before.X, after.X, 1e-9)
		assert.InDelta(t, before.Y, after.Y, 1e-9)
		assert.InDelta(t, v1.LengthSq()+v2.LengthSq(), n1.LengthSq()+n2.LengthSq(), 1e-6)

		d1, d2, ok := ResolveCollision(p1, v1, 10, p2, v2, 10)
		require.True(t, ok)
		assert.Less(t, d1.LengthSq()+d2.LengthSq(), v1.LengthSq()+v2.LengthSq())
	}
}
