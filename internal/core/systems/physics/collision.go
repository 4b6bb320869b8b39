package physics

// DefaultRestitution is the coefficient of restitution between two stones.
// 1.0 is perfectly elastic, 0.0 perfectly inelastic.
const DefaultRestitution = 0.85

// ResolveCollision checks two equal-mass discs for overlap and returns their
// post-impact velocities. ok is false when the discs are apart or not
// approaching each other along the collision normal.
//
// The contact test is distance² <= (radius1+radius2)²: discs whose centers are
// exactly one radius sum apart are resolved, so stones placed edge to edge
// collide on the first tick.
func ResolveCollision(pos1, vel1 Vec2, radius1 float64, pos2, vel2 Vec2, radius2 float64) (newVel1, newVel2 Vec2, ok bool) {
	return ResolveCollisionWithRestitution(pos1, vel1, radius1, pos2, vel2, radius2, DefaultRestitution)
}

// ResolveCollisionWithRestitution is ResolveCollision with an explicit
// coefficient of restitution.
func ResolveCollisionWithRestitution(
	pos1, vel1 Vec2, radius1 float64,
	pos2, vel2 Vec2, radius2 float64,
	restitution float64,
) (newVel1, newVel2 Vec2, ok bool) {
	minDistance := radius1 + radius2
	if pos1.DistanceSq(pos2) > minDistance*minDistance {
		return vel1, vel2, false
	}

	// Normal points from stone 1 to stone 2
	normal := pos2.Sub(pos1).Normalize()
	if normal.IsZero() {
		normal = UnitX
	}

	closing := vel1.Sub(vel2).Dot(normal)
	if closing <= 0 {
		return vel1, vel2, false
	}

	// Equal masses: J = (1+e) * v_n / 2
	impulseScalar := (closing + restitution*closing) / 2
	impulse := normal.Scale(impulseScalar)

	return vel1.Sub(impulse), vel2.Add(impulse), true
}
