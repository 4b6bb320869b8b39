// Package stone holds the discs that slide across a level.
package stone

import (
	"github.com/google/uuid"

	"github.com/zeusync/hexcurl/internal/core/systems/physics"
)

// Stone is a moving disc. Velocity is in world units per second.
type Stone struct {
	ID       uuid.UUID
	Radius   float64
	Position physics.Vec2
	Velocity physics.Vec2
}

// New creates a stone with a fresh ID.
func New(radius float64, position, velocity physics.Vec2) Stone {
	return Stone{
		ID:       uuid.New(),
		Radius:   radius,
		Position: position,
		Velocity: velocity,
	}
}

// Speed returns the length of the velocity.
func (s Stone) Speed() float64 { return s.Velocity.Length() }

// Moving reports whether the stone is at least minVelocity fast.
func (s Stone) Moving(minVelocity float64) bool {
	return s.Velocity.LengthSq() >= minVelocity*minVelocity
}

// Clone copies a stone slice.
func Clone(stones []Stone) []Stone {
	return append([]Stone(nil), stones...)
}
