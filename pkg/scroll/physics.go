package scroll

import "math"

// Physics determines scroll behavior.
type Physics interface {
	ApplyPhysicsToUserOffset(position *Position, offset float64) float64
	ApplyBoundaryConditions(position *Position, value float64) float64
}

// ClampingPhysics clamps at edges (Android default).
type ClampingPhysics struct{}

// ApplyPhysicsToUserOffset returns the raw delta for clamping physics.
func (ClampingPhysics) ApplyPhysicsToUserOffset(_ *Position, offset float64) float64 {
	return offset
}

// ApplyBoundaryConditions clamps at the min/max extents.
func (ClampingPhysics) ApplyBoundaryConditions(position *Position, value float64) float64 {
	if value < position.min {
		return value - position.min
	}
	if value > position.max {
		return value - position.max
	}
	return 0
}

// BouncingPhysics lets content be dragged past its edges with increasing
// resistance. Pull-to-refresh requires it: with clamping physics the offset
// never goes negative and the header can never arm.
type BouncingPhysics struct {
	// MinResistance is the floor of the drag multiplier deep into
	// overscroll. Zero means 0.12.
	MinResistance float64
}

// ApplyPhysicsToUserOffset reduces delta when overscrolling.
func (b BouncingPhysics) ApplyPhysicsToUserOffset(position *Position, offset float64) float64 {
	if (position.offset <= position.min && offset < 0) || (position.offset >= position.max && offset > 0) {
		overscroll := 0.0
		if position.offset < position.min {
			overscroll = position.min - position.offset
		} else if position.offset > position.max {
			overscroll = position.offset - position.max
		}
		fraction := overscroll / viewportExtentForPosition(position)
		// Progressive resistance near edges to match the rubber-band feel.
		resistance := 1.0 / (1.0 + 2.4*fraction)
		floor := b.MinResistance
		if floor <= 0 {
			floor = 0.12
		}
		if resistance < floor {
			resistance = floor
		}
		return offset * resistance
	}
	return offset
}

// ApplyBoundaryConditions never rejects overscroll; the position's overscroll
// limit still bounds runaway offsets.
func (BouncingPhysics) ApplyBoundaryConditions(_ *Position, _ float64) float64 {
	return 0
}

func isBouncing(physics Physics) bool {
	switch physics.(type) {
	case BouncingPhysics, *BouncingPhysics:
		return true
	default:
		return false
	}
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
