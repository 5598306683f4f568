package animation

import "math"

// SpringDescription describes a damped spring.
type SpringDescription struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

// IOSSpring returns a critically damped spring tuned to feel like the
// rubber-band snap back of a native scroll view.
func IOSSpring() SpringDescription {
	const mass, stiffness = 1.0, 180.0
	return SpringDescription{
		Mass:      mass,
		Stiffness: stiffness,
		Damping:   2 * math.Sqrt(mass*stiffness),
	}
}

// Spring tolerances: a simulation is done once it is this close to rest.
const (
	springPositionTolerance = 0.5
	springVelocityTolerance = 5.0
	springMaxStep           = 1.0 / 240
)

// SpringSimulation integrates a spring pulling a value toward a target.
type SpringSimulation struct {
	spring   SpringDescription
	position float64
	velocity float64
	target   float64
	done     bool
}

// NewSpringSimulation starts a simulation at position with the given
// velocity, pulled toward target.
func NewSpringSimulation(spring SpringDescription, position, velocity, target float64) *SpringSimulation {
	if spring.Mass <= 0 {
		spring.Mass = 1
	}
	s := &SpringSimulation{
		spring:   spring,
		position: position,
		velocity: velocity,
		target:   target,
	}
	s.done = s.atRest()
	if s.done {
		s.position = target
		s.velocity = 0
	}
	return s
}

// Step advances the simulation by dt seconds and reports whether it has
// settled. A settled simulation snaps exactly to its target.
func (s *SpringSimulation) Step(dt float64) bool {
	if s.done || dt <= 0 {
		return s.done
	}
	for dt > 0 {
		h := math.Min(dt, springMaxStep)
		dt -= h
		displacement := s.position - s.target
		accel := (-s.spring.Stiffness*displacement - s.spring.Damping*s.velocity) / s.spring.Mass
		s.velocity += accel * h
		s.position += s.velocity * h
	}
	if s.atRest() {
		s.position = s.target
		s.velocity = 0
		s.done = true
	}
	return s.done
}

// Position returns the current value.
func (s *SpringSimulation) Position() float64 { return s.position }

// Velocity returns the current velocity in units per second.
func (s *SpringSimulation) Velocity() float64 { return s.velocity }

// Target returns the rest position.
func (s *SpringSimulation) Target() float64 { return s.target }

// IsDone reports whether the simulation has settled.
func (s *SpringSimulation) IsDone() bool { return s.done }

func (s *SpringSimulation) atRest() bool {
	return math.Abs(s.position-s.target) < springPositionTolerance &&
		math.Abs(s.velocity) < springVelocityTolerance
}
