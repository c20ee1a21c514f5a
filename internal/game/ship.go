package game

import (
	"github.com/tomz197/vectorrocks/internal/input"
	"github.com/tomz197/vectorrocks/internal/physics"
)

// Controls reports which actions are held this frame.
type Controls interface {
	Pressed(a input.Action) bool
}

// Ship is the player-controlled triangle.
type Ship struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity (momentum)
	Angle  float64 // Rotation in radians, 0 = facing +Y, increases clockwise

	invulnerable int // Frames left in which asteroid contact is ignored
	node         Handle
}

// shipOutline is the triangle drawn for the ship, nose at +Y.
var shipOutline = []Point{
	{X: 0, Y: ShipRadius},
	{X: -0.7 * ShipRadius, Y: -0.7 * ShipRadius},
	{X: 0.7 * ShipRadius, Y: -0.7 * ShipRadius},
}

// Update handles rotation, thrust, momentum and wraparound.
func (s *Ship) Update(in Controls) {
	if in.Pressed(input.RotateLeft) {
		s.Angle -= RotationStep
	}
	if in.Pressed(input.RotateRight) {
		s.Angle += RotationStep
	}

	if in.Pressed(input.Thrust) {
		hx, hy := physics.Heading(s.Angle)
		s.VX += hx * ThrustPower
		s.VY += hy * ThrustPower
	}

	s.X += s.VX
	s.Y += s.VY

	s.VX *= Damping
	s.VY *= Damping

	physics.WrapPosition(&s.X, &s.Y, Bound)

	if s.invulnerable > 0 {
		s.invulnerable--
	}
}

// Respawn puts the ship back at the origin at rest.
// The heading is kept.
func (s *Ship) Respawn(graceFrames int) {
	s.X, s.Y = 0, 0
	s.VX, s.VY = 0, 0
	s.invulnerable = graceFrames
}

// Invulnerable reports whether the ship is inside its respawn grace period.
func (s *Ship) Invulnerable() bool {
	return s.invulnerable > 0
}
