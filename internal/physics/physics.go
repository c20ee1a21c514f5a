// Package physics provides collision detection, distance and wraparound utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// Wrap teleports v to the opposite edge when it leaves [-bound, bound].
// Values already inside the range are returned unchanged.
func Wrap(v, bound float64) float64 {
	switch {
	case v > bound:
		return -bound
	case v < -bound:
		return bound
	}
	return v
}

// WrapPosition applies Wrap to both axes in place.
func WrapPosition(x, y *float64, bound float64) {
	*x = Wrap(*x, bound)
	*y = Wrap(*y, bound)
}

// Heading returns the unit vector for a rotation angle where 0 faces +Y
// and positive angles turn clockwise.
func Heading(angle float64) (x, y float64) {
	return math.Sin(angle), math.Cos(angle)
}
