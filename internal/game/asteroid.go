package game

import (
	"math"

	"github.com/tomz197/vectorrocks/internal/physics"
)

// Asteroid is a drifting rock with an irregular outline.
type Asteroid struct {
	X, Y    float64 // Position (center)
	VX, VY  float64 // Velocity
	Radius  float64 // Collision and draw radius
	Outline []Point // Local vertices, jittered around Radius

	node Handle
}

// Update moves the asteroid and wraps it around the world edges.
func (a *Asteroid) Update() {
	a.X += a.VX
	a.Y += a.VY
	physics.WrapPosition(&a.X, &a.Y, Bound)
}

// jitter returns base scaled by a random factor in [1-AsteroidJitter, 1+AsteroidJitter).
func (w *World) jitter(base float64) float64 {
	return base * (1 - AsteroidJitter + w.rng.Float64()*2*AsteroidJitter)
}

// asteroidOutline generates 8 to 11 vertices evenly spaced by angle with
// jittered distances so each rock looks different.
func (w *World) asteroidOutline(radius float64) []Point {
	n := 8 + w.rng.Intn(4)
	points := make([]Point, n)
	for i := range points {
		angle := float64(i) * 2 * math.Pi / float64(n)
		dist := w.jitter(radius)
		points[i] = Point{X: math.Sin(angle) * dist, Y: math.Cos(angle) * dist}
	}
	return points
}

// SpawnAsteroid adds a single asteroid to the field.
func (w *World) SpawnAsteroid(x, y, vx, vy, radius float64) *Asteroid {
	a := &Asteroid{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Radius:  radius,
		Outline: w.asteroidOutline(radius),
	}
	a.node = w.scene.Spawn(Shape{Kind: KindAsteroid, Points: a.Outline, Closed: true})
	w.scene.SetTransform(a.node, a.X, a.Y, 0)
	w.Asteroids = append(w.Asteroids, a)
	return a
}

// SpawnField creates count asteroids at random positions inside the world
// with small random velocities and jittered radii.
func (w *World) SpawnField(count int) {
	for i := 0; i < count; i++ {
		x := (w.rng.Float64()*2 - 1) * Bound
		y := (w.rng.Float64()*2 - 1) * Bound
		vx := (w.rng.Float64()*2 - 1) * AsteroidMaxSpeed
		vy := (w.rng.Float64()*2 - 1) * AsteroidMaxSpeed
		w.SpawnAsteroid(x, y, vx, vy, w.jitter(AsteroidBaseRadius))
	}
}

func (w *World) updateAsteroids() {
	for _, a := range w.Asteroids {
		a.Update()
	}
}

// removeAsteroid despawns the asteroid at index i.
func (w *World) removeAsteroid(i int) {
	w.scene.Despawn(w.Asteroids[i].node)
	last := len(w.Asteroids) - 1
	copy(w.Asteroids[i:], w.Asteroids[i+1:])
	w.Asteroids[last] = nil
	w.Asteroids = w.Asteroids[:last]
}
