package game

import "github.com/tomz197/vectorrocks/internal/physics"

// Bullet is a short line segment fired from the ship's position.
type Bullet struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity
	Angle    float64 // Heading at fire time, used only for drawing
	Lifetime int     // Frames remaining before removal

	node Handle
}

// bulletOutline is a segment along the local +Y axis.
var bulletOutline = []Point{
	{X: 0, Y: -BulletLength / 2},
	{X: 0, Y: BulletLength / 2},
}

// newBullet creates a bullet travelling along angle from (x, y).
func newBullet(x, y, angle float64) *Bullet {
	hx, hy := physics.Heading(angle)
	return &Bullet{
		X:        x,
		Y:        y,
		VX:       hx * BulletSpeed,
		VY:       hy * BulletSpeed,
		Angle:    angle,
		Lifetime: BulletLifetime,
	}
}

// Update moves the bullet and counts down its lifetime.
// Returns true on the frame the lifetime reaches zero.
func (b *Bullet) Update() (remove bool) {
	b.X += b.VX
	b.Y += b.VY
	physics.WrapPosition(&b.X, &b.Y, Bound)

	b.Lifetime--
	return b.Lifetime <= 0
}

// Fire spawns a bullet at the ship's position along its heading.
// It does nothing and returns false when MaxBullets are already live.
func (w *World) Fire() bool {
	if len(w.Bullets) >= MaxBullets {
		return false
	}

	b := newBullet(w.Ship.X, w.Ship.Y, w.Ship.Angle)
	b.node = w.scene.Spawn(Shape{Kind: KindBullet, Points: bulletOutline})
	w.scene.SetTransform(b.node, b.X, b.Y, b.Angle)
	w.Bullets = append(w.Bullets, b)
	return true
}

// updateBullets advances every bullet and releases expired ones.
func (w *World) updateBullets() {
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		if b.Update() {
			w.scene.Despawn(b.node)
			continue
		}
		kept = append(kept, b)
	}
	clear(w.Bullets[len(kept):])
	w.Bullets = kept
}
