package game

import "github.com/tomz197/vectorrocks/internal/physics"

// checkShipCollision handles the ship touching an asteroid.
// At most one hit is counted per frame. Returns true on a hit.
func (w *World) checkShipCollision() bool {
	if w.Ship.Invulnerable() {
		return false
	}

	for _, a := range w.Asteroids {
		if physics.Distance(w.Ship.X, w.Ship.Y, a.X, a.Y) < a.Radius+ShipRadius {
			w.Lives--
			w.Ship.Respawn(w.cfg.Rules.InvulnerableFrames)
			if w.cfg.Rules.GameOver && w.Lives <= 0 {
				w.Over = true
			}
			return true
		}
	}
	return false
}

// checkBulletHits removes every bullet/asteroid pair that touches and
// awards ScorePerAsteroid for each rock destroyed.
func (w *World) checkBulletHits() {
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		hit := -1
		for i, a := range w.Asteroids {
			if physics.PointInCircle(b.X, b.Y, a.X, a.Y, a.Radius) {
				hit = i
				break
			}
		}
		if hit < 0 {
			kept = append(kept, b)
			continue
		}
		w.scene.Despawn(b.node)
		w.removeAsteroid(hit)
		w.Score += ScorePerAsteroid
	}
	clear(w.Bullets[len(kept):])
	w.Bullets = kept
}
