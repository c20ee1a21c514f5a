// Package game holds the renderer-independent gameplay state and the
// per-frame update that drives it.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/vectorrocks/internal/input"
)

// World is the complete game state for one player.
// It is not safe for concurrent use; a single frame loop owns it.
type World struct {
	Ship      *Ship
	Bullets   []*Bullet
	Asteroids []*Asteroid
	Score     int
	Lives     int
	Over      bool   // Lives ran out under Rules.GameOver
	Frame     uint64 // Ticks since creation

	cfg      Config
	rng      *rand.Rand
	scene    Scene
	hud      hud
	fireHeld bool // Fire was held on the previous tick
}

// NewWorld creates a world, spawns its entities into scene and lays out
// the initial asteroid field.
func NewWorld(cfg Config, scene Scene) *World {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := &World{
		Ship:  &Ship{},
		Lives: cfg.Lives,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		scene: scene,
	}
	w.Ship.node = scene.Spawn(Shape{Kind: KindShip, Points: shipOutline, Closed: true})
	w.hud = newHUD(scene)
	w.SpawnField(cfg.Asteroids)
	w.sync()
	return w
}

// Config returns the configuration the world was created with.
func (w *World) Config() Config {
	return w.cfg
}

// Tick advances the world by one frame:
// ship, fire, bullets, asteroids, collisions, then scene transforms.
func (w *World) Tick(in Controls) {
	w.Frame++
	fire := in.Pressed(input.Fire)
	defer func() { w.fireHeld = fire }()

	if w.Over {
		if fire && !w.fireHeld {
			w.Restart()
		}
		return
	}

	w.Ship.Update(in)
	if fire {
		w.Fire()
	}
	w.updateBullets()
	w.updateAsteroids()
	if w.cfg.Rules.BulletHits {
		w.checkBulletHits()
	}
	w.checkShipCollision()
	w.sync()
}

// Restart clears the field and starts a fresh game with the same config.
func (w *World) Restart() {
	for _, b := range w.Bullets {
		w.scene.Despawn(b.node)
	}
	clear(w.Bullets)
	w.Bullets = w.Bullets[:0]
	for i := len(w.Asteroids) - 1; i >= 0; i-- {
		w.removeAsteroid(i)
	}

	w.Ship.Angle = 0
	w.Ship.Respawn(w.cfg.Rules.InvulnerableFrames)
	w.Score = 0
	w.Lives = w.cfg.Lives
	w.Over = false
	w.SpawnField(w.cfg.Asteroids)
	w.sync()
}

// sync pushes entity transforms and HUD text to the scene.
func (w *World) sync() {
	w.scene.SetTransform(w.Ship.node, w.Ship.X, w.Ship.Y, w.Ship.Angle)
	for _, b := range w.Bullets {
		w.scene.SetTransform(b.node, b.X, b.Y, b.Angle)
	}
	for _, a := range w.Asteroids {
		w.scene.SetTransform(a.node, a.X, a.Y, 0)
	}
	w.hud.update(w.scene, w.Score, w.Lives, w.Over)
}
