package game

import (
	"math"
	"testing"

	"github.com/tomz197/vectorrocks/internal/input"
)

// fakeScene records every call the game makes to its renderer.
type fakeScene struct {
	next       Handle
	live       map[Handle]Shape
	transforms map[Handle][3]float64
	texts      map[Handle]string
	textWrites map[Handle]int
	despawned  []Handle
}

func newFakeScene() *fakeScene {
	return &fakeScene{
		live:       make(map[Handle]Shape),
		transforms: make(map[Handle][3]float64),
		texts:      make(map[Handle]string),
		textWrites: make(map[Handle]int),
	}
}

func (f *fakeScene) Spawn(shape Shape) Handle {
	f.next++
	f.live[f.next] = shape
	return f.next
}

func (f *fakeScene) Despawn(h Handle) {
	delete(f.live, h)
	f.despawned = append(f.despawned, h)
}

func (f *fakeScene) SetTransform(h Handle, x, y, rotation float64) {
	f.transforms[h] = [3]float64{x, y, rotation}
}

func (f *fakeScene) SetText(h Handle, text string) {
	f.texts[h] = text
	f.textWrites[h]++
}

func (f *fakeScene) count(kind Kind) int {
	n := 0
	for _, s := range f.live {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func emptyWorld(t *testing.T, rules Rules) (*World, *fakeScene) {
	t.Helper()
	scene := newFakeScene()
	cfg := Config{Seed: 1, Asteroids: 0, Lives: InitialLives, Rules: rules}
	return NewWorld(cfg, scene), scene
}

func held(actions ...input.Action) *input.State {
	var s input.State
	for _, a := range actions {
		s.Set(a, true)
	}
	return &s
}

func TestSpawnField(t *testing.T) {
	scene := newFakeScene()
	cfg := DefaultConfig()
	cfg.Seed = 42
	w := NewWorld(cfg, scene)

	if len(w.Asteroids) != 10 {
		t.Fatalf("got %d asteroids, want 10", len(w.Asteroids))
	}
	if n := scene.count(KindAsteroid); n != 10 {
		t.Errorf("scene has %d asteroid nodes, want 10", n)
	}
	for i, a := range w.Asteroids {
		if a.Radius < 1.6 || a.Radius > 2.4 {
			t.Errorf("asteroid %d radius %v outside [1.6, 2.4]", i, a.Radius)
		}
		if math.Abs(a.X) > Bound || math.Abs(a.Y) > Bound {
			t.Errorf("asteroid %d at (%v, %v) outside bounds", i, a.X, a.Y)
		}
		if math.Abs(a.VX) > AsteroidMaxSpeed || math.Abs(a.VY) > AsteroidMaxSpeed {
			t.Errorf("asteroid %d velocity (%v, %v) too fast", i, a.VX, a.VY)
		}
		if len(a.Outline) < 8 {
			t.Errorf("asteroid %d outline has %d points", i, len(a.Outline))
		}
	}
}

func TestSeededWorldsMatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	a := NewWorld(cfg, newFakeScene())
	b := NewWorld(cfg, newFakeScene())
	for i := range a.Asteroids {
		if a.Asteroids[i].X != b.Asteroids[i].X || a.Asteroids[i].Radius != b.Asteroids[i].Radius {
			t.Fatalf("asteroid %d differs between identically seeded worlds", i)
		}
	}
}

func TestShipRotation(t *testing.T) {
	tests := []struct {
		name string
		in   *input.State
		want float64
	}{
		{"left", held(input.RotateLeft), -RotationStep},
		{"right", held(input.RotateRight), RotationStep},
		{"none", held(), 0},
		{"both", held(input.RotateLeft, input.RotateRight), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Ship{Angle: 1}
			s.Update(tt.in)
			if got := s.Angle - 1; math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("angle changed by %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShipThrustAndDamping(t *testing.T) {
	s := &Ship{}
	s.Update(held(input.Thrust))

	if s.X != 0 {
		t.Errorf("X = %v, want 0 when facing +Y", s.X)
	}
	if math.Abs(s.Y-ThrustPower) > 1e-12 {
		t.Errorf("Y = %v, want %v", s.Y, ThrustPower)
	}
	if want := ThrustPower * Damping; math.Abs(s.VY-want) > 1e-12 {
		t.Errorf("VY = %v, want %v", s.VY, want)
	}

	s.Update(held())
	if want := ThrustPower * Damping * Damping; math.Abs(s.VY-want) > 1e-12 {
		t.Errorf("VY after coasting = %v, want %v", s.VY, want)
	}
}

func TestShipWrapsAroundEdge(t *testing.T) {
	s := &Ship{X: 19.95, Y: 5, VX: 0.1}
	s.Update(held())
	if s.X != -Bound || s.Y != 5 {
		t.Errorf("ship at (%v, %v), want (-20, 5)", s.X, s.Y)
	}
}

func TestEntitiesMoveByVelocityThenWrap(t *testing.T) {
	w, _ := emptyWorld(t, Rules{})
	w.Ship.X, w.Ship.Y = -15, -15
	a := w.SpawnAsteroid(19.98, 3, 0.04, -0.01, 2)
	w.Fire()
	b := w.Bullets[0]
	b.X, b.Y = 0, -19.8

	ay := a.Y + a.VY
	bx, by := b.X+b.VX, b.Y+b.VY
	w.Tick(held())

	if a.X != -Bound || math.Abs(a.Y-ay) > 1e-12 {
		t.Errorf("asteroid at (%v, %v), want (-20, %v)", a.X, a.Y, ay)
	}
	if math.Abs(b.X-bx) > 1e-12 || math.Abs(b.Y-by) > 1e-12 {
		t.Errorf("bullet at (%v, %v), want (%v, %v)", b.X, b.Y, bx, by)
	}
}

func TestBulletLifetime(t *testing.T) {
	w, scene := emptyWorld(t, Rules{})
	if !w.Fire() {
		t.Fatal("Fire should succeed with an empty pool")
	}
	b := w.Bullets[0]
	node := b.node

	for i := 1; i < BulletLifetime; i++ {
		prev := b.Lifetime
		w.Tick(held())
		if len(w.Bullets) != 1 {
			t.Fatalf("bullet removed early on tick %d", i)
		}
		if b.Lifetime != prev-1 {
			t.Fatalf("tick %d: lifetime %d, want %d", i, b.Lifetime, prev-1)
		}
	}

	w.Tick(held())
	if len(w.Bullets) != 0 {
		t.Fatalf("bullet should be removed when lifetime reaches 0")
	}
	if _, ok := scene.live[node]; ok {
		t.Error("expired bullet node should be despawned")
	}
}

func TestBulletCap(t *testing.T) {
	w, scene := emptyWorld(t, Rules{})

	fired := 0
	for i := 0; i < 20; i++ {
		if w.Fire() {
			fired++
		}
		if len(w.Bullets) > MaxBullets {
			t.Fatalf("pool grew to %d", len(w.Bullets))
		}
	}
	if fired != MaxBullets {
		t.Errorf("fired %d bullets, want %d", fired, MaxBullets)
	}
	if n := scene.count(KindBullet); n != MaxBullets {
		t.Errorf("scene has %d bullet nodes, want %d", n, MaxBullets)
	}
}

func TestHeldFireRespectsCap(t *testing.T) {
	w, _ := emptyWorld(t, Rules{})
	fire := held(input.Fire)
	for i := 0; i < 10; i++ {
		w.Tick(fire)
		if len(w.Bullets) > MaxBullets {
			t.Fatalf("tick %d: %d bullets live", i, len(w.Bullets))
		}
	}
	if len(w.Bullets) != MaxBullets {
		t.Errorf("got %d bullets, want %d", len(w.Bullets), MaxBullets)
	}
}

func TestBulletFollowsHeading(t *testing.T) {
	w, _ := emptyWorld(t, Rules{})
	w.Ship.Angle = math.Pi / 2
	w.Fire()
	b := w.Bullets[0]
	if math.Abs(b.VX-BulletSpeed) > 1e-12 || math.Abs(b.VY) > 1e-12 {
		t.Errorf("velocity (%v, %v), want (%v, 0)", b.VX, b.VY, BulletSpeed)
	}
	if b.Lifetime != BulletLifetime {
		t.Errorf("lifetime %d, want %d", b.Lifetime, BulletLifetime)
	}
}

func TestShipAsteroidCollision(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		wantLives int
		wantReset bool
	}{
		{"overlapping", 0.5, InitialLives - 1, true},
		{"clear", 1.5, InitialLives, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := emptyWorld(t, Rules{})
			const radius = 2.0
			w.SpawnAsteroid(radius+tt.offset, 0, 0, 0, radius)
			w.Ship.VX, w.Ship.VY = 0.001, 0

			w.Tick(held())

			if w.Lives != tt.wantLives {
				t.Errorf("lives = %d, want %d", w.Lives, tt.wantLives)
			}
			s := w.Ship
			reset := s.X == 0 && s.Y == 0 && s.VX == 0 && s.VY == 0
			if reset != tt.wantReset {
				t.Errorf("ship reset = %v, want %v (pos %v,%v vel %v,%v)", reset, tt.wantReset, s.X, s.Y, s.VX, s.VY)
			}
		})
	}
}

func TestRepeatedHitsWithoutGrace(t *testing.T) {
	w, _ := emptyWorld(t, Rules{})
	w.SpawnAsteroid(0, 0, 0, 0, 2)

	for i := 0; i < 5; i++ {
		w.Tick(held())
	}
	if w.Lives != InitialLives-5 {
		t.Errorf("lives = %d, want %d", w.Lives, InitialLives-5)
	}
	if w.Over {
		t.Error("game should never end without Rules.GameOver")
	}
}

func TestInvulnerableFrames(t *testing.T) {
	w, _ := emptyWorld(t, Rules{InvulnerableFrames: 30})
	w.SpawnAsteroid(0, 0, 0, 0, 2)

	for i := 0; i < 30; i++ {
		w.Tick(held())
	}
	if w.Lives != InitialLives-1 {
		t.Fatalf("lives = %d, want %d during grace period", w.Lives, InitialLives-1)
	}

	w.Tick(held())
	if w.Lives != InitialLives-2 {
		t.Errorf("lives = %d, want %d after grace period", w.Lives, InitialLives-2)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	w, scene := emptyWorld(t, Rules{GameOver: true})
	w.Lives = 1
	rock := w.SpawnAsteroid(0, 0, 0, 0, 2)

	w.Tick(held())
	if !w.Over || w.Lives != 0 {
		t.Fatalf("over = %v lives = %d, want over with 0 lives", w.Over, w.Lives)
	}
	if got := scene.texts[w.hud.lives]; got != GameOverText {
		t.Errorf("lives text = %q, want %q", got, GameOverText)
	}

	w.Tick(held())
	if w.Lives != 0 {
		t.Errorf("frozen world lost another life")
	}

	w.Tick(held(input.Fire))
	if w.Over || w.Lives != InitialLives || w.Score != 0 {
		t.Errorf("after restart over = %v lives = %d score = %d", w.Over, w.Lives, w.Score)
	}
	if _, ok := scene.live[rock.node]; ok {
		t.Error("restart should despawn the old field")
	}
	if got := scene.texts[w.hud.lives]; got != LivesText(InitialLives) {
		t.Errorf("lives text = %q after restart", got)
	}
}

func TestBulletsPassThroughByDefault(t *testing.T) {
	w, _ := emptyWorld(t, Rules{})
	w.SpawnAsteroid(0, 5, 0, 0, 2)

	w.Tick(held(input.Fire))
	for i := 0; i < 10; i++ {
		w.Tick(held())
	}
	if len(w.Asteroids) != 1 || w.Score != 0 {
		t.Errorf("asteroids = %d score = %d, want 1 and 0", len(w.Asteroids), w.Score)
	}
}

func TestBulletHits(t *testing.T) {
	w, scene := emptyWorld(t, Rules{BulletHits: true})
	rock := w.SpawnAsteroid(0, 5, 0, 0, 2)

	w.Tick(held(input.Fire))
	for i := 0; i < 10 && len(w.Asteroids) > 0; i++ {
		w.Tick(held())
	}

	if len(w.Asteroids) != 0 {
		t.Fatal("bullet should destroy the asteroid")
	}
	if len(w.Bullets) != 0 {
		t.Error("bullet should be consumed by the hit")
	}
	if w.Score != ScorePerAsteroid {
		t.Errorf("score = %d, want %d", w.Score, ScorePerAsteroid)
	}
	if _, ok := scene.live[rock.node]; ok {
		t.Error("destroyed asteroid node should be despawned")
	}
	if got := scene.texts[w.hud.score]; got != ScoreText(ScorePerAsteroid) {
		t.Errorf("score text = %q", got)
	}
}

func TestHUDUpdatesOnlyOnChange(t *testing.T) {
	w, scene := emptyWorld(t, Rules{})
	if got := scene.texts[w.hud.score]; got != "Score: 0" {
		t.Errorf("score text = %q, want %q", got, "Score: 0")
	}
	if got := scene.texts[w.hud.lives]; got != "Lives: 3" {
		t.Errorf("lives text = %q, want %q", got, "Lives: 3")
	}

	for i := 0; i < 5; i++ {
		w.Tick(held())
	}
	if n := scene.textWrites[w.hud.lives]; n != 1 {
		t.Errorf("lives text written %d times without a change", n)
	}

	w.SpawnAsteroid(0, 0, 0, 0, 2)
	w.Tick(held())
	if got := scene.texts[w.hud.lives]; got != "Lives: 2" {
		t.Errorf("lives text = %q, want %q", got, "Lives: 2")
	}
	if n := scene.textWrites[w.hud.score]; n != 1 {
		t.Errorf("score text written %d times, want 1", n)
	}
}

func TestTickPushesTransforms(t *testing.T) {
	w, scene := emptyWorld(t, Rules{})
	w.Tick(held(input.Thrust, input.RotateRight))

	got := scene.transforms[w.Ship.node]
	want := [3]float64{w.Ship.X, w.Ship.Y, w.Ship.Angle}
	if got != want {
		t.Errorf("ship transform %v, want %v", got, want)
	}
	if w.Frame != 1 {
		t.Errorf("frame = %d, want 1", w.Frame)
	}
}
