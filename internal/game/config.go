package game

// World geometry. Every moving entity stays within [-Bound, Bound] on both axes.
const Bound = 20.0

// Ship
const (
	RotationStep = 0.05 // Radians per frame while a rotate key is held
	ThrustPower  = 0.01 // Velocity added per frame while thrusting
	Damping      = 0.99 // Velocity multiplier applied every frame
	ShipRadius   = 1.0  // Half-width used for collision
)

// Bullets
const (
	BulletSpeed    = 0.5
	BulletLifetime = 60 // Frames
	MaxBullets     = 5
	BulletLength   = 1.0
)

// Asteroids
const (
	AsteroidBaseRadius = 2.0
	AsteroidJitter     = 0.2  // Radius varies by ±20%
	AsteroidMaxSpeed   = 0.05 // Per axis, per frame
	InitialAsteroids   = 10
)

// Scoring and lives
const (
	InitialLives     = 3
	ScorePerAsteroid = 20
)

// Rules switch on behaviour the basic game leaves out.
// The zero value is the basic game: bullets pass through rocks, the ship
// can be hit again on the very next frame, and lives may go negative.
type Rules struct {
	BulletHits         bool // Bullets destroy asteroids and score points
	InvulnerableFrames int  // Grace period after a respawn
	GameOver           bool // Freeze the world once lives reach zero
}

// Config controls how a World is created.
type Config struct {
	Seed      int64 // 0 picks a time-based seed
	Asteroids int   // Initial field size
	Lives     int
	Rules     Rules
}

// DefaultConfig returns the standard game setup.
func DefaultConfig() Config {
	return Config{
		Asteroids: InitialAsteroids,
		Lives:     InitialLives,
	}
}
