package config

import (
	"time"

	"github.com/tomz197/vectorrocks/internal/game"
)

// Environment variables read by Game and the binaries.
const (
	EnvSeed               = "ROCKS_SEED"
	EnvAsteroids          = "ROCKS_ASTEROIDS"
	EnvLives              = "ROCKS_LIVES"
	EnvBulletHits         = "ROCKS_BULLET_HITS"
	EnvInvulnerableFrames = "ROCKS_INVULNERABLE_FRAMES"
	EnvGameOver           = "ROCKS_GAME_OVER"

	EnvLogLevel     = "LOG_LEVEL"
	EnvSpectateAddr = "SPECTATE_ADDR"
	EnvIdleTimeout  = "IDLE_TIMEOUT"
)

// DefaultIdleTimeout disconnects SSH players after two minutes without input.
const DefaultIdleTimeout = 120 * time.Second

// Game builds the world configuration from the environment, starting from
// game.DefaultConfig.
func Game() game.Config {
	cfg := game.DefaultConfig()
	cfg.Seed = GetEnvInt64(EnvSeed, cfg.Seed)
	cfg.Asteroids = GetEnvInt(EnvAsteroids, cfg.Asteroids)
	cfg.Lives = GetEnvInt(EnvLives, cfg.Lives)
	cfg.Rules.BulletHits = GetEnvBool(EnvBulletHits, cfg.Rules.BulletHits)
	cfg.Rules.InvulnerableFrames = GetEnvInt(EnvInvulnerableFrames, cfg.Rules.InvulnerableFrames)
	cfg.Rules.GameOver = GetEnvBool(EnvGameOver, cfg.Rules.GameOver)

	if cfg.Asteroids < 0 {
		cfg.Asteroids = 0
	}
	if cfg.Lives < 1 {
		cfg.Lives = game.InitialLives
	}
	if cfg.Rules.InvulnerableFrames < 0 {
		cfg.Rules.InvulnerableFrames = 0
	}
	return cfg
}
