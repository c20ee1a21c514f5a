package main

import (
	"os"

	"github.com/tomz197/vectorrocks/internal/config"
	"github.com/tomz197/vectorrocks/internal/logging"
	"github.com/tomz197/vectorrocks/internal/render/window"
)

func main() {
	logger := logging.New(os.Stderr, "desktop", config.GetEnv(config.EnvLogLevel, "info"))
	cfg := config.Game()
	logger.Info("opening window", "asteroids", cfg.Asteroids, "seed", cfg.Seed)

	if err := window.Run(config.GetEnv("WINDOW_TITLE", "Vector Rocks"), cfg); err != nil {
		logger.Fatal("window error", "err", err)
	}
}
