package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/vectorrocks/internal/config"
	rlog "github.com/tomz197/vectorrocks/internal/logging"
	"github.com/tomz197/vectorrocks/internal/loop"
	"github.com/tomz197/vectorrocks/internal/spectate"
)

const localSession = "local"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The game owns the screen, so only errors are logged by default.
	logger := rlog.New(os.Stderr, "game", config.GetEnv(config.EnvLogLevel, "error"))
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Game:      config.Game(),
		Logger:    logger,
		SessionID: localSession,
	}

	if addr := config.GetEnv(config.EnvSpectateAddr, ""); addr != "" {
		hub := spectate.NewHub(logger)
		srv := &http.Server{Addr: addr, Handler: hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		defer srv.Close()
		opts.Publisher = hub
		opts.PublishEvery = 3
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
