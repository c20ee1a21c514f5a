package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/vectorrocks/internal/config"
	"github.com/tomz197/vectorrocks/internal/draw"
	rlog "github.com/tomz197/vectorrocks/internal/logging"
	"github.com/tomz197/vectorrocks/internal/loop"
	"github.com/tomz197/vectorrocks/internal/spectate"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	publishEvery       = 3
)

type server struct {
	logger      *log.Logger
	hub         *spectate.Hub // nil when spectating is disabled
	idleTimeout time.Duration
	root        context.Context
	nextID      atomic.Uint64
	sessions    sync.WaitGroup
}

func main() {
	logger := rlog.New(os.Stderr, "ssh", config.GetEnv(config.EnvLogLevel, "info"))
	log.SetDefault(logger)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	spectateAddr := config.GetEnv(config.EnvSpectateAddr, "")
	gameCfg := config.Game()
	logger.Info("ssh config",
		"host", host, "port", port, "hostKeyPath", hostKeyPath,
		"spectate", spectateAddr, "asteroids", gameCfg.Asteroids, "rules", fmt.Sprintf("%+v", gameCfg.Rules))

	root, stop := context.WithCancel(context.Background())
	defer stop()

	srv := &server{
		logger:      logger,
		idleTimeout: config.GetEnvDuration(config.EnvIdleTimeout, config.DefaultIdleTimeout),
		root:        root,
	}

	var spectateSrv *http.Server
	if spectateAddr != "" {
		srv.hub = spectate.NewHub(logger.WithPrefix("spectate"))
		spectateSrv = &http.Server{Addr: spectateAddr, Handler: srv.hub.Handler()}
		go func() {
			logger.Info("starting spectator feed", "addr", spectateAddr)
			if err := spectateSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// End running games so their sessions can close cleanly.
	stop()
	srv.sessions.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if spectateSrv != nil {
		if err := spectateSrv.Shutdown(ctx); err != nil {
			logger.Error("spectator shutdown", "err", err)
		}
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per PTY session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		srv.sessions.Add(1)
		defer srv.sessions.Done()

		id := fmt.Sprintf("%s-%d", sess.User(), srv.nextID.Add(1))
		logger := srv.logger.With("session", id)
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		defer context.AfterFunc(srv.root, cancel)()

		opts := loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Game:         config.Game(),
			Logger:       logger,
			SessionID:    id,
			PublishEvery: publishEvery,
			IdleTimeout:  srv.idleTimeout,
		}
		if srv.hub != nil {
			opts.Publisher = srv.hub
		}

		err := loop.Run(ctx, bufio.NewReader(sess), sess, opts)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case errors.Is(err, loop.ErrIdle):
			fmt.Fprintln(sess, "Disconnected after inactivity.")
		default:
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
