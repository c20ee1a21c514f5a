// Package loop runs one terminal game session: a fixed-rate
// Input → Update → Draw cycle around a game.World.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vectorrocks/internal/draw"
	"github.com/tomz197/vectorrocks/internal/game"
	"github.com/tomz197/vectorrocks/internal/input"
	"github.com/tomz197/vectorrocks/internal/render"
	"github.com/tomz197/vectorrocks/internal/scene"
	"github.com/tomz197/vectorrocks/internal/spectate"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// ErrIdle is returned by Run when the session saw no input for
// Options.IdleTimeout.
var ErrIdle = errors.New("session idle")

// Publisher receives snapshots of a running session.
type Publisher interface {
	Publish(session string, f spectate.Frame)
	End(session string)
}

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Game         game.Config
	Logger       *log.Logger

	// Publisher, when set, gets a frame every PublishEvery frames
	// (every frame when PublishEvery <= 1) under SessionID.
	Publisher    Publisher
	SessionID    string
	PublishEvery int

	// IdleTimeout ends the session after that long without a keypress.
	// Zero disables it.
	IdleTimeout time.Duration
}

// Run plays a game reading keys from r and drawing to w. It blocks until
// the player quits, r closes, ctx is cancelled or the session goes idle.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	graph := scene.NewGraph()
	world := game.NewWorld(opts.Game, graph)
	term := render.NewTerminal(w, opts.TermSizeFunc)
	stream := input.StartStream(r)
	var keys input.State

	term.Start()
	defer term.Stop()

	if opts.Publisher != nil {
		defer opts.Publisher.End(opts.SessionID)
	}

	lastInput := time.Now()
	for {
		frameStart := time.Now()

		// ===== INPUT PHASE =====
		poll := stream.Drain(&keys, frameStart)
		if poll.Quit {
			logger.Debug("session quit", "session", opts.SessionID, "frame", world.Frame, "score", world.Score)
			return nil
		}
		if poll.Activity {
			lastInput = frameStart
		} else if opts.IdleTimeout > 0 && frameStart.Sub(lastInput) >= opts.IdleTimeout {
			logger.Info("disconnecting idle session", "session", opts.SessionID, "idle", opts.IdleTimeout)
			return ErrIdle
		}

		// ===== UPDATE PHASE =====
		world.Tick(&keys)

		// ===== DRAW PHASE =====
		nodes := graph.Nodes()
		if err := term.Draw(nodes); err != nil {
			return fmt.Errorf("draw frame %d: %w", world.Frame, err)
		}
		if opts.Publisher != nil && shouldPublish(world.Frame, opts.PublishEvery) {
			opts.Publisher.Publish(opts.SessionID, spectate.Frame{
				Seq:   world.Frame,
				Score: world.Score,
				Lives: world.Lives,
				Nodes: nodes,
			})
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		wait := targetFrameTime - elapsed
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func shouldPublish(frame uint64, every int) bool {
	if every <= 1 {
		return true
	}
	return frame%uint64(every) == 0
}
