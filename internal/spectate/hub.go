// Package spectate shares running sessions with browsers over websockets.
package spectate

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vectorrocks/internal/scene"
)

// DefaultRate is how often a spectator is sent the latest frame.
const DefaultRate = time.Second / 20

// Frame is one published snapshot of a session.
type Frame struct {
	Seq   uint64       `msgpack:"seq" json:"seq"`
	Score int          `msgpack:"score" json:"score"`
	Lives int          `msgpack:"lives" json:"lives"`
	Nodes []scene.Node `msgpack:"nodes" json:"nodes"`
}

// Hub keeps the latest frame of every live session. It is safe for
// concurrent use by session loops and spectator connections.
type Hub struct {
	// Rate is the spectator send interval. Zero means DefaultRate.
	Rate   time.Duration
	Logger *log.Logger

	mu       sync.RWMutex
	sessions map[string]Frame
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		Logger:   logger,
		sessions: make(map[string]Frame),
	}
}

// Publish replaces the latest frame for a session, registering it on
// first use.
func (h *Hub) Publish(session string, f Frame) {
	h.mu.Lock()
	_, known := h.sessions[session]
	h.sessions[session] = f
	h.mu.Unlock()

	if !known {
		h.Logger.Debug("spectate session registered", "session", session)
	}
}

// End forgets a session. Connected spectators are closed on their next tick.
func (h *Hub) End(session string) {
	h.mu.Lock()
	delete(h.sessions, session)
	h.mu.Unlock()
}

// Latest returns the current frame of a session.
func (h *Hub) Latest(session string) (Frame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	f, ok := h.sessions[session]
	return f, ok
}

// Sessions returns the ids of all live sessions, sorted.
func (h *Hub) Sessions() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (h *Hub) rate() time.Duration {
	if h.Rate <= 0 {
		return DefaultRate
	}
	return h.Rate
}
