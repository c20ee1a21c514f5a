package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     sameOrigin,
}

// sameOrigin accepts requests without an Origin header or from the host
// being served.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Handler serves the session list and the websocket feed:
//
//	GET /sessions                    JSON array of session ids
//	GET /ws?session=ID[&format=json] frame stream, msgpack unless format=json
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", h.serveSessions)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *Hub) serveSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(h.Sessions()); err != nil {
		h.Logger.Warn("write session list", "err", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	if _, ok := h.Latest(session); !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	enc := encodeMsgpack
	if r.URL.Query().Get("format") == "json" {
		enc = encodeJSON
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	h.Logger.Info("spectator connected", "session", session, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, session, enc, done)
	h.Logger.Info("spectator disconnected", "session", session, "remote", r.RemoteAddr)
}

// readPump discards client messages and keeps the read deadline fresh on
// pongs. It closes done when the connection fails.
func (h *Hub) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Logger.Debug("spectator read", "err", err)
			}
			return
		}
	}
}

type encoder func(Frame) (int, []byte, error)

func encodeMsgpack(f Frame) (int, []byte, error) {
	b, err := msgpack.Marshal(&f)
	return websocket.BinaryMessage, b, err
}

func encodeJSON(f Frame) (int, []byte, error) {
	b, err := json.Marshal(&f)
	return websocket.TextMessage, b, err
}

// writePump sends the session's latest frame every tick until the session
// ends or the connection fails. Unchanged frames are skipped.
func (h *Hub) writePump(conn *websocket.Conn, session string, enc encoder, done <-chan struct{}) {
	frames := time.NewTicker(h.rate())
	ping := time.NewTicker(pingPeriod)
	defer func() {
		frames.Stop()
		ping.Stop()
		conn.Close()
	}()

	var sent uint64
	first := true
	for {
		select {
		case <-done:
			return

		case <-frames.C:
			f, ok := h.Latest(session)
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
				conn.WriteMessage(websocket.CloseMessage, msg)
				return
			}
			if !first && f.Seq == sent {
				continue
			}
			if err := h.send(conn, enc, f); err != nil {
				h.Logger.Debug("spectator write", "session", session, "err", err)
				return
			}
			sent, first = f.Seq, false

		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) send(conn *websocket.Conn, enc encoder, f Frame) error {
	typ, data, err := enc(f)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", f.Seq, err)
	}
	if err := conn.WriteMessage(typ, data); err != nil {
		return fmt.Errorf("write frame %d: %w", f.Seq, err)
	}
	return nil
}
