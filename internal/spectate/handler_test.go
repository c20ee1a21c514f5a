package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/vectorrocks/internal/game"
	"github.com/tomz197/vectorrocks/internal/scene"
)

func startTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(log.New(io.Discard))
	hub.Rate = 5 * time.Millisecond
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)
	return hub, srv
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
}

func testFrame(seq uint64) Frame {
	return Frame{
		Seq:   seq,
		Score: 40,
		Lives: 2,
		Nodes: []scene.Node{{
			ID:     1,
			Kind:   game.KindShip,
			Points: []game.Point{{X: 0, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}},
			Closed: true,
			X:      3,
			Y:      -4,
		}},
	}
}

func TestSessionsList(t *testing.T) {
	hub, srv := startTestServer(t)
	hub.Publish("b", testFrame(1))
	hub.Publish("a", testFrame(1))

	resp, err := http.Get(srv.URL + "/sessions")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("sessions = %v, want [a b]", ids)
	}

	hub.End("a")
	if got := hub.Sessions(); len(got) != 1 || got[0] != "b" {
		t.Errorf("after End sessions = %v", got)
	}
}

func TestStreamMsgpack(t *testing.T) {
	hub, srv := startTestServer(t)
	hub.Publish("s1", testFrame(7))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "session=s1"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	typ, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if typ != websocket.BinaryMessage {
		t.Fatalf("message type %d, want binary", typ)
	}
	var f Frame
	if err := msgpack.Unmarshal(raw, &f); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	if f.Seq != 7 || f.Score != 40 || len(f.Nodes) != 1 || f.Nodes[0].X != 3 || len(f.Nodes[0].Points) != 3 {
		t.Errorf("unexpected frame %+v", f)
	}
}

func TestStreamJSONFollowsUpdates(t *testing.T) {
	hub, srv := startTestServer(t)
	hub.Publish("s1", testFrame(1))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "session=s1&format=json"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	read := func() Frame {
		t.Helper()
		typ, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if typ != websocket.TextMessage {
			t.Fatalf("message type %d, want text", typ)
		}
		var f Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatal(err)
		}
		return f
	}

	if f := read(); f.Seq != 1 {
		t.Fatalf("first seq %d", f.Seq)
	}
	hub.Publish("s1", testFrame(2))
	if f := read(); f.Seq != 2 {
		t.Fatalf("second seq %d, want 2", f.Seq)
	}
}

func TestStreamClosesWhenSessionEnds(t *testing.T) {
	hub, srv := startTestServer(t)
	hub.Publish("s1", testFrame(1))

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "session=s1"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatal(err)
	}
	hub.End("s1")
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			t.Errorf("want normal close, got %v", err)
		}
		return
	}
}

func TestUnknownSession(t *testing.T) {
	_, srv := startTestServer(t)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "session=nope"), nil)
	if err == nil {
		t.Fatal("dial should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("want 404, got %v", resp)
	}
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://example.com", true},
		{"https://evil.test", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "http://example.com/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := sameOrigin(r); got != tt.want {
			t.Errorf("sameOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}
