package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/zone-arena/internal/feed"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(Config{}, Deps{})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	t.Cleanup(func() { s.Shutdown(t.Context()) })
	return s, srv
}

// testClient reads envelopes and keeps the ones a test has not asked for yet.
type testClient struct {
	t       *testing.T
	conn    *websocket.Conn
	backlog []Envelope
}

func dial(t *testing.T, srv *httptest.Server) *testClient {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &testClient{t: t, conn: conn}
}

func (c *testClient) send(typ string, payload any) {
	c.t.Helper()
	env := Envelope{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatalf("Marshal() error = %v", err)
		}
		env.Payload = data
	}
	if err := c.conn.WriteJSON(env); err != nil {
		c.t.Fatalf("WriteJSON() error = %v", err)
	}
}

func (c *testClient) expect(typ string) Envelope {
	c.t.Helper()
	for i, env := range c.backlog {
		if env.Type == typ {
			c.backlog = append(c.backlog[:i], c.backlog[i+1:]...)
			return env
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		c.conn.SetReadDeadline(deadline)
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			c.t.Fatalf("waiting for %q: %v", typ, err)
		}
		if env.Type == typ {
			return env
		}
		c.backlog = append(c.backlog, env)
	}
}

func (c *testClient) expectState(state string) {
	c.t.Helper()
	for {
		var evt feed.StateEvent
		decode(c.t, c.expect(feed.TypeState), &evt)
		if evt.State == state {
			return
		}
	}
}

func decode(t *testing.T, env Envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Payload, v); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", env.Type, err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHealthz(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}
	var h health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if h.Status != "ok" || h.Sessions != 0 || h.Narrative {
		t.Errorf("health = %+v, expected ok with no sessions and offline narrative", h)
	}
}

func TestWebSocketSessionFlow(t *testing.T) {
	s, srv := newTestServer(t)
	c := dial(t, srv)

	var b feed.BriefingEvent
	decode(t, c.expect(feed.TypeBriefing), &b)
	if b.Title == "" {
		t.Error("briefing should carry a title")
	}
	if s.Sessions() != 1 {
		t.Errorf("Sessions() = %d, expected 1", s.Sessions())
	}

	c.send(TypeStart, StartPayload{Difficulty: "hard", Class: "sniper"})
	c.expectState("playing")

	var score feed.ScoreEvent
	decode(t, c.expect(feed.TypeScore), &score)
	if score.MaxHP <= 0 || score.Survivors <= 0 {
		t.Errorf("score = %+v, expected live player numbers", score)
	}

	var frame FrameEvent
	decode(t, c.expect(TypeFrame), &frame)
	if frame.Width != 1280 || frame.Height != 720 {
		t.Errorf("frame size = %vx%v, expected 1280x720", frame.Width, frame.Height)
	}
	if frame.Player.Kind != "sniper" {
		t.Errorf("player kind = %q, expected sniper", frame.Player.Kind)
	}

	c.send(TypeInput, InputPayload{Keys: []string{"right"}, Pointer: Point{X: 1000, Y: 360}})
	c.send(TypePause, nil)
	c.expectState("paused")
	c.send(TypeResume, nil)
	c.expectState("playing")

	c.conn.Close()
	waitFor(t, "the session to unregister", func() bool { return s.Sessions() == 0 })
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	_, srv := newTestServer(t)
	c := dial(t, srv)

	tests := []struct {
		name    string
		write   func()
		message string
	}{
		{"unknown type", func() { c.send("jump", nil) }, `unknown message type "jump"`},
		{"bad difficulty", func() { c.send(TypeStart, StartPayload{Difficulty: "insane"}) }, "insane"},
		{"restart before start", func() { c.send(TypeRestart, nil) }, errNoSession.Error()},
		{"malformed json", func() { c.conn.WriteMessage(websocket.TextMessage, []byte("{nope")) }, "malformed message"},
	}

	// Runs in order on one connection, so no subtests.
	for _, tc := range tests {
		tc.write()
		var evt ErrorEvent
		decode(t, c.expect(TypeError), &evt)
		if !strings.Contains(evt.Message, tc.message) {
			t.Errorf("%s: error = %q, expected it to contain %q", tc.name, evt.Message, tc.message)
		}
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	s, srv := newTestServer(t)
	c := dial(t, srv)
	c.expect(feed.TypeBriefing)

	if err := s.Shutdown(t.Context()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	waitFor(t, "the session to unregister", func() bool { return s.Sessions() == 0 })
}
