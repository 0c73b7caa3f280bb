package relay

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/decker502/penball/pkg/components"
	"github.com/decker502/penball/pkg/game"
	"github.com/decker502/penball/pkg/ink"
	"github.com/decker502/penball/pkg/types"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
)

// dialViewer 连接测试服务器并等待注册完成
func dialViewer(t *testing.T, hub *Hub, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	before := hub.Len()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() == before {
		if time.Now().After(deadline) {
			t.Fatal("Viewer was not registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	return msg
}

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func TestHubBroadcast(t *testing.T) {
	hub, srv := newTestHub(t)
	a := dialViewer(t, hub, srv)
	b := dialViewer(t, hub, srv)

	if err := hub.Broadcast("ping", map[string]int{"n": 7}); err != nil {
		t.Fatalf("Broadcast() error: %v", err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Type != "ping" || string(msg.Data) != `{"n":7}` {
			t.Errorf("Unexpected message %s %s", msg.Type, msg.Data)
		}
	}
}

func TestHubUnregistersClosedViewer(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dialViewer(t, hub, srv)

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Closed viewer was not unregistered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// 没有连接时广播不报错
	if err := hub.Broadcast("state", StatePayload{State: "started"}); err != nil {
		t.Errorf("Broadcast() error: %v", err)
	}
}

func TestHubBroadcastEncodeError(t *testing.T) {
	hub := NewHub()
	if err := hub.Broadcast("bad", func() {}); err == nil {
		t.Error("Expected an encoding error")
	}
}

func TestObserverForwardsEvents(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dialViewer(t, hub, srv)

	o := NewObserver(hub)
	o.SetLevel("intro")
	var _ game.Observer = o
	var _ game.EffectObserver = o

	o.OnStateChanged(types.StateStarted)
	msg := readMessage(t, conn)
	var state StatePayload
	json.Unmarshal(msg.Data, &state)
	if msg.Type != TypeState || state.State != types.StateStarted.String() || state.LevelID != "intro" {
		t.Errorf("Unexpected state message %s %s", msg.Type, msg.Data)
	}

	// 同一秒内的成绩只推送一次
	o.OnScoreUpdated(game.Score{Time: 0.1, Strokes: 2})
	o.OnScoreUpdated(game.Score{Time: 0.5, Strokes: 2})
	o.OnScoreUpdated(game.Score{Time: 1.2, Strokes: 2})
	first := readMessage(t, conn)
	second := readMessage(t, conn)
	var s1, s2 ScorePayload
	json.Unmarshal(first.Data, &s1)
	json.Unmarshal(second.Data, &s2)
	if s1.Display != "0:00" || s2.Display != "0:01" {
		t.Errorf("Unexpected score displays %q, %q", s1.Display, s2.Display)
	}

	o.OnEffect(game.Effect{Kind: components.EffectExplosion, BallID: 1, Position: mgl64.Vec2{3, 4}, Color: ink.Color{R: 1}})
	msg = readMessage(t, conn)
	if msg.Type != TypeEffect || !strings.Contains(string(msg.Data), `"kind":"explosion"`) {
		t.Errorf("Unexpected effect message %s %s", msg.Type, msg.Data)
	}
	if !strings.Contains(string(msg.Data), `"position":[3,4]`) {
		t.Errorf("Effect position not encoded: %s", msg.Data)
	}

	o.OnLevelCompleted(game.Score{Time: 9, Strokes: 2})
	msg = readMessage(t, conn)
	if msg.Type != TypeCompleted {
		t.Errorf("Expected completed message, got %s", msg.Type)
	}
}
