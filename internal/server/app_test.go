package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marjorv/lanrelay/internal/config"
	"github.com/marjorv/lanrelay/internal/relay"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		WriteTimeout:   2 * time.Second,
		PongTimeout:    30 * time.Second,
		MaxFrameBytes:  1 << 16,
		SendBufferSize: 16,
	}
}

func readPacket(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var packet map[string]any
	if err := json.Unmarshal(data, &packet); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return packet
}

func TestSocketHandshakeAndJoin(t *testing.T) {
	rl := relay.New(func() []string { return []string{"10.0.0.7"} })
	app := NewApp(testConfig(), rl)

	srv := httptest.NewServer(http.HandlerFunc(app.handleSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := readPacket(t, conn)
	if hello["t"] != "hello" || hello["id"] == "" {
		t.Fatalf("first packet = %v, want hello with id", hello)
	}
	if ips, ok := hello["ips"].([]any); !ok || len(ips) != 1 || ips[0] != "10.0.0.7" {
		t.Errorf("hello ips = %v", hello["ips"])
	}

	if err := conn.WriteJSON(map[string]any{"t": "join", "room": "lobby"}); err != nil {
		t.Fatalf("write join: %v", err)
	}

	role := readPacket(t, conn)
	if role["t"] != "role" || role["role"] != "X" || role["room"] != "lobby" {
		t.Fatalf("role packet = %v, want X in lobby", role)
	}

	roster := readPacket(t, conn)
	if roster["t"] != "roster" || roster["spectators"] != float64(0) {
		t.Fatalf("roster packet = %v", roster)
	}
	if players, ok := roster["players"].([]any); !ok || len(players) != 1 || players[0] != "X" {
		t.Errorf("roster players = %v, want [X]", roster["players"])
	}
}

func TestDisconnectReachesRemainingMember(t *testing.T) {
	rl := relay.New(nil)
	app := NewApp(testConfig(), rl)

	srv := httptest.NewServer(http.HandlerFunc(app.handleSocket))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer first.Close()
	readPacket(t, first) // hello
	if err := first.WriteJSON(map[string]any{"t": "join", "room": "lobby"}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	readPacket(t, first) // role
	readPacket(t, first) // roster

	second, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	readPacket(t, second) // hello
	if err := second.WriteJSON(map[string]any{"t": "join", "room": "lobby"}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	readPacket(t, first) // roster with both players

	second.Close()

	roster := readPacket(t, first)
	if roster["t"] != "roster" {
		t.Fatalf("packet after disconnect = %v, want roster", roster)
	}
	if players, ok := roster["players"].([]any); !ok || len(players) != 1 {
		t.Errorf("roster players = %v, want one remaining", roster["players"])
	}
}

func TestInfoAndHealthEndpoints(t *testing.T) {
	recorder := httptest.NewRecorder()
	handleInfo(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), "LAN relay running.") {
		t.Errorf("info responder = %d %q", recorder.Code, recorder.Body.String())
	}

	recorder = httptest.NewRecorder()
	handleHealth(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("health status = %d", recorder.Code)
	}
}
