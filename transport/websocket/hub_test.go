package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nelsp/pb-power-grid/game/engine"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.games == nil {
		t.Error("Hub games map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:    hub,
		gameID: "test-game",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.games["test-game"]; !exists {
		t.Error("Game entry was not created")
	}

	if !hub.games["test-game"][client] {
		t.Error("Client was not registered for the game")
	}

	if len(hub.games["test-game"]) != 1 {
		t.Errorf("Expected 1 watcher, got %d", len(hub.games["test-game"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:    hub,
		gameID: "test-game",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.games["test-game"]; exists {
		t.Error("Game entry should have been cleaned up after last watcher left")
	}
}

func TestHubMultipleWatchersPerGame(t *testing.T) {
	hub := NewHub()
	gameID := "multi-watcher-game"

	client1 := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}
	client2 := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.games[gameID]) != 2 {
		t.Errorf("Expected 2 watchers, got %d", len(hub.games[gameID]))
	}

	hub.unregisterClient(client1)

	if len(hub.games[gameID]) != 1 {
		t.Errorf("Expected 1 watcher remaining, got %d", len(hub.games[gameID]))
	}

	if !hub.games[gameID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastState(t *testing.T) {
	hub := NewHub()
	gameID := "broadcast-test"

	client := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	state := &engine.GameState{
		Step:   2,
		Round:  7,
		Phase:  engine.PhaseAuction,
		Winner: -1,
	}

	hub.BroadcastState(gameID, state)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}

		if message.GameID != gameID {
			t.Errorf("Expected gameID %s, got %s", gameID, message.GameID)
		}

		if message.Event != EventStateUpdate {
			t.Errorf("Expected event %q, got %q", EventStateUpdate, message.Event)
		}

		if message.GameState.Round != 7 || message.GameState.Step != 2 {
			t.Error("GameState not correctly transmitted")
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastStateGameOver(t *testing.T) {
	hub := NewHub()
	gameID := "finished-game"

	client := &Client{
		hub:    hub,
		gameID: gameID,
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	state := &engine.GameState{
		Round:    12,
		Phase:    engine.PhaseBureaucracy,
		GameOver: true,
		Winner:   1,
	}

	hub.BroadcastState(gameID, state)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}

		if message.Event != EventGameOver {
			t.Errorf("Expected event %q, got %q", EventGameOver, message.Event)
		}

		if message.GameState.Winner != 1 {
			t.Errorf("Expected winner 1, got %d", message.GameState.Winner)
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	done := make(chan bool)

	go func() {
		select {
		case message := <-hub.broadcast:
			if message.GameID != "event-test" {
				t.Errorf("Expected gameID 'event-test', got %s", message.GameID)
			}
			if message.Event != EventRoundPlayed {
				t.Errorf("Expected event %q, got %q", EventRoundPlayed, message.Event)
			}
			if message.Data != "round 3" {
				t.Errorf("Expected data 'round 3', got %v", message.Data)
			}
			done <- true
		case <-time.After(100 * time.Millisecond):
			t.Error("No broadcast message received within timeout")
			done <- false
		}
	}()

	hub.BroadcastEvent("event-test", EventRoundPlayed, "round 3")

	<-done
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()

	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("game")
		if gameID == "" {
			gameID = "default"
		}
		hub.ServeWS(w, r, gameID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?game=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give some time for registration
	time.Sleep(50 * time.Millisecond)

	if len(hub.games["ws-test"]) != 1 {
		t.Errorf("Expected 1 watcher, got %d", len(hub.games["ws-test"]))
	}

	conn.Close()

	// Give some time for unregistration
	time.Sleep(10 * time.Millisecond)

	if _, exists := hub.games["ws-test"]; exists {
		t.Error("Game entry should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()

	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("game")
		if gameID == "" {
			gameID = "default"
		}
		hub.ServeWS(w, r, gameID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?game=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give time for connection to establish
	time.Sleep(10 * time.Millisecond)

	state := &engine.GameState{
		Step:   1,
		Round:  3,
		Phase:  engine.PhaseBuild,
		Winner: -1,
	}

	hub.BroadcastState("msg-test", state)

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if message.GameID != "msg-test" {
		t.Errorf("Expected gameID 'msg-test', got %s", message.GameID)
	}

	if message.GameState.Round != 3 || message.GameState.Phase != engine.PhaseBuild {
		t.Error("GameState round/phase not correctly received")
	}
}
