// Package websocket provides real-time game watching over WebSocket.
//
// The websocket package implements:
//   - A hub that fans game updates out to connected watchers
//   - Game-scoped connections keyed by game ID
//   - State broadcasts after each played round
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each watcher connection is handled by a pair of
// goroutines, one reading and one writing, with the hub's event loop
// serializing registration and broadcast.
//
// Message Protocol:
//
// Messages are JSON-encoded. Watchers never send game input; connections
// are read-only from the server's point of view. Outgoing messages carry
// the game ID, an event name, and either a full GameState snapshot or an
// event payload:
//
//	{"game_id": "...", "event": "state_update", "game_state": {...}}
//	{"game_id": "...", "event": "game_over", "game_state": {...}}
//
// Game Integration:
//
// Watchers specify the game they follow via query parameter (?game=<id>)
// when establishing the connection. Broadcasts reach only the watchers of
// that game. The API server calls BroadcastState after every round it
// plays on behalf of a client.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after playing a round
//	hub.BroadcastState(gameID, game.Snapshot())
//
// Concurrency:
//
// The hub and watcher handlers are designed for concurrent operation.
// Multiple watchers can connect, disconnect, and receive updates
// simultaneously without blocking each other.
package websocket
