package session

import (
	"time"

	"github.com/nelsp/pb-power-grid/game/engine"
	"github.com/nelsp/pb-power-grid/game/service"
)

// Persistence defines the interface for persisting sessions
type Persistence interface {
	// Save persists a session to storage
	Save(session *service.GameSession) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.GameSession, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// GameBuilder recreates a fresh game from its setup metadata. Loading a
// persisted session builds the game and replays the recorded rounds; since
// games are deterministic under a fixed seed this restores the exact state.
type GameBuilder func(meta service.GameMeta) (*engine.Game, error)

// PersistedGameData represents the JSON structure for persisted sessions
type PersistedGameData struct {
	ID             string    `json:"id"`
	ConfigName     string    `json:"config_name"`
	Players        []string  `json:"players"`
	Strategies     []string  `json:"strategies"`
	Seed           int64     `json:"seed"`
	RoundsPlayed   int       `json:"rounds_played"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}
