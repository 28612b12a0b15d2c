package service

import (
	"context"
	"time"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// GameService defines all game-related operations.
type GameService interface {
	// Game lifecycle
	CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Game operations
	PlayRound(ctx context.Context, gameID string) (*RoundResult, error)
	RunToCompletion(ctx context.Context, gameID string) (*RunResult, error)

	// Game state
	GetGameState(ctx context.Context, gameID string) (*engine.GameState, error)
	GetStandings(ctx context.Context, gameID string) ([]Standing, error)
	GetHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
}

// GameManager defines game session storage operations.
type GameManager interface {
	Create(id string, game *engine.Game, meta GameMeta) (*GameSession, error)
	Get(id string) (*GameSession, error)
	List() []*GameSession
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager produces engine setups from named configurations.
type ConfigManager interface {
	Setup(configName string) (*engine.Setup, error)
	ListConfigs() ([]*ConfigInfo, error)
	DefaultName() string
}

// GameMeta is the creation-time metadata attached to a session.
type GameMeta struct {
	ConfigName string
	Players    []string
	Strategies []string
	Seed       int64
}

// GameSession represents an active game and its metadata.
type GameSession struct {
	ID             string
	Game           *engine.Game
	Meta           GameMeta
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
