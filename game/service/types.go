package service

import (
	"time"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// PlayerSpec names one seat at the table and the strategy that plays it.
type PlayerSpec struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// CreateGameRequest carries everything needed to start a game.
type CreateGameRequest struct {
	ConfigName string       `json:"config_name,omitempty"` // empty means the default config
	Players    []PlayerSpec `json:"players"`
	Seed       int64        `json:"seed,omitempty"` // 0 means derive from the clock
	MaxRounds  int          `json:"max_rounds,omitempty"`
}

// GameInfo summarizes a game session without the full state.
type GameInfo struct {
	ID             string    `json:"id"`
	ConfigName     string    `json:"config_name"`
	Players        []string  `json:"players"`
	Strategies     []string  `json:"strategies"`
	Seed           int64     `json:"seed"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Round          int       `json:"round"`
	Step           int       `json:"step"`
	GameOver       bool      `json:"game_over"`
	Winner         string    `json:"winner,omitempty"`
}

// RoundResult is the outcome of a single played round.
type RoundResult struct {
	Round     int               `json:"round"` // the round that was just played
	GameOver  bool              `json:"game_over"`
	Winner    string            `json:"winner,omitempty"`
	GameState *engine.GameState `json:"game_state"`
}

// RunResult is the outcome of running a game to completion.
type RunResult struct {
	RoundsPlayed int               `json:"rounds_played"`
	GameOver     bool              `json:"game_over"`
	Winner       string            `json:"winner,omitempty"`
	Standings    []Standing        `json:"standings"`
	GameState    *engine.GameState `json:"game_state"`
}

// Standing is one row of the scoreboard, ordered by rank.
type Standing struct {
	Rank      int    `json:"rank"`
	PlayerID  int    `json:"player_id"`
	Name      string `json:"name"`
	Strategy  string `json:"strategy"`
	Cities    int    `json:"cities"`
	Powerable int    `json:"powerable"`
	Money     int    `json:"money"`
}

// HistoryOptions configures snapshot history retrieval.
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryEntry is one recorded snapshot, without the full state payload.
type HistoryEntry struct {
	Seq         int       `json:"seq"`
	Description string    `json:"description"`
	Round       int       `json:"round"`
	Phase       string    `json:"phase"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// HistoryResponse contains paginated snapshot history.
type HistoryResponse struct {
	Entries     []HistoryEntry `json:"entries"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // the identifier to use for game creation
	Name        string `json:"name"`      // display name
	Description string `json:"description"`
	Cities      int    `json:"cities"`
	Plants      int    `json:"plants"`
}
