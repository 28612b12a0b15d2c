package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nelsp/pb-power-grid/game/engine"
	"github.com/nelsp/pb-power-grid/game/service"
)

// FilePersistence implements Persistence using file system storage. Each
// session is one JSON file holding its setup metadata and round count.
type FilePersistence struct {
	sessionsDir string
	build       GameBuilder
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, build GameBuilder) (*FilePersistence, error) {
	if build == nil {
		return nil, fmt.Errorf("game builder cannot be nil")
	}

	// Create sessions directory if it doesn't exist
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir: sessionsDir,
		build:       build,
	}, nil
}

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.GameSession) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	// The round counter only advances after a full round; a game that ends
	// mid-round on the generator condition keeps its final round number.
	state := session.Game.State()
	rounds := state.Round - 1
	if state.GameOver && state.Phase != engine.PhaseDetermineOrder {
		rounds = state.Round
	}

	data := PersistedGameData{
		ID:             session.ID,
		ConfigName:     session.Meta.ConfigName,
		Players:        session.Meta.Players,
		Strategies:     session.Meta.Strategies,
		Seed:           session.Meta.Seed,
		RoundsPlayed:   rounds,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file, rebuilding the game and
// replaying it to the recorded round.
func (fp *FilePersistence) Load(id string) (*service.GameSession, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedGameData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	meta := service.GameMeta{
		ConfigName: data.ConfigName,
		Players:    data.Players,
		Strategies: data.Strategies,
		Seed:       data.Seed,
	}

	game, err := fp.build(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild game: %w", err)
	}

	for i := 0; i < data.RoundsPlayed && !game.Over(); i++ {
		if err := game.PlayRound(); err != nil {
			return nil, fmt.Errorf("failed to replay round %d: %w", i+1, err)
		}
	}

	return &service.GameSession{
		ID:             data.ID,
		Game:           game,
		Meta:           meta,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return ids, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, strings.ToLower(id)+".json")
}
