package replay

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
	_ "modernc.org/sqlite"

	"github.com/nelsp/pb-power-grid/game/engine"
)

var (
	ErrGameNotFound     = errors.New("game not found in replay store")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)

// GameRow represents a registered game in the database.
type GameRow struct {
	ID         string
	ConfigName string
	Players    []string
	Seed       int64
	CreatedAt  time.Time
}

// SnapshotMeta describes one recorded snapshot without its state payload.
type SnapshotMeta struct {
	Seq         int       `json:"seq"`
	Description string    `json:"description"`
	Round       int       `json:"round"`
	Phase       string    `json:"phase"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Store handles SQLite persistence of game replays.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database and runs migrations.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id          TEXT PRIMARY KEY,
			config_name TEXT NOT NULL,
			players     TEXT NOT NULL,
			seed        INTEGER NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			game_id     TEXT NOT NULL REFERENCES games(id),
			seq         INTEGER NOT NULL,
			description TEXT NOT NULL,
			round       INTEGER NOT NULL,
			phase       TEXT NOT NULL,
			state       BLOB NOT NULL,
			checksum    TEXT NOT NULL,
			recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, seq)
		);
	`)
	return err
}

// CreateGame registers a game before its snapshots are recorded.
func (s *Store) CreateGame(id, configName string, players []string, seed int64) error {
	_, err := s.db.Exec(
		"INSERT INTO games (id, config_name, players, seed) VALUES (?, ?, ?, ?)",
		id, configName, strings.Join(players, ","), seed,
	)
	return err
}

// GetGame retrieves a registered game by ID.
func (s *Store) GetGame(id string) (*GameRow, error) {
	row := s.db.QueryRow("SELECT id, config_name, players, seed, created_at FROM games WHERE id = ?", id)
	var gr GameRow
	var players string
	if err := row.Scan(&gr.ID, &gr.ConfigName, &players, &gr.Seed, &gr.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if players != "" {
		gr.Players = strings.Split(players, ",")
	}
	return &gr, nil
}

// ListGames returns all registered games, newest first.
func (s *Store) ListGames() ([]GameRow, error) {
	rows, err := s.db.Query("SELECT id, config_name, players, seed, created_at FROM games ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []GameRow
	for rows.Next() {
		var gr GameRow
		var players string
		if err := rows.Scan(&gr.ID, &gr.ConfigName, &players, &gr.Seed, &gr.CreatedAt); err != nil {
			return nil, err
		}
		if players != "" {
			gr.Players = strings.Split(players, ",")
		}
		result = append(result, gr)
	}
	return result, rows.Err()
}

// AppendSnapshot compresses and stores one game state snapshot.
func (s *Store) AppendSnapshot(gameID string, seq int, description string, state *engine.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	sum := blake3.Sum256(raw)

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return fmt.Errorf("compress state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress state: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO snapshots (game_id, seq, description, round, phase, state, checksum) VALUES (?, ?, ?, ?, ?, ?, ?)",
		gameID, seq, description, state.Round, string(state.Phase), buf.Bytes(), hex.EncodeToString(sum[:]),
	)
	return err
}

// GetSnapshot decompresses and verifies one snapshot's full state.
func (s *Store) GetSnapshot(gameID string, seq int) (*engine.GameState, error) {
	var blob []byte
	var checksum string
	err := s.db.QueryRow(
		"SELECT state, checksum FROM snapshots WHERE game_id = ? AND seq = ?",
		gameID, seq,
	).Scan(&blob, &checksum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}

	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(blob)))
	if err != nil {
		return nil, fmt.Errorf("decompress state: %w", err)
	}

	sum := blake3.Sum256(raw)
	if hex.EncodeToString(sum[:]) != checksum {
		return nil, ErrChecksumMismatch
	}

	var state engine.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

// ListSnapshots returns snapshot metadata for a game. Order is "asc" or
// "desc" by sequence; offset and limit paginate.
func (s *Store) ListSnapshots(gameID string, offset, limit int, order string) ([]SnapshotMeta, error) {
	dir := "ASC"
	if order == "desc" {
		dir = "DESC"
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		"SELECT seq, description, round, phase, recorded_at FROM snapshots WHERE game_id = ? ORDER BY seq "+dir+" LIMIT ? OFFSET ?",
		gameID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []SnapshotMeta
	for rows.Next() {
		var m SnapshotMeta
		if err := rows.Scan(&m.Seq, &m.Description, &m.Round, &m.Phase, &m.RecordedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// CountSnapshots returns the number of snapshots recorded for a game.
func (s *Store) CountSnapshots(gameID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots WHERE game_id = ?", gameID).Scan(&count)
	return count, err
}

// DeleteGame removes a game and all its snapshots.
func (s *Store) DeleteGame(id string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE game_id = ?", id)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("DELETE FROM games WHERE id = ?", id)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
