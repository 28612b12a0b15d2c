package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nelsp/pb-power-grid/game/engine"
	"github.com/nelsp/pb-power-grid/game/replay"
	"github.com/nelsp/pb-power-grid/game/strategy"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions GameManager
	configs  ConfigManager
	replays  *replay.Store // nil disables history
	logger   *log.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions GameManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// NewGameServiceWithReplay creates a game service that records every game to
// the given replay store.
func NewGameServiceWithReplay(sessions GameManager, configs ConfigManager, replays *replay.Store, logger *log.Logger) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		replays:  replays,
		logger:   logger,
	}
}

// NewGameFromMeta builds a fresh game from setup metadata. The same metadata
// always yields the same game, which is what makes session persistence and
// replay-by-reseeding work.
func NewGameFromMeta(configs ConfigManager, meta GameMeta) (*engine.Game, error) {
	if len(meta.Players) != len(meta.Strategies) {
		return nil, fmt.Errorf("%d players but %d strategies", len(meta.Players), len(meta.Strategies))
	}

	setup, err := configs.Setup(meta.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", meta.ConfigName, err)
	}

	strategies := make([]engine.Strategy, len(meta.Strategies))
	for i, name := range meta.Strategies {
		// Each seat gets its own source derived from the game seed, so
		// strategy decisions are reproducible per player.
		st, err := strategy.New(name, rand.New(rand.NewSource(meta.Seed+int64(i)+1)))
		if err != nil {
			return nil, err
		}
		strategies[i] = st
	}

	setup.Players = meta.Players
	setup.Strategies = strategies
	setup.Seed = meta.Seed
	return engine.NewGame(setup)
}

// CreateGame creates a new game session
func (s *gameServiceImpl) CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(req.Players) < engine.MinPlayers || len(req.Players) > engine.MaxPlayers {
		return nil, fmt.Errorf("player count must be between %d and %d, got %d",
			engine.MinPlayers, engine.MaxPlayers, len(req.Players))
	}

	configName := req.ConfigName
	if configName == "" {
		configName = s.configs.DefaultName()
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	meta := GameMeta{
		ConfigName: configName,
		Players:    make([]string, len(req.Players)),
		Strategies: make([]string, len(req.Players)),
		Seed:       seed,
	}
	for i, p := range req.Players {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("player_%d", i)
		}
		meta.Players[i] = name
		st := p.Strategy
		if st == "" {
			st = "balanced"
		}
		meta.Strategies[i] = st
	}

	game, err := NewGameFromMeta(s.configs, meta)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	game.ID = id
	if req.MaxRounds > 0 {
		game.SetMaxRounds(req.MaxRounds)
	}

	if s.replays != nil {
		if err := s.replays.CreateGame(id, configName, meta.Players, seed); err != nil {
			s.logf("failed to register game %s in replay store: %v", id, err)
		} else {
			rec := s.replays.Recorder(id)
			rec.SetLogger(s.logger)
			game.SetRecorder(rec)
		}
	}

	sess, err := s.sessions.Create(id, game, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.toGameInfo(sess), nil
}

// GetGame retrieves game information
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(gameID)
	return s.toGameInfo(sess), nil
}

// ListGames returns all active games
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*GameInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.toGameInfo(sess))
	}

	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// DeleteGame removes a game session. Its replay history, if any, is kept.
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(gameID)
}

// PlayRound advances a game by one full round
func (s *gameServiceImpl) PlayRound(ctx context.Context, gameID string) (*RoundResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	game := sess.Game
	round := game.State().Round
	if err := game.PlayRound(); err != nil {
		if errors.Is(err, engine.ErrGameOver) {
			return nil, fmt.Errorf("game %s is already over", gameID)
		}
		return nil, fmt.Errorf("round %d failed: %w", round, err)
	}

	state := game.Snapshot()
	result := &RoundResult{
		Round:     round,
		GameOver:  state.GameOver,
		GameState: state,
	}
	if state.GameOver {
		result.Winner = s.playerName(sess, state.Winner)
	}
	return result, nil
}

// RunToCompletion plays a game until its end condition triggers
func (s *gameServiceImpl) RunToCompletion(ctx context.Context, gameID string) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	game := sess.Game
	if game.Over() {
		return nil, fmt.Errorf("game %s is already over", gameID)
	}

	winner, err := game.Run()
	if err != nil {
		return nil, fmt.Errorf("game run failed: %w", err)
	}

	state := game.Snapshot()
	rounds := state.Round - 1
	if state.Phase != engine.PhaseDetermineOrder {
		// Ended mid-round on the generator condition.
		rounds = state.Round
	}
	return &RunResult{
		RoundsPlayed: rounds,
		GameOver:     true,
		Winner:       s.playerName(sess, winner),
		Standings:    s.standings(sess),
		GameState:    state,
	}, nil
}

// GetGameState returns a snapshot of the full game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, gameID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(gameID)

	return sess.Game.Snapshot(), nil
}

// GetStandings returns the current scoreboard
func (s *gameServiceImpl) GetStandings(ctx context.Context, gameID string) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	return s.standings(sess), nil
}

// GetHistory returns paginated snapshot history from the replay store
func (s *gameServiceImpl) GetHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error) {
	if s.replays == nil {
		return nil, fmt.Errorf("replay store is not configured")
	}

	if _, err := s.replays.GetGame(gameID); err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	order := opts.Order
	if order != "desc" {
		order = "asc"
	}

	total, err := s.replays.CountSnapshots(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to count snapshots: %w", err)
	}

	metas, err := s.replays.ListSnapshots(gameID, (page-1)*limit, limit, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	entries := make([]HistoryEntry, 0, len(metas))
	for _, m := range metas {
		entries = append(entries, HistoryEntry{
			Seq:         m.Seq,
			Description: m.Description,
			Round:       m.Round,
			Phase:       m.Phase,
			RecordedAt:  m.RecordedAt,
		})
	}

	totalPages := (total + limit - 1) / limit
	return &HistoryResponse{
		Entries:     entries,
		Total:       total,
		Page:        page,
		PageSize:    limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// ListConfigs returns the available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

func (s *gameServiceImpl) toGameInfo(sess *GameSession) *GameInfo {
	state := sess.Game.State()
	info := &GameInfo{
		ID:             sess.ID,
		ConfigName:     sess.Meta.ConfigName,
		Players:        sess.Meta.Players,
		Strategies:     sess.Meta.Strategies,
		Seed:           sess.Meta.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Round:          state.Round,
		Step:           state.Step,
		GameOver:       state.GameOver,
	}
	if state.GameOver {
		info.Winner = s.playerName(sess, state.Winner)
	}
	return info
}

func (s *gameServiceImpl) playerName(sess *GameSession, playerID int) string {
	if playerID < 0 || playerID >= len(sess.Meta.Players) {
		return ""
	}
	return sess.Meta.Players[playerID]
}

// standings ranks players by cities they can power, then money, matching the
// engine's winner determination.
func (s *gameServiceImpl) standings(sess *GameSession) []Standing {
	game := sess.Game
	state := game.State()

	rows := make([]Standing, 0, len(state.Players))
	for _, p := range state.Players {
		st := ""
		if p.ID < len(sess.Meta.Strategies) {
			st = sess.Meta.Strategies[p.ID]
		}
		rows = append(rows, Standing{
			PlayerID:  p.ID,
			Name:      p.Name,
			Strategy:  st,
			Cities:    len(p.Generators),
			Powerable: game.PowerableCities(p),
			Money:     p.Money,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Powerable != rows[j].Powerable {
			return rows[i].Powerable > rows[j].Powerable
		}
		if rows[i].Money != rows[j].Money {
			return rows[i].Money > rows[j].Money
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func (s *gameServiceImpl) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
