package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/nelsp/pb-power-grid/game/service"
	"github.com/nelsp/pb-power-grid/game/strategy"
	"github.com/nelsp/pb-power-grid/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router

	// Per-client request limiting. Simulation endpoints are cheap to ask
	// for and expensive to serve, so every handler sits behind it.
	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
	rps       rate.Limit
	burst     int
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service:  gameService,
		hub:      hub,
		router:   mux.NewRouter(),
		limiters: make(map[string]*rate.Limiter),
		rps:      20,
		burst:    40,
	}

	s.setupRoutes()
	return s
}

// SetRateLimit overrides the default per-client limit. Existing client
// buckets are discarded.
func (s *Server) SetRateLimit(rps rate.Limit, burst int) {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	s.rps = rps
	s.burst = burst
	s.limiters = make(map[string]*rate.Limiter)
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimit)

	// Game management
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")

	// Game operations
	api.HandleFunc("/games/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/games/{id}/round", s.handlePlayRound).Methods("POST")
	api.HandleFunc("/games/{id}/run", s.handleRun).Methods("POST")
	api.HandleFunc("/games/{id}/standings", s.handleGetStandings).Methods("GET")
	api.HandleFunc("/games/{id}/history", s.handleGetHistory).Methods("GET")

	// Catalog
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/strategies", s.handleListStrategies).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// rateLimit applies a token bucket per remote address
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		s.limiterMu.Lock()
		lim, ok := s.limiters[host]
		if !ok {
			lim = rate.NewLimiter(s.rps, s.burst)
			s.limiters[host] = lim
		}
		s.limiterMu.Unlock()

		if !lim.Allow() {
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req service.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.CreateGame(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	fmt.Printf("[CREATE] game=%s config=%s players=%d seed=%d\n",
		info.ID, info.ConfigName, len(info.Players), info.Seed)

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Apply limit if specified
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(games) {
			games = games[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(games),
		"games": games,
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	info, err := s.service.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	if err := s.service.DeleteGame(r.Context(), gameID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Game %s deleted", gameID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	state, err := s.service.GetGameState(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handlePlayRound(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	result, err := s.service.PlayRound(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	// Broadcast to WebSocket watchers
	if s.hub != nil {
		s.hub.BroadcastState(gameID, result.GameState)
	}

	// Compact server log for observability
	status := "playing"
	if result.GameOver {
		status = "over winner=" + result.Winner
	}
	fmt.Printf("[ROUND] game=%s round=%d step=%d phase=%s status=%s\n",
		gameID, result.Round, result.GameState.Step, result.GameState.Phase, status)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	result, err := s.service.RunToCompletion(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	// Broadcast the final state to WebSocket watchers
	if s.hub != nil {
		s.hub.BroadcastState(gameID, result.GameState)
	}

	fmt.Printf("[RUN] game=%s rounds=%d winner=%s\n",
		gameID, result.RoundsPlayed, result.Winner)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	standings, err := s.service.GetStandings(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":   gameID,
		"standings": standings,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 50,
		Order: "asc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetHistory(r.Context(), gameID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Catalog Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": strategy.Names,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "game parameter required", http.StatusBadRequest)
		return
	}

	// Verify game exists
	if _, err := s.service.GetGame(r.Context(), gameID); err != nil {
		http.Error(w, "Unknown game", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
