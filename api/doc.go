// Package api provides the HTTP REST surface for running power grid games.
//
// The api package implements:
//   - RESTful endpoints for game lifecycle and simulation
//   - Standings and replay history endpoints
//   - Configuration and strategy catalogs
//   - WebSocket upgrade handling for game watchers
//   - Per-client rate limiting on all /api routes
//
// Endpoints:
//
// Game Management:
//   - POST /api/games - Create a game from a config, players, and seed
//   - GET /api/games - List active games
//   - GET /api/games/{id} - Get game metadata
//   - DELETE /api/games/{id} - Remove a game
//
// Game Operations:
//   - GET /api/games/{id}/state - Full game state snapshot
//   - POST /api/games/{id}/round - Play one round
//   - POST /api/games/{id}/run - Play until the game ends
//   - GET /api/games/{id}/standings - Current scoreboard
//   - GET /api/games/{id}/history - Recorded snapshots with pagination
//
// Catalog:
//   - GET /api/configs - List available map configurations
//   - GET /api/strategies - List built-in strategy names
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Games are created with:
//
//	{
//	  "config_name": "europe",
//	  "players": [
//	    {"name": "ada", "strategy": "greedy"},
//	    {"name": "bob", "strategy": "balanced"}
//	  ],
//	  "seed": 42,
//	  "max_rounds": 20
//	}
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Rate Limiting:
//
// Every /api route sits behind a token bucket keyed by remote address.
// Exhausted buckets answer 429 until they refill.
package api
