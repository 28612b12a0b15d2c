// Package service provides the business logic layer for the power grid game.
//
// The service package implements:
//   - Multi-game session management
//   - Game creation from named configurations
//   - Round advancement and full-game runs
//   - Scoreboard and replay history retrieval
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. GameManager handles session creation, retrieval, and
// lifecycle. ConfigManager produces engine setups from named configurations.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation, configuration
// management, and business logic orchestration. Each session holds its own
// engine instance with independent state; the engine stays free of file and
// network concerns.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a game
//	info, err := gameService.CreateGame(ctx, service.CreateGameRequest{
//		Players: []service.PlayerSpec{
//			{Name: "ada", Strategy: "greedy"},
//			{Name: "bob", Strategy: "conservative"},
//		},
//		Seed: 42,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Advance it
//	result, err := gameService.PlayRound(ctx, info.ID)
//
// Determinism:
//
// Games are reproducible: the same configuration, players, strategies, and
// seed always produce the same game. NewGameFromMeta is the single place
// that turns metadata into a live game, and both session persistence and
// the service's create path go through it.
package service
