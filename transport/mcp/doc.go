// Package mcp provides a Model Context Protocol surface for the simulator.
//
// The mcp package implements:
//   - An MCP server for AI agent integration
//   - Tool definitions for game lifecycle and simulation
//   - A thin HTTP proxy to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_game: Start a game with a map config, seats, and seed
//   - list_games: List active games
//   - get_game: Get a game's metadata
//   - game_state: Full state with markets, pools, and player holdings
//   - play_round: Advance a game by one round
//   - run_game: Play to completion and report the winner
//   - standings: Current scoreboard
//   - game_history: Recorded snapshots with pagination
//   - list_configs: List available map configurations
//   - list_strategies: List built-in player strategies
//   - game_rules: Summary of the rules the simulator applies
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The client never touches game state directly. Every tool call becomes a
// REST request against the API server, so MCP agents and HTTP clients see
// exactly the same games and the REST layer stays the single entry point.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Set up tournaments between strategies
//   - Step through games round by round
//   - Inspect markets, pools, and standings as games progress
//   - Replay recorded games from history
package mcp
