// Package engine provides the core rules engine for the Power Grid simulation.
//
// The engine package implements the complete round loop including:
//   - Turn-order determination and the five-phase state machine
//   - The open-bid power plant auction protocol
//   - The priced-bin resource market with purchase/release/resupply
//   - City building with connection-cost pathfinding
//   - Bureaucracy payouts, resource consumption, and market rotation
//   - Step transitions and end-of-game detection
//
// Core Types:
//
// Game drives a complete match. GameState is the aggregate root holding
// players, markets, the board, and resource pools. Strategy is the decision
// interface the engine calls to obtain each player's next Action; concrete
// strategies live outside this package.
//
// Usage:
//
//	g, err := engine.NewGame(&engine.Setup{
//		Cards:      cards,
//		StageThree: marker,
//		Board:      board,
//		Players:    []string{"Alice", "Bob", "Carol", "Dave"},
//		Strategies: strategies,
//		Seed:       50,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	winner, err := g.Run()
//	state := g.State()
//
// Game Rules:
//
// Each round cycles five phases: determine order, auction power plants, buy
// resources, build generators, and bureaucracy. The game ends when any
// player connects 18 cities (or the round cap is reached); the winner is the
// player able to power the most cities, with money as the tie-breaker.
//
// All randomness flows through the seeded rand.Rand supplied at setup, so
// runs are reproducible.
package engine
