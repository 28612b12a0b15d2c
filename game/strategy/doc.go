// Package strategy provides the built-in decision strategies the engine can
// drive: random, greedy, conservative, and balanced, plus a deterministic
// scripted strategy for tests and tooling.
//
// Strategies implement engine.Strategy. They hold their own seeded random
// source so simulation runs stay reproducible; nothing in this package
// touches the global rand state.
//
// Usage:
//
//	rng := rand.New(rand.NewSource(seed))
//	st, err := strategy.New("greedy", rng)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The engine validates every returned action, so a strategy bug degrades to
// retries and logged rejections rather than corrupted state.
package strategy
