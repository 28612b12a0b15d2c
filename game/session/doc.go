// Package session manages the lifecycle of running games.
//
// The session package handles:
//   - Creating and tracking game sessions by ID
//   - Thread-safe concurrent access to sessions
//   - Expiring sessions that have not been touched recently
//   - Optional persistence of sessions across restarts
//
// Persistence:
//
// A running game cannot be serialized directly: its strategies and random
// source are live objects. Games are fully deterministic from their setup
// (configuration, players, strategies, seed), so persistence stores only
// that metadata plus the number of rounds played, and rebuilds a session by
// creating the game again and replaying the same rounds.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", game, meta)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	manager.Delete(sess.ID)
//
// With persistence:
//
//	fp, err := session.NewFilePersistence("sessions", rebuild)
//	manager := session.NewManagerWithPersistence(fp)
//	manager.LoadPersistedSessions()
package session
