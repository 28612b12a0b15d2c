// Package replay persists game history to SQLite.
//
// The replay package handles:
//   - Registering games and their setup metadata
//   - Recording a snapshot of the full game state at every transition
//   - Paginated snapshot listing and point-in-time state retrieval
//
// Snapshots are stored as LZ4-compressed JSON with a BLAKE3 checksum of the
// uncompressed payload, verified on read. A full game produces a few hundred
// snapshots; compression keeps the database small enough to retain every
// game ever played.
//
// Usage:
//
//	store, err := replay.NewStore("replays.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	store.CreateGame("game-1", "europe", []string{"ada", "bob"}, 42)
//	game.SetRecorder(store.Recorder("game-1"))
//
//	// Later: inspect history
//	metas, err := store.ListSnapshots("game-1", 0, 50, "asc")
//	state, err := store.GetSnapshot("game-1", 17)
package replay
