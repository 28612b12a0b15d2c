package replay

import (
	"log"
	"sync"

	"github.com/nelsp/pb-power-grid/game/engine"
)

// Recorder implements engine.Recorder for one game, appending each snapshot
// to the store with a monotonically increasing sequence number. Storage
// failures are logged and the game continues; replay data is best effort.
type Recorder struct {
	store  *Store
	gameID string
	logger *log.Logger

	mu  sync.Mutex
	seq int
}

// Recorder returns a recorder bound to the given game, continuing from any
// snapshots already stored.
func (s *Store) Recorder(gameID string) *Recorder {
	seq, err := s.CountSnapshots(gameID)
	if err != nil {
		seq = 0
	}
	return &Recorder{store: s, gameID: gameID, seq: seq}
}

// SetLogger directs storage failures to the given logger.
func (r *Recorder) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Record stores one snapshot.
func (r *Recorder) Record(description string, state *engine.GameState) {
	r.mu.Lock()
	seq := r.seq
	r.seq++
	r.mu.Unlock()

	if err := r.store.AppendSnapshot(r.gameID, seq, description, state); err != nil {
		if r.logger != nil {
			r.logger.Printf("replay: failed to store snapshot %d for game %s: %v", seq, r.gameID, err)
		}
	}
}

// Seq returns the next sequence number to be written.
func (r *Recorder) Seq() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}
