package session

import (
	"errors"
	"testing"
)

func newTestPersistence(t *testing.T) *FilePersistence {
	t.Helper()
	fp, err := NewFilePersistence(t.TempDir(), buildTestGame)
	if err != nil {
		t.Fatalf("NewFilePersistence: %v", err)
	}
	return fp
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	sess, err := m.Create("replay-me", newTestGame(t), testMeta())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Advance the live game a couple of rounds and save.
	for i := 0; i < 2; i++ {
		if err := sess.Game.PlayRound(); err != nil {
			t.Fatalf("PlayRound %d: %v", i+1, err)
		}
	}
	if err := m.Save("replay-me"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !fp.Exists("replay-me") {
		t.Fatal("saved session should exist on disk")
	}

	loaded, err := fp.Load("replay-me")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The rebuilt game replayed the same seeded rounds, so its state
	// matches the live one.
	want := sess.Game.State()
	got := loaded.Game.State()
	if got.Round != want.Round {
		t.Errorf("round = %d, want %d", got.Round, want.Round)
	}
	for i, p := range want.Players {
		if got.Players[i].Money != p.Money {
			t.Errorf("player %d money = %d, want %d", i, got.Players[i].Money, p.Money)
		}
		if len(got.Players[i].Plants) != len(p.Plants) {
			t.Errorf("player %d plants = %d, want %d", i, len(got.Players[i].Plants), len(p.Plants))
		}
	}
	if loaded.Meta.Seed != testMeta().Seed {
		t.Errorf("seed = %d, want %d", loaded.Meta.Seed, testMeta().Seed)
	}
}

func TestFilePersistenceLoadMissing(t *testing.T) {
	fp := newTestPersistence(t)
	if _, err := fp.Load("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestFilePersistenceDelete(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	m.Create("doomed", newTestGame(t), testMeta())
	if err := fp.Delete("doomed"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fp.Exists("doomed") {
		t.Error("deleted session still exists")
	}
	if err := fp.Delete("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestFilePersistenceListAll(t *testing.T) {
	fp := newTestPersistence(t)
	m := NewManagerWithPersistence(fp)

	m.Create("one", newTestGame(t), testMeta())
	m.Create("two", newTestGame(t), testMeta())

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v, want 2 entries", ids)
	}
}

func TestLoadPersistedSessions(t *testing.T) {
	fp := newTestPersistence(t)

	first := NewManagerWithPersistence(fp)
	first.Create("survivor", newTestGame(t), testMeta())

	// A fresh manager over the same directory picks the session up.
	second := NewManagerWithPersistence(fp)
	if err := second.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions: %v", err)
	}
	if second.Count() != 1 {
		t.Fatalf("count = %d, want 1", second.Count())
	}
	sess, err := second.Get("survivor")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Meta.ConfigName != "testland" {
		t.Errorf("config name = %q, want testland", sess.Meta.ConfigName)
	}
}

func TestNewFilePersistenceRequiresBuilder(t *testing.T) {
	if _, err := NewFilePersistence(t.TempDir(), nil); err == nil {
		t.Error("expected error for nil builder")
	}
}
