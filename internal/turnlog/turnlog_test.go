package turnlog

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := setupStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	logs := []TurnLog{
		{
			SessionID: "s1", TurnID: "t1", Mode: "assistant", Route: "light",
			Plan: "greet back", Draft: "hi!", FinalOutput: "hi!",
			CritiquePassed: true, Attempts: 1,
			Duration: 800 * time.Millisecond, CreatedAt: base,
		},
		{
			SessionID: "s1", TurnID: "t2", Mode: "assistant", Route: "max",
			FinalOutput: "careful answer", Issues: []string{"too long", "repeats itself"},
			Attempts: 3, Duration: 12 * time.Second, CreatedAt: base.Add(time.Minute),
		},
	}
	for _, tl := range logs {
		if err := store.Record(tl); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d logs, want 2", len(got))
	}

	// Most recent first.
	if got[0].TurnID != "t2" || got[1].TurnID != "t1" {
		t.Errorf("order: got %s, %s", got[0].TurnID, got[1].TurnID)
	}

	newest := got[0]
	if newest.Route != "max" || newest.Attempts != 3 {
		t.Errorf("fields: got route=%q attempts=%d", newest.Route, newest.Attempts)
	}
	if len(newest.Issues) != 2 || newest.Issues[0] != "too long" {
		t.Errorf("issues: got %v", newest.Issues)
	}
	if newest.Duration != 12*time.Second {
		t.Errorf("duration: got %v", newest.Duration)
	}
	if !newest.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("created_at: got %v", newest.CreatedAt)
	}
	if newest.CritiquePassed {
		t.Error("critique_passed should round-trip false")
	}
	if !got[1].CritiquePassed {
		t.Error("critique_passed should round-trip true")
	}
}

func TestRecord_DuplicateTurnRejected(t *testing.T) {
	store := setupStore(t)

	tl := TurnLog{SessionID: "s1", TurnID: "t1", Mode: "assistant", Route: "light"}
	if err := store.Record(tl); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(tl); err == nil {
		t.Error("duplicate (session, turn) accepted")
	}
}

func TestRecent_Limit(t *testing.T) {
	store := setupStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tl := TurnLog{
			SessionID: "s1", TurnID: string(rune('a' + i)), Mode: "assistant",
			Route: "standard", CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Record(tl); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d logs, want 2", len(got))
	}
	if got[0].TurnID != "e" {
		t.Errorf("newest first: got %q", got[0].TurnID)
	}
}
