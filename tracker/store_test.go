package tracker

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStore_UpsertReplacesNotAdds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackers.msgpack")
	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	if err := s.Upsert(day, "Acme", 3); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Upsert(day, "Acme", 5); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("expected a single row after re-upsert, got %d", len(s.Rows))
	}
	if s.Rows[0].Count != 5 {
		t.Errorf("count = %d, want 5 (replace, not add)", s.Rows[0].Count)
	}
}

func TestStore_PurgeOlderThan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackers.msgpack")
	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	today := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	old := today.AddDate(0, 0, -10)
	recent := today.AddDate(0, 0, -2)

	s.Upsert(old, "Acme", 1)
	s.Upsert(recent, "Acme", 2)

	cutoff := StartOfDay(today).AddDate(0, 0, -(RetentionDays - 1))
	if err := s.PurgeOlderThan(cutoff); err != nil {
		t.Fatalf("PurgeOlderThan: %v", err)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("expected only the recent row to survive, got %d rows", len(s.Rows))
	}
	if !s.Rows[0].Timestamp.Equal(StartOfDay(recent)) {
		t.Errorf("surviving row = %v, want %v", s.Rows[0].Timestamp, recent)
	}
}

func TestStore_Fetch7DayAndCurrentDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackers.msgpack")
	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	today := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	s.Upsert(today, "Acme", 4)
	s.Upsert(today.AddDate(0, 0, -3), "Acme", 6)
	s.Upsert(today.AddDate(0, 0, -3), "Globex", 1)
	s.Upsert(today.AddDate(0, 0, -9), "Acme", 100) // outside the 7-day window

	weekly := s.Fetch7Day(today)
	if weekly["Acme"] != 10 {
		t.Errorf("weekly[Acme] = %d, want 10 (4 + 6, excluding the 9-day-old row)", weekly["Acme"])
	}
	if weekly["Globex"] != 1 {
		t.Errorf("weekly[Globex] = %d, want 1", weekly["Globex"])
	}

	current := s.FetchCurrentDay(today)
	if current["Acme"] != 4 {
		t.Errorf("current[Acme] = %d, want 4", current["Acme"])
	}
	if _, ok := current["Globex"]; ok {
		t.Error("current day should not include Globex's earlier row")
	}
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackers.msgpack")
	s, _ := LoadFrom(path)
	s.Upsert(time.Now(), "Acme", 1)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(s.Rows) != 0 {
		t.Errorf("expected no rows after Clear, got %d", len(s.Rows))
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Rows) != 0 {
		t.Errorf("cleared state should persist across reload, got %d rows", len(reloaded.Rows))
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trackers.msgpack")
	s, _ := LoadFrom(path)
	day := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	s.Upsert(day, "Acme", 7)

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Rows) != 1 || reloaded.Rows[0].Company != "Acme" || reloaded.Rows[0].Count != 7 {
		t.Errorf("reloaded rows = %+v, want one Acme row with count 7", reloaded.Rows)
	}
}

func TestStore_LoadFromMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.msgpack")
	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom of a missing file should not error: %v", err)
	}
	if len(s.Rows) != 0 {
		t.Errorf("expected an empty store, got %d rows", len(s.Rows))
	}
}
