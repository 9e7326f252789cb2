package tracker

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// RetentionDays is the 7-day retention window (today included, so the
// cutoff is today minus RetentionDays-1).
const RetentionDays = 7

// Row is one persisted (timestamp, company_name) -> count record.
// Encoded with msgpack rather than the JSON used for favourites and
// history — this table is write-heavy (one upsert per debounced
// commit) and binary encoding keeps repeated rewrites cheap.
type Row struct {
	Timestamp time.Time `msgpack:"timestamp"`
	Company   string    `msgpack:"company_name"`
	Count     int64     `msgpack:"count"`
}

// Store persists the blocked-tracker table to a single msgpack file,
// load/mutate/save under one mutex.
type Store struct {
	mu   sync.Mutex
	path string
	Rows []Row
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "omnisuggest"), nil
}

// Load reads the tracker table from disk, creating an empty store if
// the file doesn't exist yet.
func Load() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "trackers.msgpack"))
}

// LoadFrom reads the tracker table from a specific path (used directly
// by tests).
func LoadFrom(path string) (*Store, error) {
	store := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return store, nil
	}
	if err := msgpack.Unmarshal(data, &store.Rows); err != nil {
		return nil, err
	}
	return store, nil
}

// save writes the table to disk. Caller must hold s.mu.
func (s *Store) save() error {
	data, err := msgpack.Marshal(s.Rows)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Upsert replaces (not adds to) the count for (timestamp, company) —
// the pack already holds the day's running total, so each commit is a
// full overwrite.
func (s *Store) Upsert(timestamp time.Time, company string, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := StartOfDay(timestamp)
	for i := range s.Rows {
		if s.Rows[i].Timestamp.Equal(ts) && s.Rows[i].Company == company {
			s.Rows[i].Count = count
			return s.save()
		}
	}
	s.Rows = append(s.Rows, Row{Timestamp: ts, Company: company, Count: count})
	return s.save()
}

// PurgeOlderThan deletes every row with timestamp strictly before
// cutoff.
func (s *Store) PurgeOlderThan(cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.Rows[:0]
	for _, r := range s.Rows {
		if !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	s.Rows = kept
	return s.save()
}

// Fetch7Day sums every row since today-6 inclusive, excluding
// zero-count rows.
func (s *Store) Fetch7Day(today time.Time) map[string]int64 {
	cutoff := StartOfDay(today).AddDate(0, 0, -(RetentionDays - 1))
	return s.sumSince(cutoff, nil)
}

// historicalSince sums rows from cutoff on, skipping rows whose
// timestamp equals excludeDay — used internally
// by the aggregator to merge the persisted history with the in-memory
// current-day pack without double-counting today's last committed
// total.
func (s *Store) historicalSince(cutoff, excludeDay time.Time) map[string]int64 {
	return s.sumSince(cutoff, &excludeDay)
}

func (s *Store) sumSince(cutoff time.Time, excludeDay *time.Time) map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64)
	for _, r := range s.Rows {
		if r.Timestamp.Before(cutoff) || r.Count == 0 {
			continue
		}
		if excludeDay != nil && r.Timestamp.Equal(*excludeDay) {
			continue
		}
		out[r.Company] += r.Count
	}
	return out
}

// FetchCurrentDay filters persisted rows to today's timestamp.
func (s *Store) FetchCurrentDay(today time.Time) map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := StartOfDay(today)
	out := make(map[string]int64)
	for _, r := range s.Rows {
		if r.Timestamp.Equal(ts) && r.Count != 0 {
			out[r.Company] = r.Count
		}
	}
	return out
}

// Clear deletes every persisted row.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Rows = nil
	return s.save()
}
