// Package tracker implements the blocked-tracker daily-stats
// aggregator: a single-writer in-memory pack with a debounced commit
// to a persistent store, day-boundary rollover, and 7-day retention.
package tracker

import "time"

// Pack is the in-memory summary of blocked-tracker counts for one
// calendar day.
type Pack struct {
	Timestamp time.Time
	Trackers  map[string]int64
}

// StartOfDay truncates t to midnight UTC — the canonical bucket key.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewPack creates an empty pack for the day containing t.
func NewPack(t time.Time) Pack {
	return Pack{Timestamp: StartOfDay(t), Trackers: make(map[string]int64)}
}

// Increment bumps company's counter by one.
func (p *Pack) Increment(company string) {
	if p.Trackers == nil {
		p.Trackers = make(map[string]int64)
	}
	p.Trackers[company]++
}

// IsToday reports whether the pack's day equals start-of-day(now).
// Equality, not ordering — a backward clock step still counts as a
// rollover.
func (p Pack) IsToday(now time.Time) bool {
	return p.Timestamp.Equal(StartOfDay(now))
}
