package tracker

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultDebounceInterval is the aggregator's default commit debounce
// (overridable, e.g. by tests).
const DefaultDebounceInterval = 1 * time.Second

// EventKind tags the aggregator's non-fatal error-reporting channel.
// None of these are fatal: the in-memory pack stays authoritative and
// the next record event retries the commit.
type EventKind int

const (
	EventFailedToStore EventKind = iota
	EventFailedToFetchSummary
	EventFailedToLoadCurrent
	EventFailedToClear
)

func (k EventKind) String() string {
	switch k {
	case EventFailedToStore:
		return "failed_to_store"
	case EventFailedToFetchSummary:
		return "failed_to_fetch_summary"
	case EventFailedToLoadCurrent:
		return "failed_to_load_current"
	case EventFailedToClear:
		return "failed_to_clear"
	default:
		return "unknown"
	}
}

// Event is one error report delivered on Aggregator.Events().
type Event struct {
	Kind EventKind
	Err  error
}

// Aggregator is the single-writer actor owning the in-memory Pack: one
// goroutine drains a mailbox of closures instead of guarding the pack
// with a mutex directly, so every mutation — record, reset, commit —
// serializes through the same channel.
type Aggregator struct {
	store    *Store
	debounce time.Duration
	now      func() time.Time

	mailbox chan func()
	updates chan struct{}
	events  chan Event

	pack Pack

	timerMu sync.Mutex
	timer   *time.Timer

	wg sync.WaitGroup
}

// NewAggregator creates an Aggregator backed by store, starts its
// actor goroutine, and returns it. A zero or negative debounce falls
// back to DefaultDebounceInterval.
func NewAggregator(store *Store, debounce time.Duration) *Aggregator {
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}
	a := &Aggregator{
		store:    store,
		debounce: debounce,
		now:      time.Now,
		mailbox:  make(chan func(), 64),
		updates:  make(chan struct{}, 1),
		events:   make(chan Event, 16),
		pack:     NewPack(time.Now()),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

func (a *Aggregator) run() {
	defer a.wg.Done()
	for fn := range a.mailbox {
		fn()
	}
}

// Updates returns the broadcast channel that receives a value after
// each successful current-day commit. Previous-day commits (which are
// followed, after the debounce interval, by a current-day one that the
// same record call schedules) emit nothing.
func (a *Aggregator) Updates() <-chan struct{} { return a.updates }

// Events returns the aggregator's non-fatal error-reporting channel.
func (a *Aggregator) Events() <-chan Event { return a.events }

// Record increments company's counter for the current pack. If the
// pack's day has rolled over, the stale pack is committed immediately
// before the new one is created and incremented. A debounced commit
// is then (re)scheduled. Record blocks until the increment is
// observable to a subsequent call in the actor.
func (a *Aggregator) Record(company string) {
	done := make(chan struct{})
	a.mailbox <- func() {
		defer close(done)
		now := a.now()
		if !a.pack.IsToday(now) {
			stale := a.pack
			a.pack = NewPack(now)
			a.commit(stale)
		}
		a.pack.Increment(company)
		a.scheduleCommit()
	}
	<-done
}

// Reset drops in-memory counts, cancels any pending commit, clears the
// persisted table, and starts a fresh pack for today. Emits an update
// notification.
func (a *Aggregator) Reset() {
	done := make(chan struct{})
	a.mailbox <- func() {
		defer close(done)
		a.cancelTimer()
		a.pack = NewPack(a.now())
		if err := a.store.Clear(); err != nil {
			a.reportEvent(EventFailedToClear, err)
		}
		a.broadcastUpdate()
	}
	<-done
}

// HandleTermination flushes any pending commit and waits for it to
// complete (or for ctx to expire) before returning, so a process exit
// never drops the current pack's unsaved counts.
func (a *Aggregator) HandleTermination(ctx context.Context) error {
	done := make(chan struct{})
	a.mailbox <- func() {
		defer close(done)
		a.cancelTimer()
		a.commit(a.pack)
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FetchPrivacyStats returns the 7-day aggregate: the persisted history
// (excluding today, to avoid double-counting a prior commit) summed
// with the in-memory current-day pack.
func (a *Aggregator) FetchPrivacyStats() map[string]int64 {
	result := make(chan map[string]int64, 1)
	a.mailbox <- func() {
		now := a.now()
		cutoff := StartOfDay(now).AddDate(0, 0, -(RetentionDays - 1))
		stats := a.store.historicalSince(cutoff, StartOfDay(now))
		for company, count := range a.pack.Trackers {
			stats[company] += count
		}
		result <- stats
	}
	return <-result
}

// ClearPrivacyStats is the public entry point behind Reset, named to
// pair with FetchPrivacyStats.
func (a *Aggregator) ClearPrivacyStats() { a.Reset() }

// scheduleCommit cancels any pending debounce timer and starts a new
// one capturing the current pack by value. Must run on the actor
// goroutine.
func (a *Aggregator) scheduleCommit() {
	a.cancelTimer()
	pack := a.pack

	a.timerMu.Lock()
	a.timer = time.AfterFunc(a.debounce, func() {
		a.mailbox <- func() { a.commit(pack) }
	})
	a.timerMu.Unlock()
}

func (a *Aggregator) cancelTimer() {
	a.timerMu.Lock()
	defer a.timerMu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// commit upserts every (company, count) in pack into the store and,
// when pack isn't today's, purges retention-expired rows. Must run on
// the actor goroutine.
func (a *Aggregator) commit(pack Pack) {
	for company, count := range pack.Trackers {
		if err := a.store.Upsert(pack.Timestamp, company, count); err != nil {
			a.reportEvent(EventFailedToStore, err)
			return
		}
	}

	if !pack.IsToday(a.now()) {
		cutoff := StartOfDay(a.now()).AddDate(0, 0, -(RetentionDays - 1))
		if err := a.store.PurgeOlderThan(cutoff); err != nil {
			a.reportEvent(EventFailedToStore, err)
		}
		return
	}
	a.broadcastUpdate()
}

func (a *Aggregator) broadcastUpdate() {
	select {
	case a.updates <- struct{}{}:
	default:
	}
}

func (a *Aggregator) reportEvent(kind EventKind, err error) {
	log.Printf("tracker: %s: %v", kind, err)
	select {
	case a.events <- Event{Kind: kind, Err: err}:
	default:
	}
}
