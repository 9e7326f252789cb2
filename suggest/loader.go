package suggest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/omnisuggest/core/autocomplete"
	"github.com/omnisuggest/core/candidate"
)

// Loader fires one query's DataSource snapshot and remote autocomplete
// fetch concurrently, then runs Process and invokes completion at most
// once. A waitgroup joins the two fetches, and a uuid-tagged
// latest-request tracker stands in for full cancellation propagation:
// a completion whose request id has been superseded by a newer call
// for the same query is simply dropped, so a slow stale query can
// never clobber a faster later one.
type Loader struct {
	client *autocomplete.Client
	caps   Caps

	mu     sync.Mutex
	latest map[string]uuid.UUID
}

// NewLoader creates a Loader using client for the remote fetch and the
// product's default budget caps.
func NewLoader(client *autocomplete.Client) *Loader {
	return &Loader{
		client: client,
		caps:   DefaultCaps(),
		latest: make(map[string]uuid.UUID),
	}
}

// WithCaps overrides the loader's budget caps (for tests).
func (l *Loader) WithCaps(caps Caps) *Loader {
	l.caps = caps
	return l
}

// GetSuggestions runs one suggestion query. completion is called
// exactly once, except when a later call for the same query string
// supersedes this one before it finishes, in which case completion is
// never called at all (the superseding call's completion is the one
// of record).
func (l *Loader) GetSuggestions(ctx context.Context, query string, ds DataSource, completion func(*Result, error)) {
	if ds == nil {
		completion(nil, ErrNoDataSource)
		return
	}
	if query == "" {
		completion(&Result{}, nil)
		return
	}

	reqID := uuid.New()
	l.mu.Lock()
	l.latest[query] = reqID
	l.mu.Unlock()

	var wg sync.WaitGroup
	var local Local
	var remote []candidate.Candidate
	var remoteErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		local = Local{
			History:       ds.History(),
			Bookmarks:     ds.Bookmarks(),
			InternalPages: ds.InternalPages(),
			OpenTabs:      ds.OpenTabs(),
		}
	}()
	go func() {
		defer wg.Done()
		remote, remoteErr = l.client.Fetch(ctx, query)
	}()
	wg.Wait()

	if ctx.Err() != nil {
		if l.isCurrent(query, reqID) {
			completion(nil, ctx.Err())
		}
		return
	}
	if !l.isCurrent(query, reqID) {
		return
	}

	result, err := Process(query, local, remote, ds.Platform(), l.caps)
	if err != nil {
		completion(result, err)
		return
	}
	completion(result, remoteErr)
}

func (l *Loader) isCurrent(query string, reqID uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest[query] == reqID
}
