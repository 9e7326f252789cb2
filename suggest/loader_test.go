package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/omnisuggest/core/autocomplete"
	"github.com/omnisuggest/core/candidate"
)

type fakeDataSource struct {
	platform Platform
	history  func() []candidate.Candidate
}

func (f fakeDataSource) Bookmarks() []candidate.Candidate     { return nil }
func (f fakeDataSource) InternalPages() []candidate.Candidate { return nil }
func (f fakeDataSource) OpenTabs() []candidate.Candidate      { return nil }
func (f fakeDataSource) Platform() Platform                   { return f.platform }
func (f fakeDataSource) History() []candidate.Candidate {
	if f.history != nil {
		return f.history()
	}
	return nil
}
func (f fakeDataSource) SuggestionDataFromURL(url string, params map[string]string, completion func(string, error)) {
	completion("", nil)
}

func TestLoader_DiscardsStaleCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	client := autocomplete.New(autocomplete.WithEndpoint(srv.URL))
	loader := NewLoader(client)

	started := make(chan struct{})
	release := make(chan struct{})

	slow := fakeDataSource{
		platform: PlatformDesktop,
		history: func() []candidate.Candidate {
			close(started)
			<-release
			return []candidate.Candidate{candidate.NewHistoryEntry("Stale", "https://stale.example", 10, false, true)}
		},
	}
	fast := fakeDataSource{
		platform: PlatformDesktop,
		history: func() []candidate.Candidate {
			return []candidate.Candidate{candidate.NewHistoryEntry("Fresh", "https://fresh.example", 10, false, true)}
		},
	}

	var mu sync.Mutex
	var staleCalled, freshCalled bool

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loader.GetSuggestions(context.Background(), "query", slow, func(r *Result, err error) {
			mu.Lock()
			staleCalled = true
			mu.Unlock()
		})
	}()

	<-started

	loader.GetSuggestions(context.Background(), "query", fast, func(r *Result, err error) {
		mu.Lock()
		freshCalled = true
		mu.Unlock()
	})

	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !freshCalled {
		t.Error("the superseding call's completion should have fired")
	}
	if staleCalled {
		t.Error("the superseded call's completion should have been discarded")
	}
}

func TestLoader_NoDataSource(t *testing.T) {
	client := autocomplete.New()
	loader := NewLoader(client)

	var gotErr error
	loader.GetSuggestions(context.Background(), "query", nil, func(r *Result, err error) {
		gotErr = err
	})
	if gotErr != ErrNoDataSource {
		t.Errorf("err = %v, want ErrNoDataSource", gotErr)
	}
}

func TestLoader_EmptyQuery(t *testing.T) {
	client := autocomplete.New()
	loader := NewLoader(client)

	ds := fakeDataSource{platform: PlatformDesktop}
	var got *Result
	loader.GetSuggestions(context.Background(), "", ds, func(r *Result, err error) {
		got = r
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	if got == nil || !got.Empty() {
		t.Errorf("result = %+v, want empty", got)
	}
}
