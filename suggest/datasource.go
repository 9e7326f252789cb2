package suggest

import (
	"github.com/omnisuggest/core/candidate"
	"github.com/omnisuggest/core/favourites"
	"github.com/omnisuggest/core/history"
	"github.com/omnisuggest/core/internalpage"
	"github.com/omnisuggest/core/session"
)

// DataSource is the injected snapshot provider the Loader reads from
// once per query. Callers never store it — it is an input parameter
// of GetSuggestions, not a field, which sidesteps the weak-back-
// reference cycle a stored loader-owns-its-data-source relationship
// would otherwise create.
type DataSource interface {
	Bookmarks() []candidate.Candidate
	History() []candidate.Candidate
	InternalPages() []candidate.Candidate
	OpenTabs() []candidate.Candidate
	Platform() Platform

	// SuggestionDataFromURL resolves auxiliary display data (e.g. a
	// page title) for a single suggestion URL out-of-band; it plays no
	// part in scoring or ranking.
	SuggestionDataFromURL(url string, params map[string]string, completion func(title string, err error))
}

// FavouritesBookmarkSource adapts a favourites.Store into the
// bookmark half of a DataSource, applying the platform-dependent
// top-hits rule.
type FavouritesBookmarkSource struct {
	Store    *favourites.Store
	Plat     Platform
	Favorite func(url string) bool
}

// NewFavouritesBookmarkSource wraps store. isFavorite reports whether
// a given bookmark URL is marked as the user's favourite (the source
// favourites.Store has no favourite flag of its own — every entry it
// holds is, by construction, a saved bookmark, so isFavorite lets the
// embedder layer in whichever "starred" concept its UI tracks).
func NewFavouritesBookmarkSource(store *favourites.Store, plat Platform, isFavorite func(url string) bool) *FavouritesBookmarkSource {
	return &FavouritesBookmarkSource{Store: store, Plat: plat, Favorite: isFavorite}
}

// Bookmarks returns every favourite as a Bookmark candidate.
func (s *FavouritesBookmarkSource) Bookmarks() []candidate.Candidate {
	out := make([]candidate.Candidate, 0, s.Store.Len())
	for _, f := range s.Store.Favourites {
		isFav := s.Favorite != nil && s.Favorite(f.URL)
		allowed := isFav
		if s.Plat == PlatformMobile {
			allowed = true
		}
		out = append(out, candidate.NewBookmark(f.Title, f.URL, isFav, allowed))
	}
	return out
}

// HistorySource adapts a history.Store into the history half of a
// DataSource, applying the low-visits/root/failed-to-load rule below.
type HistorySource struct {
	Store *history.Store
}

// NewHistorySource wraps store.
func NewHistorySource(store *history.Store) *HistorySource {
	return &HistorySource{Store: store}
}

// History returns every history entry as a HistoryEntry candidate with
// allowed_in_top_hits computed from visit count, root-ness, and
// failed-to-load status.
func (s *HistorySource) History() []candidate.Candidate {
	entries := s.Store.All()
	out := make([]candidate.Candidate, 0, len(entries))
	for _, e := range entries {
		isRoot := candidate.IsRootNakedURL(candidate.NakeURL(e.URL))
		lowVisits := e.VisitCount < 4
		allowed := !(e.FailedToLoad || (lowVisits && !isRoot))
		out = append(out, candidate.NewHistoryEntry(e.Title, e.URL, e.VisitCount, e.FailedToLoad, allowed))
	}
	return out
}

// SessionTabSource adapts a session.Session's buffers into the
// open-tabs half of a DataSource, using each buffer's current page as
// the tab's displayed URL.
type SessionTabSource struct {
	Session *session.Session
	// Title resolves a buffer's display title; the session package
	// tracks only URL and scroll position, so the title comes from
	// whatever the embedder's tab strip already knows.
	Title func(url string) string
}

// NewSessionTabSource wraps sess.
func NewSessionTabSource(sess *session.Session, title func(url string) string) *SessionTabSource {
	return &SessionTabSource{Session: sess, Title: title}
}

// OpenTabs returns every buffer's current page as an OpenTab candidate.
func (s *SessionTabSource) OpenTabs() []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(s.Session.Buffers))
	for _, buf := range s.Session.Buffers {
		if buf.Current.URL == "" {
			continue
		}
		title := ""
		if s.Title != nil {
			title = s.Title(buf.Current.URL)
		}
		out = append(out, candidate.NewOpenTab(title, buf.Current.URL))
	}
	return out
}

// StaticInternalPages adapts the compile-time internal-page registry
// into a []candidate.Candidate slice. A registry failure (malformed
// embedded markup) degrades to no internal-page suggestions rather
// than failing the whole query.
func StaticInternalPages() []candidate.Candidate {
	pages, err := internalpage.All()
	if err != nil {
		return nil
	}
	out := make([]candidate.Candidate, 0, len(pages))
	for _, p := range pages {
		out = append(out, candidate.NewInternalPage(p.Title, p.URL))
	}
	return out
}

// Source composes the concrete adapters above into one DataSource.
// Embedders assemble it once per browser instance and pass it to
// Loader.GetSuggestions per query; it is never stored by the loader,
// which avoids a cyclic ownership between loader and data source.
type Source struct {
	Bookmark *FavouritesBookmarkSource
	Hist     *HistorySource
	Tabs     *SessionTabSource
	Plat     Platform
	// DataFromURL resolves SuggestionDataFromURL; nil means "unsupported".
	DataFromURL func(url string, params map[string]string, completion func(title string, err error))
}

func (s *Source) Bookmarks() []candidate.Candidate { return s.Bookmark.Bookmarks() }
func (s *Source) History() []candidate.Candidate   { return s.Hist.History() }
func (s *Source) OpenTabs() []candidate.Candidate  { return s.Tabs.OpenTabs() }
func (s *Source) InternalPages() []candidate.Candidate {
	return StaticInternalPages()
}
func (s *Source) Platform() Platform { return s.Plat }

func (s *Source) SuggestionDataFromURL(url string, params map[string]string, completion func(title string, err error)) {
	if s.DataFromURL == nil {
		completion("", nil)
		return
	}
	s.DataFromURL(url, params, completion)
}
