// Package candidate defines the closed set of address-bar suggestion
// candidates and the naked-URL equality form used to merge them across
// sources.
package candidate

import "strings"

// Kind tags which variant a Candidate holds. The set is closed and
// exhaustive: the processor switches on Kind and every switch must
// handle all seven.
type Kind int

const (
	// KindUnknown exists only for forward-compatibility with remote
	// responses that carry fields this engine doesn't recognize. It
	// must never reach the processor's output.
	KindUnknown Kind = iota
	KindPhrase
	KindWebsite
	KindBookmark
	KindHistoryEntry
	KindInternalPage
	KindOpenTab
)

func (k Kind) String() string {
	switch k {
	case KindPhrase:
		return "phrase"
	case KindWebsite:
		return "website"
	case KindBookmark:
		return "bookmark"
	case KindHistoryEntry:
		return "history"
	case KindInternalPage:
		return "internal_page"
	case KindOpenTab:
		return "open_tab"
	default:
		return "unknown"
	}
}

// Candidate is a single address-bar suggestion. Fields not relevant to
// a given Kind are left zero; the accessors below know which fields
// apply to which Kind.
type Candidate struct {
	Kind Kind

	Title string
	URL   string

	// Phrase carries the raw search phrase for KindPhrase (Title is
	// unused for phrases; Phrase is the searchable text).
	Phrase string

	VisitCount     int
	FailedToLoad   bool
	IsFavorite     bool
	allowTopHits   bool
	nakedURLCached string
	nakedURLSet    bool
}

// NewPhrase builds a search-phrase candidate. Never allowed in top hits.
func NewPhrase(phrase string) Candidate {
	return Candidate{Kind: KindPhrase, Phrase: phrase}
}

// NewWebsite builds a candidate for a URL not known locally. Always
// allowed in top hits.
func NewWebsite(url string) Candidate {
	return Candidate{Kind: KindWebsite, URL: url, allowTopHits: true}
}

// NewBookmark builds a bookmark candidate. allowedInTopHits must be
// computed by the caller — it is platform-dependent.
func NewBookmark(title, url string, isFavorite, allowedInTopHits bool) Candidate {
	return Candidate{
		Kind:         KindBookmark,
		Title:        title,
		URL:          url,
		IsFavorite:   isFavorite,
		allowTopHits: allowedInTopHits,
	}
}

// NewHistoryEntry builds a history candidate. allowedInTopHits must be
// computed by the caller.
func NewHistoryEntry(title, url string, visitCount int, failedToLoad, allowedInTopHits bool) Candidate {
	return Candidate{
		Kind:         KindHistoryEntry,
		Title:        title,
		URL:          url,
		VisitCount:   visitCount,
		FailedToLoad: failedToLoad,
		allowTopHits: allowedInTopHits,
	}
}

// NewInternalPage builds a browser-internal page candidate. Never
// allowed in top hits.
func NewInternalPage(title, url string) Candidate {
	return Candidate{Kind: KindInternalPage, Title: title, URL: url}
}

// NewOpenTab builds a currently-open-tab candidate. Always allowed in
// top hits.
func NewOpenTab(title, url string) Candidate {
	return Candidate{Kind: KindOpenTab, Title: title, URL: url, allowTopHits: true}
}

// AllowedInTopHits reports whether this candidate may appear in the
// top-hits section. It is derived at construction time, never
// user-editable.
func (c Candidate) AllowedInTopHits() bool {
	switch c.Kind {
	case KindWebsite, KindOpenTab:
		return true
	case KindInternalPage, KindPhrase, KindUnknown:
		return false
	default:
		return c.allowTopHits
	}
}

// WithAllowedInTopHits returns a copy of c with its top-hits flag
// overridden. Used by the processor's promotion/merge stages (D, E).
func (c Candidate) WithAllowedInTopHits(allowed bool) Candidate {
	c.allowTopHits = allowed
	return c
}

// WithTitle returns a copy of c with its title replaced. Used by the
// processor's title-backfill stage (F).
func (c Candidate) WithTitle(title string) Candidate {
	c.Title = title
	return c
}

// HasURL reports whether this candidate carries a URL (all kinds
// except KindPhrase and KindUnknown).
func (c Candidate) HasURL() bool {
	return c.URL != ""
}

// NakedURL returns the canonical form of c.URL used only for
// cross-source equality: no scheme, no "www." prefix, no trailing
// slash, but path and query preserved. Candidates without a URL
// (KindPhrase, KindUnknown) return "".
func (c Candidate) NakedURL() string {
	if c.nakedURLSet {
		return c.nakedURLCached
	}
	return NakeURL(c.URL)
}

// precomputeNakedURL memoizes the naked form; the processor calls this
// once per candidate before repeated dedup/merge comparisons.
func (c Candidate) precomputeNakedURL() Candidate {
	c.nakedURLCached = NakeURL(c.URL)
	c.nakedURLSet = true
	return c
}

// Precompute returns a copy of c with its naked URL memoized.
func (c Candidate) Precompute() Candidate {
	return c.precomputeNakedURL()
}

// NakeURL computes the canonical naked-URL equality key for an
// arbitrary URL string: strip scheme, strip a leading "www.", strip a
// single trailing slash from the path.
func NakeURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := raw
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	// Split off any trailing slash that marks a bare root/path, but
	// keep internal slashes (path segments) intact.
	if strings.HasSuffix(s, "/") && len(s) > 1 {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}

// IsRootNakedURL reports whether a naked URL has no path beyond "/"
// and no query string — i.e. it names a bare host.
func IsRootNakedURL(naked string) bool {
	return !strings.ContainsAny(naked, "/?")
}
