// Package suggest implements the suggestion processor and loader: the
// algorithmic centre that turns a query plus local/remote candidate
// snapshots into a ranked, budget-capped, three-bucket result.
package suggest

import (
	"errors"
	"sort"

	"github.com/omnisuggest/core/candidate"
	"github.com/omnisuggest/core/scorer"
)

// Platform controls the top-hits rule for bookmarks: a
// compile-time/constructor choice, never a runtime policy.
type Platform int

const (
	PlatformDesktop Platform = iota
	PlatformMobile
)

// Numeric budget constants. Exported so embedders and tests can assert
// against them directly rather than a magic number.
const (
	MaximumTotal   = 12
	MaximumTopHits = 2
	MinimumInGroup = 5
)

// Caps bundles the budget knobs as a value so tests can override them
// without touching the package constants.
type Caps struct {
	MaximumTotal   int
	MaximumTopHits int
	MinimumInGroup int
}

// DefaultCaps returns the product's standard budget.
func DefaultCaps() Caps {
	return Caps{
		MaximumTotal:   MaximumTotal,
		MaximumTopHits: MaximumTopHits,
		MinimumInGroup: MinimumInGroup,
	}
}

// Local bundles the four local candidate corpora a DataSource snapshot
// yields for one query cycle.
type Local struct {
	History       []candidate.Candidate
	Bookmarks     []candidate.Candidate
	InternalPages []candidate.Candidate
	OpenTabs      []candidate.Candidate
}

func (l Local) all() []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(l.History)+len(l.Bookmarks)+len(l.InternalPages)+len(l.OpenTabs))
	out = append(out, l.History...)
	out = append(out, l.Bookmarks...)
	out = append(out, l.InternalPages...)
	out = append(out, l.OpenTabs...)
	return out
}

// Result is the three-bucket grouped suggestion output.
type Result struct {
	TopHits               []candidate.Candidate
	DuckDuckGoSuggestions []candidate.Candidate
	LocalSuggestions      []candidate.Candidate
}

// Empty reports whether r has no suggestions at all (the empty-query
// result).
func (r *Result) Empty() bool {
	return r == nil || (len(r.TopHits) == 0 && len(r.DuckDuckGoSuggestions) == 0 && len(r.LocalSuggestions) == 0)
}

// Processor error kinds.
var (
	ErrNoDataSource     = errors.New("suggest: no data source available")
	ErrParsingFailed    = errors.New("suggest: parsing failed")
	ErrProcessingFailed = errors.New("suggest: failed to process data")
)

// Process runs stages A-K over one query's local and remote candidate
// snapshots and returns the grouped result. It performs no I/O and is
// safe to call from any goroutine.
func Process(query string, local Local, remote []candidate.Candidate, platform Platform, caps Caps) (*Result, error) {
	if query == "" {
		return &Result{}, nil
	}

	tokens := scorer.Tokenize(query)

	// Stage A: score and filter local candidates, open tabs first.
	pool := scoreAndSort(local.all(), query, tokens)

	// Stage B: remote navigationals.
	remoteNav := make([]candidate.Candidate, 0, len(remote))
	for _, r := range remote {
		if r.Kind == candidate.KindWebsite {
			remoteNav = append(remoteNav, r.Precompute())
		}
	}

	// Stage C: compose the navigational pool.
	poolC := append(append([]candidate.Candidate{}, pool...), remoteNav...)

	// Stage D: history -> bookmark/open-tab promotion.
	poolD := promote(poolC, platform)

	// Stage E: bookmark <-> history merge.
	poolE := mergeBookmarkHistory(poolD, poolC)

	// Stage F: title backfill.
	poolF := backfillTitles(poolE)

	// Stage G: dedup by naked URL, capped.
	cap := caps.MaximumTotal - caps.MinimumInGroup
	if qlen := len([]rune(query)); qlen+1 < cap {
		cap = qlen + 1
	}
	if cap < 0 {
		cap = 0
	}
	deduped := dedupByNakedURL(poolF, cap)

	// Stage H: top-hits extraction.
	topHits := extractTopHits(deduped, caps.MaximumTopHits)

	// Stage I: local-suggestions bucket.
	localSuggestions := localBucket(deduped[len(topHits):])

	// Stage J: remote bucket, excluding anything already a top hit.
	remoteBucket := filterAgainstTopHits(remote, topHits)

	// Stage K: budget and return.
	localCap := caps.MaximumTotal - len(topHits) - caps.MinimumInGroup
	if localCap < 0 {
		localCap = 0
	}
	if len(localSuggestions) > localCap {
		localSuggestions = localSuggestions[:localCap]
	}
	remoteCap := caps.MaximumTotal - len(topHits) - len(localSuggestions)
	if remoteCap < 0 {
		remoteCap = 0
	}
	if len(remoteBucket) > remoteCap {
		remoteBucket = remoteBucket[:remoteCap]
	}

	return &Result{
		TopHits:               topHits,
		DuckDuckGoSuggestions: remoteBucket,
		LocalSuggestions:      localSuggestions,
	}, nil
}

// scoredCandidate pairs a candidate with its score for stage A's sort.
type scoredCandidate struct {
	c         candidate.Candidate
	score     int
	isOpenTab bool
}

func scoreAndSort(locals []candidate.Candidate, query string, tokens []string) []candidate.Candidate {
	scored := make([]scoredCandidate, 0, len(locals))
	for _, c := range locals {
		s := scorer.Score(scorer.Input{
			Title:      c.Title,
			URL:        c.URL,
			VisitCount: c.VisitCount,
			Query:      query,
			Tokens:     tokens,
		})
		if s <= 0 {
			continue
		}
		scored = append(scored, scoredCandidate{c: c.Precompute(), score: s, isOpenTab: c.Kind == candidate.KindOpenTab})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].isOpenTab != scored[j].isOpenTab {
			return scored[i].isOpenTab
		}
		return scored[i].score > scored[j].score
	})

	out := make([]candidate.Candidate, len(scored))
	for i, sc := range scored {
		out[i] = sc.c
	}
	return out
}

// promote implements stage D: a history entry is replaced in place by
// a same-naked-URL open-tab (preferred) or bookmark elsewhere in the
// pool.
func promote(pool []candidate.Candidate, platform Platform) []candidate.Candidate {
	out := make([]candidate.Candidate, len(pool))
	copy(out, pool)

	for i, c := range pool {
		if c.Kind != candidate.KindHistoryEntry {
			continue
		}
		naked := c.NakedURL()
		if naked == "" {
			continue
		}

		var openTab, bookmark *candidate.Candidate
		for j := range pool {
			if j == i {
				continue
			}
			other := pool[j]
			if other.NakedURL() != naked {
				continue
			}
			switch other.Kind {
			case candidate.KindOpenTab:
				openTab = &pool[j]
			case candidate.KindBookmark:
				bookmark = &pool[j]
			}
		}

		switch {
		case openTab != nil:
			out[i] = *openTab
		case bookmark != nil:
			b := *bookmark
			if platform == PlatformMobile {
				b = b.WithAllowedInTopHits(true)
			} else {
				b = b.WithAllowedInTopHits(c.AllowedInTopHits())
			}
			out[i] = b
		}
	}
	return out
}

// mergeBookmarkHistory implements stage E: a bookmark whose naked URL
// matches a (pre-promotion) history entry that was itself allowed in
// top hits inherits that flag.
func mergeBookmarkHistory(poolD, poolC []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, len(poolD))
	copy(out, poolD)

	for i, c := range out {
		if c.Kind != candidate.KindBookmark {
			continue
		}
		naked := c.NakedURL()
		if naked == "" {
			continue
		}
		for _, h := range poolC {
			if h.Kind == candidate.KindHistoryEntry && h.NakedURL() == naked && h.AllowedInTopHits() {
				out[i] = c.WithAllowedInTopHits(true)
				break
			}
		}
	}
	return out
}

// backfillTitles implements stage F: an untitled history entry takes
// the title of any same-naked-URL pool entry that has one.
func backfillTitles(pool []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, len(pool))
	copy(out, pool)

	for i, c := range out {
		if c.Kind != candidate.KindHistoryEntry || c.Title != "" {
			continue
		}
		naked := c.NakedURL()
		if naked == "" {
			continue
		}
		for j, other := range pool {
			if j == i || other.Title == "" || other.NakedURL() != naked {
				continue
			}
			out[i] = c.WithTitle(other.Title)
			break
		}
	}
	return out
}

// dedupByNakedURL implements stage G: first occurrence wins, capped.
func dedupByNakedURL(pool []candidate.Candidate, cap int) []candidate.Candidate {
	seen := make(map[string]bool, len(pool))
	out := make([]candidate.Candidate, 0, cap)
	for _, c := range pool {
		naked := c.NakedURL()
		if naked == "" || seen[naked] {
			continue
		}
		seen[naked] = true
		out = append(out, c)
		if len(out) >= cap {
			break
		}
	}
	return out
}

// extractTopHits implements stage H: a prefix of allowed candidates,
// truncated (not filtered) at the first disallowed one.
func extractTopHits(deduped []candidate.Candidate, max int) []candidate.Candidate {
	top := make([]candidate.Candidate, 0, max)
	for _, c := range deduped {
		if len(top) >= max || !c.AllowedInTopHits() {
			break
		}
		top = append(top, c)
	}
	return top
}

// localBucket implements stage I.
func localBucket(rest []candidate.Candidate) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(rest))
	for _, c := range rest {
		switch c.Kind {
		case candidate.KindBookmark, candidate.KindHistoryEntry, candidate.KindInternalPage, candidate.KindOpenTab:
			out = append(out, c)
		}
	}
	return out
}

// filterAgainstTopHits implements stage J.
func filterAgainstTopHits(remote, topHits []candidate.Candidate) []candidate.Candidate {
	topNaked := make(map[string]bool, len(topHits))
	for _, t := range topHits {
		if n := t.NakedURL(); n != "" {
			topNaked[n] = true
		}
	}

	out := make([]candidate.Candidate, 0, len(remote))
	for _, r := range remote {
		if n := r.NakedURL(); n != "" && topNaked[n] {
			continue
		}
		out = append(out, r)
	}
	return out
}
