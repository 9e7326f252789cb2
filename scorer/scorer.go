// Package scorer implements the pure integer scoring function used to
// rank address-bar candidates against a query. It performs no I/O and
// depends on no external state, so results are deterministic and
// locale-independent.
package scorer

import (
	"strings"

	"github.com/omnisuggest/core/candidate"
)

// Input bundles everything the scorer needs for one candidate. Title
// is empty when the candidate has none.
type Input struct {
	Title      string
	URL        string
	VisitCount int
	Query      string   // already lowercased by the caller
	Tokens     []string // Tokenize(Query); precomputed so callers can reuse across candidates
}

// Tokenize splits a query into lowercased, non-empty tokens on Unicode
// whitespace. strings.Fields already splits on unicode.IsSpace, which
// is locale-independent.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// Score computes the candidate's rank score. A result of 0 means
// "discard" — the candidate does not match the query at all.
func Score(in Input) int {
	query := strings.ToLower(in.Query)
	if query == "" {
		return 0
	}

	title := strings.ToLower(in.Title)
	naked := candidate.NakeURL(in.URL)
	isRoot := in.URL != "" && candidate.IsRootNakedURL(naked)
	host := nakedHost(naked)

	base := 0
	switch {
	case naked != "" && strings.HasPrefix(naked, query):
		base = 300
		if isRoot {
			base += 2000
		}
	case title != "" && strings.HasPrefix(title, query):
		base = 200
		if isRoot {
			base += 2000
		}
	case len(query) > 2 && host != "" && strings.Contains(host, query):
		base = 150
	case len(query) > 2 && title != "" && containsWordBoundary(title, query):
		base = 100
	default:
		base = multiTokenScore(title, naked, in.Tokens)
	}

	if base <= 0 {
		return 0
	}
	return base*1000 + in.VisitCount
}

// multiTokenScore is the fallback path for multi-word queries: it only
// fires when the query has at least two tokens and none of the
// single-match categories above matched. Every token must prefix the
// title, appear after a space within the title, or prefix the naked
// URL; if any token fails all three, the candidate scores 0. The
// leading-token boost (+70 / +50) is computed here only — it must
// never leak into the single-match branches above.
func multiTokenScore(title, naked string, tokens []string) int {
	if len(tokens) < 2 {
		return 0
	}
	for _, tok := range tokens {
		if !tokenMatches(title, naked, tok) {
			return 0
		}
	}

	base := 10
	first := tokens[0]
	switch {
	case naked != "" && strings.HasPrefix(naked, first):
		base += 70
	case title != "" && strings.HasPrefix(title, first):
		base += 50
	}
	return base
}

func tokenMatches(title, naked, tok string) bool {
	if title != "" {
		if strings.HasPrefix(title, tok) {
			return true
		}
		if containsWordBoundary(title, tok) {
			return true
		}
	}
	if naked != "" && strings.HasPrefix(naked, tok) {
		return true
	}
	return false
}

// containsWordBoundary reports whether substr appears in s immediately
// after a space — a crude but deterministic word-boundary substring
// test.
func containsWordBoundary(s, substr string) bool {
	return strings.Contains(s, " "+substr)
}

// nakedHost extracts the host portion (sans "www.", already stripped
// by candidate.NakeURL) from a naked URL string, i.e. everything
// before the first '/' or '?'.
func nakedHost(naked string) string {
	if naked == "" {
		return ""
	}
	end := len(naked)
	if idx := strings.IndexAny(naked, "/?"); idx >= 0 {
		end = idx
	}
	return naked[:end]
}
