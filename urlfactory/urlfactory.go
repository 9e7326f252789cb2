// Package urlfactory decides whether a piece of user-typed text names
// a navigable URL, used both by the omnibox's navigate-vs-search
// decision and by the remote autocomplete client's bare-navigational-
// URL skip rule. Keeping the predicate in one place means the two call
// sites can never disagree about what "looks like a URL" means.
package urlfactory

import (
	"net/url"
	"strings"
)

// commonTLDs is the same recognize-a-domain heuristic the omnibox used
// before this package existed; kept verbatim so navigation behavior
// doesn't shift for existing users.
var commonTLDs = []string{
	".com", ".org", ".net", ".io", ".dev", ".co", ".me", ".app",
	".edu", ".gov", ".uk", ".de", ".fr", ".jp", ".au", ".ca",
	".info", ".biz", ".tv", ".cc", ".xyz", ".tech", ".ai",
}

// LooksLikeDomain reports whether s has the shape of a bare domain
// (e.g. "example.com" or "localhost:8080"), with no spaces and either
// a recognized TLD or a "localhost" or "127." prefix.
func LooksLikeDomain(s string) bool {
	if strings.Contains(s, " ") {
		return false
	}
	lower := strings.ToLower(s)
	for _, tld := range commonTLDs {
		if strings.Contains(lower, tld) {
			return true
		}
	}
	if strings.HasPrefix(lower, "localhost") || strings.HasPrefix(lower, "127.") {
		return true
	}
	return false
}

// ParseNavigational attempts to interpret s as a navigable http/https
// URL: either because it already carries an http(s) scheme, or because
// it looks like a bare domain and an "https://" scheme is implied. It
// returns the parsed URL and true only when the result is a valid
// http/https URL with a non-empty host.
func ParseNavigational(s string) (*url.URL, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	candidate := s
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		// Text that already carries some other scheme is not a bare
		// domain, so no https:// scheme is implied for it.
		if i := strings.Index(lower, "://"); i >= 0 && !strings.ContainsAny(lower[:i], "/?#") {
			return nil, false
		}
		if !LooksLikeDomain(s) {
			return nil, false
		}
		candidate = "https://" + s
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Host == "" {
		return nil, false
	}
	return u, true
}

// IsRoot reports whether u names a bare host: no path beyond "/" and
// no query string.
func IsRoot(u *url.URL) bool {
	if u == nil {
		return false
	}
	path := u.Path
	return (path == "" || path == "/") && u.RawQuery == ""
}
