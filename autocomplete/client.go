// Package autocomplete issues the single remote GET per query that
// feeds navigational and phrase suggestions into the processor.
// Network error, non-200, or parse failure all collapse into "no
// remote suggestions" — local results must never be blocked on this
// call.
package autocomplete

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/omnisuggest/core/candidate"
	"github.com/omnisuggest/core/urlfactory"
)

const defaultEndpoint = "https://duckduckgo.com/ac/"

// Client issues the remote autocomplete request. Grounded on
// search/duckduckgo.go's request-construction idiom (explicit
// *http.Request, a User-Agent header, a plain *http.Client), rewired
// from an HTML-scrape endpoint to the JSON `/ac/` one.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the autocomplete endpoint (for tests).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client (for tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the client's request timeout. The embedder's
// default is 60s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates an autocomplete client with the product defaults.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   defaultEndpoint,
		userAgent:  "omnisuggest/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wireItem is the lenient decode target for one response element:
// unknown fields are ignored, and an element without "phrase" is
// dropped by the caller.
type wireItem struct {
	Phrase string `json:"phrase"`
	IsNav  bool   `json:"isNav"`
}

// ShouldSkip reports whether query, read through the URL factory,
// names a bare navigational root URL — in which case the remote call
// must not be made at all.
func ShouldSkip(query string) bool {
	u, ok := urlfactory.ParseNavigational(query)
	if !ok {
		return false
	}
	return urlfactory.IsRoot(u)
}

// Fetch issues the GET request and decodes the response into
// candidates. It returns (nil, err) only on transport/parse failure —
// callers must treat that as "no remote suggestions", not a fatal
// error.
func (c *Client) Fetch(ctx context.Context, query string) ([]candidate.Candidate, error) {
	if ShouldSkip(query) {
		return nil, nil
	}

	reqURL := c.endpoint + "?" + url.Values{
		"q":      {query},
		"is_nav": {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building autocomplete request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching autocomplete suggestions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading autocomplete response: %w", err)
	}

	var items []wireItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parsing autocomplete response: %w", err)
	}

	results := make([]candidate.Candidate, 0, len(items))
	for _, item := range items {
		if item.Phrase == "" {
			continue
		}
		if !item.IsNav {
			results = append(results, candidate.NewPhrase(item.Phrase))
			continue
		}
		u, ok := urlfactory.ParseNavigational(item.Phrase)
		if !ok {
			continue
		}
		results = append(results, candidate.NewWebsite(u.String()))
	}
	return results, nil
}
