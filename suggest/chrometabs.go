package suggest

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/omnisuggest/core/candidate"
)

// ChromeTabSource lists live Chrome DevTools Protocol targets as open
// tabs — an alternative to SessionTabSource for embedders that keep a
// real Chrome instance around rather than this repository's in-process
// session buffers (grounded on fetcher.go's ExecAllocator setup, minus
// its anti-bot/stealth options, which have no bearing on listing
// targets).
type ChromeTabSource struct {
	RemoteAddr string // e.g. "ws://127.0.0.1:9222/devtools/browser/..."
	Timeout    time.Duration
}

// NewChromeTabSource connects to an already-running Chrome instance
// reachable at remoteAddr (its DevTools websocket debugger URL).
func NewChromeTabSource(remoteAddr string) *ChromeTabSource {
	return &ChromeTabSource{RemoteAddr: remoteAddr, Timeout: 5 * time.Second}
}

// OpenTabs lists every page-type CDP target as an OpenTab candidate.
func (s *ChromeTabSource) OpenTabs() []candidate.Candidate {
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.Background(), s.RemoteAddr)
	defer allocCancel()

	ctx, cancel := context.WithTimeout(allocCtx, s.Timeout)
	defer cancel()

	ctx, cancel2 := chromedp.NewContext(ctx)
	defer cancel2()

	targets, err := chromedp.Targets(ctx)
	if err != nil {
		return nil
	}

	out := make([]candidate.Candidate, 0, len(targets))
	for _, t := range targets {
		if !strings.EqualFold(string(t.Type), "page") || t.URL == "" {
			continue
		}
		out = append(out, candidate.NewOpenTab(t.Title, t.URL))
	}
	return out
}
