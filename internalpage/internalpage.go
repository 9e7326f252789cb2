// Package internalpage registers the browser-internal destinations
// (settings, history, bookmarks, ...) that the suggestion engine must
// surface as InternalPage candidates — always present locally, never
// allowed in top hits. Each page is described by a small embedded HTML
// snippet; its <title> is extracted with goquery.
package internalpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is one internal destination: a URL the browser itself serves,
// with a human-readable title.
type Page struct {
	URL   string
	Title string
}

// page describes one internal destination before its title is
// extracted from the embedded markup.
type page struct {
	url  string
	html string
}

// registry is the fixed, compile-time set of internal pages: help,
// RSS feeds, and the handful of other internal sections a
// settings-driven browser exposes.
var registry = []page{
	{url: "browse://help", html: `<html><head><title>Help</title></head></html>`},
	{url: "browse://bookmarks", html: `<html><head><title>Bookmarks</title></head></html>`},
	{url: "browse://history", html: `<html><head><title>History</title></head></html>`},
	{url: "browse://settings", html: `<html><head><title>Settings</title></head></html>`},
	{url: "browse://rss", html: `<html><head><title>RSS Feeds</title></head></html>`},
}

// All returns every internal page, with its title extracted from its
// embedded HTML document.
func All() ([]Page, error) {
	pages := make([]Page, 0, len(registry))
	for _, p := range registry {
		title, err := extractTitle(p.html)
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{URL: p.url, Title: title})
	}
	return pages, nil
}

func extractTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
