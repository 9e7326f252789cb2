// Demo tool: runs one suggestion query against a local corpus holding
// only the built-in internal pages plus a live autocomplete fetch, and
// prints the grouped result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/omnisuggest/core/autocomplete"
	"github.com/omnisuggest/core/candidate"
	"github.com/omnisuggest/core/suggest"
)

type emptySource struct{}

func (emptySource) Bookmarks() []candidate.Candidate     { return nil }
func (emptySource) History() []candidate.Candidate       { return nil }
func (emptySource) InternalPages() []candidate.Candidate { return suggest.StaticInternalPages() }
func (emptySource) OpenTabs() []candidate.Candidate      { return nil }
func (emptySource) Platform() suggest.Platform           { return suggest.PlatformDesktop }
func (emptySource) SuggestionDataFromURL(url string, params map[string]string, completion func(string, error)) {
	completion("", nil)
}

func main() {
	query := "duckduckgo"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	loader := suggest.NewLoader(autocomplete.New())

	done := make(chan struct{})
	loader.GetSuggestions(context.Background(), query, emptySource{}, func(result *suggest.Result, err error) {
		defer close(done)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		if result == nil {
			return
		}
		fmt.Println("top hits:")
		for _, c := range result.TopHits {
			fmt.Printf("  %s %s\n", c.Kind, c.URL)
		}
		fmt.Println("local:")
		for _, c := range result.LocalSuggestions {
			fmt.Printf("  %s %s\n", c.Kind, c.URL)
		}
		fmt.Println("duckduckgo:")
		for _, c := range result.DuckDuckGoSuggestions {
			fmt.Printf("  %s %s%s\n", c.Kind, c.Phrase, c.URL)
		}
	})
	<-done
}
