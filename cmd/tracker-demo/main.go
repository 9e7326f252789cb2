// Demo tool: records a few blocked-tracker events and prints the
// 7-day aggregate once the debounced commit has settled.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/omnisuggest/core/tracker"
)

func main() {
	path := filepathOrDefault()

	store, err := tracker.LoadFrom(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading store:", err)
		os.Exit(1)
	}

	agg := tracker.NewAggregator(store, 200*time.Millisecond)

	agg.Record("Example Tracker Co")
	agg.Record("Example Tracker Co")
	agg.Record("Another Tracker Inc")

	time.Sleep(400 * time.Millisecond)

	stats := agg.FetchPrivacyStats()
	for company, count := range stats {
		fmt.Printf("%s: %d\n", company, count)
	}

	if err := agg.HandleTermination(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "terminating:", err)
	}
}

func filepathOrDefault() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return os.DevNull
}
