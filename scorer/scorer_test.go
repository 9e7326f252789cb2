package scorer

import "testing"

func TestScore_Discard(t *testing.T) {
	if Score(Input{Title: "Cats", URL: "https://cats.example.com", Query: ""}) != 0 {
		t.Error("empty query must discard")
	}
	if Score(Input{Title: "Dogs", URL: "https://dogs.example.com", Query: "cats"}) != 0 {
		t.Error("non-matching candidate must discard")
	}
}

func TestScore_RootBoost(t *testing.T) {
	tokens := Tokenize("duckduckgo")
	score := Score(Input{
		Title:  "DuckDuckGo",
		URL:    "https://duckduckgo.com/",
		Query:  "duckduckgo",
		Tokens: tokens,
	})
	// base 300 (naked URL prefix match) + 2000 (root) = 2300, x1000.
	if score < 2300*1000 {
		t.Errorf("root URL-prefix match should score >= 2300*1000, got %d", score)
	}
}

func TestScore_Determinism(t *testing.T) {
	in := Input{Title: "Example Site", URL: "https://example.com/about", VisitCount: 7, Query: "example", Tokens: Tokenize("example")}
	a := Score(in)
	b := Score(in)
	if a != b {
		t.Errorf("score must be deterministic: %d != %d", a, b)
	}
}

func TestScore_Categories(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		wantZero bool
	}{
		{
			name: "naked url prefix",
			in:   Input{URL: "https://example.com/path", Query: "example.com"},
		},
		{
			name: "title prefix",
			in:   Input{Title: "Example Site", Query: "example"},
		},
		{
			name: "host contains",
			in:   Input{URL: "https://my-example-site.com/", Query: "exa"},
		},
		{
			name: "title word boundary",
			in:   Input{Title: "My Example Site", Query: "exa"},
		},
		{
			name:     "single char no match",
			in:       Input{Title: "Zebra", URL: "https://zebra.com", Query: "e"},
			wantZero: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Tokens = Tokenize(tt.in.Query)
			got := Score(tt.in)
			if tt.wantZero && got != 0 {
				t.Errorf("expected discard, got %d", got)
			}
			if !tt.wantZero && got == 0 {
				t.Errorf("expected a positive score, got 0")
			}
		})
	}
}

func TestScore_MultiToken(t *testing.T) {
	query := "my example"
	in := Input{Title: "My Example Site", URL: "https://my-example-site.com", Query: query, Tokens: Tokenize(query)}
	if Score(in) == 0 {
		t.Fatal("all tokens match, expected a positive score")
	}

	missing := Input{Title: "My Example Site", URL: "https://my-example-site.com", Query: "my other", Tokens: Tokenize("my other")}
	if Score(missing) != 0 {
		t.Error("a token that matches nothing must discard the whole candidate")
	}
}

func TestScore_VisitCountTieBreak(t *testing.T) {
	low := Input{Title: "Example", Query: "example", VisitCount: 1, Tokens: Tokenize("example")}
	high := Input{Title: "Example", Query: "example", VisitCount: 50, Tokens: Tokenize("example")}
	if Score(high) <= Score(low) {
		t.Error("higher visit count must not score lower given identical match")
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  Foo   BAR\tbaz ")
	want := []string{"foo", "bar", "baz"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
