package urlfactory

import "testing"

func TestLooksLikeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"example.com", true},
		{"localhost:8080", true},
		{"127.0.0.1", true},
		{"not a domain", false},
		{"cats", false},
		{"example.unknown-tld", false},
	}
	for _, tt := range tests {
		if got := LooksLikeDomain(tt.in); got != tt.want {
			t.Errorf("LooksLikeDomain(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseNavigational(t *testing.T) {
	u, ok := ParseNavigational("https://example.com/path")
	if !ok || u.Host != "example.com" {
		t.Fatalf("expected a parsed URL, got %v, %v", u, ok)
	}

	u2, ok2 := ParseNavigational("example.com")
	if !ok2 || u2.Scheme != "https" {
		t.Fatalf("bare domain should imply https, got %v, %v", u2, ok2)
	}

	if _, ok3 := ParseNavigational("just some words"); ok3 {
		t.Error("plain text must not parse as navigational")
	}

	if _, ok4 := ParseNavigational("ftp://example.com"); ok4 {
		t.Error("non-http(s) scheme must not parse as navigational")
	}
}

func TestIsRoot(t *testing.T) {
	u, _ := ParseNavigational("https://example.com")
	if !IsRoot(u) {
		t.Error("bare host should be root")
	}
	u2, _ := ParseNavigational("https://example.com/about")
	if IsRoot(u2) {
		t.Error("URL with a path should not be root")
	}
	u3, _ := ParseNavigational("https://example.com/?q=1")
	if IsRoot(u3) {
		t.Error("URL with a query should not be root")
	}
}
