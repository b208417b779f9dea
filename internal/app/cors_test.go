package app

import "testing"

func TestMatchOriginPattern(t *testing.T) {
	cases := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"example.com", "example.com", true},
		{"example.com", "evil.com", false},
		{"*.example.com", "app.example.com", true},
		{"*.example.com", "example.org", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "remotehost:3000", false},
	}
	for _, tc := range cases {
		if got := matchOriginPattern(tc.pattern, tc.host); got != tc.want {
			t.Fatalf("matchOriginPattern(%q, %q) = %v, want %v", tc.pattern, tc.host, got, tc.want)
		}
	}
}

func TestExtractOriginHost(t *testing.T) {
	if got := extractOriginHost("https://app.example.com:8443"); got != "app.example.com:8443" {
		t.Fatalf("extractOriginHost = %q", got)
	}
	if got := extractOriginHost("not-a-url"); got != "not-a-url" {
		t.Fatalf("extractOriginHost = %q", got)
	}
}
