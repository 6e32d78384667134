package routepath

import "testing"

func TestNormalizeBase(t *testing.T) {
	tests := map[string]string{
		"":        "/",
		"/":       "/",
		"/app/":   "/app",
		"app":     "/app",
		"/a//b/":  "/a/b",
		"/../bad": "/",
	}
	for in, want := range tests {
		if got := NormalizeBase(in); got != want {
			t.Errorf("NormalizeBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStripBase(t *testing.T) {
	tests := []struct {
		base, path string
		want       string
		ok         bool
	}{
		{"/", "/books", "/books", true},
		{"/", "", "/", true},
		{"", "/ping", "/ping", true},
		{"/console", "/console", "/", true},
		{"/console", "/console/", "/", true},
		{"/console/", "/console/books", "/books", true},
		{"/console", "/consoles", "", false},
		{"/console", "/books", "", false},
	}
	for _, tt := range tests {
		got, ok := StripBase(tt.base, tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StripBase(%q, %q) = (%q, %v), want (%q, %v)", tt.base, tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestJoinBase(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/", "/books", "/books"},
		{"/", "", "/"},
		{"/console", "/", "/console/"},
		{"/console/", "/photos", "/console/photos"},
	}
	for _, tt := range tests {
		if got := JoinBase(tt.base, tt.path); got != tt.want {
			t.Errorf("JoinBase(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestJoinStripRoundTrip(t *testing.T) {
	for _, base := range []string{"/", "/console"} {
		for _, p := range []string{"/", "/books", "/ping"} {
			got, ok := StripBase(base, JoinBase(base, p))
			if !ok || got != p {
				t.Errorf("base %q path %q: round trip gave (%q, %v)", base, p, got, ok)
			}
		}
	}
}
