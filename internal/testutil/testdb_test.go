package testutil

import "testing"

func TestWithSearchPath(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://localhost/mines", "postgres://localhost/mines?search_path=s1"},
		{"postgres://localhost/mines?sslmode=disable", "postgres://localhost/mines?sslmode=disable&search_path=s1"},
	}
	for _, tt := range tests {
		if got := withSearchPath(tt.dsn, "s1"); got != tt.want {
			t.Fatalf("withSearchPath(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}
