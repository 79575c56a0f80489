package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated value", 6, "trunc…"},
		{"  indented", 6, "  ind…"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
		{"₹1,180.00", 4, "₹1,…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Fatalf("padLeft = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("chart-of-accounts"); got != "Chart Of Accounts" {
		t.Fatalf("titleCase = %q", got)
	}
	if got := titleCase("PENDING_review"); got != "Pending Review" {
		t.Fatalf("titleCase = %q", got)
	}
	if got := titleCase("  "); got != "" {
		t.Fatalf("titleCase blank = %q", got)
	}
}
