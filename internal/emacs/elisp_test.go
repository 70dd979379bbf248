package emacs

import "testing"

func TestQuoteString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`plain`, `"plain"`},
		{`has "quotes"`, `"has \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"tab\there", `"tab\there"`},
		{``, `""`},
	}
	for _, c := range cases {
		if got := quoteString(c.in); got != c.want {
			t.Errorf("quoteString(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestDecodeString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`"plain"`, `plain`},
		{`"has \"quotes\""`, `has "quotes"`},
		{`"back\\slash"`, `back\slash`},
		{`"two\nlines"`, "two\nlines"},
		{"\"trailing\"\n", `trailing`},
		{`nil`, ``},
		{`""`, ``},
	}
	for _, c := range cases {
		got, err := decodeString(c.in)
		if err != nil {
			t.Errorf("decodeString(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("decodeString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDecodeStringRejectsNonStrings(t *testing.T) {
	for _, in := range []string{`42`, `(1 2 3)`, `"unterminated`} {
		if _, err := decodeString(in); err == nil {
			t.Errorf("decodeString(%q) should have failed", in)
		}
	}
}

// TestQuoteDecodeRoundTrip pins the pair down against each other.
func TestQuoteDecodeRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", `a "b" \c`, "multi\nline\twith\ttabs"} {
		got, err := decodeString(quoteString(s))
		if err != nil {
			t.Fatalf("round trip of %q failed: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}
