package textloc_test

import (
	"errors"
	"testing"

	"github.com/dannyob/mcp-servers/internal/textloc"
)

func TestExtractByPositions(t *testing.T) {
	text := "hello world"
	got, err := textloc.Extract(text, textloc.Position(0), textloc.Position(5))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Extract = %q, want %q", got, "hello")
	}
}

// TestExtractHeadingToHeading is the reference boundary scenario: the start
// pattern's text is included (start role resolves to match start), and the
// end pattern's text is included too (end role resolves to match end).
func TestExtractHeadingToHeading(t *testing.T) {
	text := "# Tasks\n[ ] A\n# Done\n"
	got, err := textloc.Extract(text, textloc.Pattern("# Tasks"), textloc.Pattern("# Done"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "# Tasks\n[ ] A\n# Done" {
		t.Errorf("Extract = %q, want %q", got, "# Tasks\n[ ] A\n# Done")
	}
}

// TestExtractUpToHeading excludes the end marker by using it as a start-role
// boundary: resolve it separately and pass the offset.
func TestExtractUpToHeading(t *testing.T) {
	text := "# Tasks\n[ ] A\n# Done\n"
	end, err := textloc.Resolve(text, textloc.Pattern("# Done"), textloc.RoleStart)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	got, err := textloc.Extract(text, textloc.Pattern("# Tasks"), textloc.Position(end))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "# Tasks\n[ ] A\n" {
		t.Errorf("Extract = %q, want %q", got, "# Tasks\n[ ] A\n")
	}
}

func TestExtractMixedLocators(t *testing.T) {
	text := "alpha beta gamma"
	got, err := textloc.Extract(text, textloc.Position(6), textloc.Pattern("gamma"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "beta gamma" {
		t.Errorf("Extract = %q, want %q", got, "beta gamma")
	}
}

func TestExtractInvertedRegion(t *testing.T) {
	text := "alpha beta"
	_, err := textloc.Extract(text, textloc.Position(7), textloc.Position(3))
	if !errors.Is(err, textloc.ErrInvertedRegion) {
		t.Fatalf("expected ErrInvertedRegion, got %v", err)
	}
	// Pattern boundaries can invert too when the end pattern precedes the start.
	_, err = textloc.Extract(text, textloc.Pattern("beta"), textloc.Pattern("alpha"))
	if !errors.Is(err, textloc.ErrInvertedRegion) {
		t.Fatalf("expected ErrInvertedRegion for inverted patterns, got %v", err)
	}
}

func TestExtractEmptyRegion(t *testing.T) {
	text := "abc"
	got, err := textloc.Extract(text, textloc.Position(1), textloc.Position(1))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got != "" {
		t.Errorf("Extract = %q, want empty", got)
	}
}
