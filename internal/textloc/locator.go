// Package textloc resolves locators against a buffer snapshot and plans edits.
//
// All offsets are zero-based byte offsets into the snapshot; regions are
// half-open spans [start, end). A snapshot of length n has n+1 valid
// insertion points, 0 through n inclusive.
package textloc

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the two locator forms.
type Kind int

const (
	// KindPosition addresses an absolute byte offset.
	KindPosition Kind = iota
	// KindPattern addresses the first occurrence of a literal substring.
	KindPattern
)

// Locator addresses a point in a buffer snapshot: either an absolute
// Position or a literal Pattern searched for in document order. Patterns
// are exact substrings, not regular expressions.
type Locator struct {
	Kind    Kind
	Pos     int    // valid when Kind == KindPosition
	Pattern string // valid when Kind == KindPattern
}

// Position returns a locator addressing the byte offset p.
func Position(p int) Locator {
	return Locator{Kind: KindPosition, Pos: p}
}

// Pattern returns a locator addressing the first occurrence of s.
func Pattern(s string) Locator {
	return Locator{Kind: KindPattern, Pattern: s}
}

// ParseLocator classifies a boundary string as Position or Pattern. The
// whole string must parse as an integer to count as a Position; anything
// else is a Pattern. The tag is decided here, once, and never re-inferred
// downstream. A pattern that itself looks like a number ("2024") cannot be
// expressed through this boundary; callers must include surrounding context.
func ParseLocator(s string) Locator {
	if n, err := strconv.Atoi(s); err == nil {
		return Position(n)
	}
	return Pattern(s)
}

func (l Locator) String() string {
	if l.Kind == KindPosition {
		return strconv.Itoa(l.Pos)
	}
	return strconv.Quote(l.Pattern)
}

// Role states which boundary of a region a locator resolves for. It only
// matters for Pattern locators: the start role resolves to the index where
// the match begins, the end role to the index just past the match, so that
// an end pattern's text falls inside the region it bounds.
type Role int

const (
	RoleStart Role = iota
	RoleEnd
)

// Resolve turns a locator into an absolute byte offset within text.
// Positions must lie in [0, len(text)]. Patterns resolve to their first
// occurrence in document order; callers wanting a later occurrence must
// disambiguate with surrounding context. Resolve never mutates anything.
func Resolve(text string, loc Locator, role Role) (int, error) {
	switch loc.Kind {
	case KindPosition:
		if loc.Pos < 0 || loc.Pos > len(text) {
			return 0, fmt.Errorf("%w: %d (buffer length %d)", ErrOutOfRange, loc.Pos, len(text))
		}
		return loc.Pos, nil
	case KindPattern:
		idx := strings.Index(text, loc.Pattern)
		if idx < 0 {
			return 0, fmt.Errorf("%w: %q", ErrPatternNotFound, loc.Pattern)
		}
		if role == RoleEnd {
			return idx + len(loc.Pattern), nil
		}
		return idx, nil
	default:
		return 0, fmt.Errorf("unknown locator kind %d", loc.Kind)
	}
}
