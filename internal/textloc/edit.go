package textloc

import (
	"fmt"
	"strings"
)

// Edit is a single splice against a snapshot: delete DeleteLen bytes at
// Offset, then insert Insert there. Planning and applying are separate so
// that a mutation is validated in full before anything is written; an edit
// either applies whole or not at all.
type Edit struct {
	Offset    int
	DeleteLen int
	Insert    string
}

// Apply splices e into text. Offsets must come from the same snapshot.
func Apply(text string, e Edit) string {
	return text[:e.Offset] + e.Insert + text[e.Offset+e.DeleteLen:]
}

// PlanInsert plans inserting payload at the point addressed by loc. With
// after set and a Pattern locator, the insertion point moves to the end of
// the matched text; for a Position locator the flag is a no-op, since a
// bare offset has no extent to be before or after. No existing text is
// removed.
func PlanInsert(text string, loc Locator, payload string, after bool) (Edit, error) {
	role := RoleStart
	if after && loc.Kind == KindPattern {
		role = RoleEnd
	}
	off, err := Resolve(text, loc, role)
	if err != nil {
		return Edit{}, err
	}
	return Edit{Offset: off, Insert: payload}, nil
}

// PlanReplace plans replacing old with new inside the region bounded by
// start and end. old must occur exactly once, verbatim, within the region:
// the caller proves they know the exact content being overwritten. Unlike
// locator resolution, which takes the first of several matches, replacement
// ambiguity is fatal — the blast radius of a wrong replace is higher than
// that of a boundary landing early.
func PlanReplace(text string, start, end Locator, old, new string) (Edit, error) {
	s, e, err := resolveRegion(text, start, end)
	if err != nil {
		return Edit{}, err
	}
	if old == "" {
		return Edit{}, fmt.Errorf("%w: empty old text", ErrOldTextNotFound)
	}
	region := text[s:e]
	switch n := strings.Count(region, old); {
	case n == 0:
		return Edit{}, fmt.Errorf("%w: %q", ErrOldTextNotFound, old)
	case n > 1:
		return Edit{}, fmt.Errorf("%w: %q (%d occurrences)", ErrAmbiguousReplacement, old, n)
	}
	return Edit{
		Offset:    s + strings.Index(region, old),
		DeleteLen: len(old),
		Insert:    new,
	}, nil
}
