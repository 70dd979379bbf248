package textloc

import "fmt"

// Extract returns the substring [start, end) of text after resolving both
// locators against it. Both locators resolve against the same snapshot;
// callers must not mix offsets from different reads. A start offset past
// the end offset is a caller error, never silently swapped.
func Extract(text string, start, end Locator) (string, error) {
	s, e, err := resolveRegion(text, start, end)
	if err != nil {
		return "", err
	}
	return text[s:e], nil
}

func resolveRegion(text string, start, end Locator) (int, int, error) {
	s, err := Resolve(text, start, RoleStart)
	if err != nil {
		return 0, 0, err
	}
	e, err := Resolve(text, end, RoleEnd)
	if err != nil {
		return 0, 0, err
	}
	if s > e {
		return 0, 0, fmt.Errorf("%w: %d > %d (start %s, end %s)", ErrInvertedRegion, s, e, start, end)
	}
	return s, e, nil
}
