package textloc

import "errors"

// Resolution errors
var (
	// ErrOutOfRange indicates a Position locator outside [0, len(text)].
	ErrOutOfRange = errors.New("position out of range")

	// ErrPatternNotFound indicates a Pattern locator with no match.
	ErrPatternNotFound = errors.New("pattern not found")
)

// Region errors
var (
	// ErrInvertedRegion indicates a resolved start offset past the end offset.
	ErrInvertedRegion = errors.New("region start exceeds region end")

	// ErrOldTextNotFound indicates the replacement target is absent from the region.
	ErrOldTextNotFound = errors.New("old text not found in region")

	// ErrAmbiguousReplacement indicates the replacement target occurs more than
	// once in the region. Replacement never guesses which occurrence was meant.
	ErrAmbiguousReplacement = errors.New("old text occurs more than once in region")
)
