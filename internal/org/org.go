// Package org extracts structured metadata from org-mode heading entries.
package org

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrHeadingNotFound indicates no heading in the document matches the
// requested title.
var ErrHeadingNotFound = errors.New("heading not found")

var (
	headingRe  = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	tagsRe     = regexp.MustCompile(`\s+:[[:alnum:]_@#%:]+:\s*$`)
	propertyRe = regexp.MustCompile(`^:([^:\s][^:]*):\s*(.*)$`)
	planningRe = regexp.MustCompile(`(SCHEDULED|DEADLINE|CLOSED):\s*([<\[][^>\]]*[>\]])`)
)

// Properties returns the metadata attached to the first heading whose title
// equals heading. The title is compared after stripping the leading stars
// and any trailing tag string; the compare is exact and case-sensitive.
//
// Metadata covers the planning line (SCHEDULED, DEADLINE, CLOSED) and the
// :PROPERTIES: drawer directly beneath the heading, before any child
// heading or other body content. Keys are upper-cased; a key repeated
// within one drawer keeps its last value. A heading without metadata yields
// an empty, non-nil map — absence of a drawer is a valid state, distinct
// from the heading not existing.
func Properties(text, heading string) (map[string]string, error) {
	lines := strings.Split(text, "\n")

	entry := -1
	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(tagsRe.ReplaceAllString(m[2], ""))
		if title == heading {
			entry = i
			break
		}
	}
	if entry == -1 {
		return nil, fmt.Errorf("%w: %q", ErrHeadingNotFound, heading)
	}

	props := make(map[string]string)
	i := entry + 1

	// Planning line, when present, sits immediately below the heading.
	if i < len(lines) && planningRe.MatchString(lines[i]) && !headingRe.MatchString(lines[i]) {
		for _, m := range planningRe.FindAllStringSubmatch(lines[i], -1) {
			props[m[1]] = m[2]
		}
		i++
	}

	if i < len(lines) && strings.EqualFold(strings.TrimSpace(lines[i]), ":PROPERTIES:") {
		for i++; i < len(lines); i++ {
			line := strings.TrimSpace(lines[i])
			if strings.EqualFold(line, ":END:") || headingRe.MatchString(lines[i]) {
				break
			}
			if m := propertyRe.FindStringSubmatch(line); m != nil {
				props[strings.ToUpper(strings.TrimSpace(m[1]))] = strings.TrimSpace(m[2])
			}
		}
	}

	return props, nil
}
