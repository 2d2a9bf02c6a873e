// Package filter decides which tagged bullets survive a render. A Selection
// carries the user's include/exclude tag sets and match mode; Match is the
// single predicate applied to every bullet.
package filter

import (
	"fmt"
	"strings"

	"github.com/cvforge/cvforge/internal/resume"
)

// Mode controls how the include set is matched when it is non-empty.
type Mode string

const (
	// ModeAny accepts a bullet that shares at least one tag with the
	// include set (OR).
	ModeAny Mode = "any"
	// ModeAll accepts a bullet only if it carries every include tag (AND).
	ModeAll Mode = "all"
)

// ParseMode normalizes and validates a mode string. Empty input means the
// default (any). Unknown values are an invalid-argument error.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAny:
		return ModeAny, nil
	case ModeAll:
		return ModeAll, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected %q or %q)", s, ModeAny, ModeAll)
	}
}

// ParseTags splits a comma-separated tag list into a normalized set.
// Whitespace around entries is trimmed and empty entries are dropped.
func ParseTags(list string) resume.TagSet {
	return resume.NewTagSet(strings.Split(list, ",")...)
}

// Selection is a user's bullet visibility filter.
type Selection struct {
	Include resume.TagSet
	Exclude resume.TagSet
	Mode    Mode
}

// NewSelection builds a Selection from raw comma-separated include/exclude
// lists and a mode string.
func NewSelection(include, exclude, mode string) (Selection, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Include: ParseTags(include),
		Exclude: ParseTags(exclude),
		Mode:    m,
	}, nil
}

// Match reports whether a bullet with the given tags survives the selection.
// Exclusion always wins; an empty include set accepts everything that was
// not excluded.
func (s Selection) Match(tags resume.TagSet) bool {
	if tags.Intersects(s.Exclude) {
		return false
	}
	if len(s.Include) == 0 {
		return true
	}
	if s.Mode == ModeAll {
		return tags.ContainsAll(s.Include)
	}
	return tags.Intersects(s.Include)
}
