package resume

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagSet is a set of lowercase, whitespace-trimmed tag strings.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet from raw tag strings, lowercasing and trimming
// each and dropping empties.
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Intersects reports whether the two sets share at least one tag.
func (s TagSet) Intersects(other TagSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for tag := range small {
		if large.Has(tag) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every tag of other is in the set.
func (s TagSet) ContainsAll(other TagSet) bool {
	for tag := range other {
		if !s.Has(tag) {
			return false
		}
	}
	return true
}

// Sorted returns the tags in lexical order, for stable display.
func (s TagSet) Sorted() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// UnmarshalYAML accepts the three shapes `tags` takes in resume files:
// absent/null, a single scalar, or a sequence of scalars. Non-string
// scalars (years, version numbers) are kept as their literal text.
func (s *TagSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = TagSet{}
			return nil
		}
		*s = NewTagSet(node.Value)
		return nil
	case yaml.SequenceNode:
		raw := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: tag must be a scalar", item.Line)
			}
			if item.Tag == "!!null" {
				continue
			}
			raw = append(raw, item.Value)
		}
		*s = NewTagSet(raw...)
		return nil
	default:
		return fmt.Errorf("line %d: tags must be a string or a sequence of strings", node.Line)
	}
}
