package catalog

import (
	"encoding/json"
	"sort"
	"strings"
)

// CategorySet is the set of lower-cased category tags on a feature node,
// used to tell apart multiple same-typed slots (a "lore" skill slot vs an
// "exploration" one). Older catalog data stores categories as an array of
// strings, newer data as a boolean map; UnmarshalJSON accepts both.
type CategorySet map[string]bool

// NewCategorySet builds a set from a list of tags, folding case.
func NewCategorySet(tags ...string) CategorySet {
	set := make(CategorySet, len(tags))
	for _, tag := range tags {
		set[strings.ToLower(tag)] = true
	}
	return set
}

// UnmarshalJSON accepts either ["lore","exploration"] or
// {"lore": true, "exploration": true}.
func (c *CategorySet) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*c = NewCategorySet(asList...)
		return nil
	}

	var asMap map[string]bool
	if err := json.Unmarshal(data, &asMap); err != nil {
		return err
	}

	set := make(CategorySet, len(asMap))
	for tag, on := range asMap {
		if on {
			set[strings.ToLower(tag)] = true
		}
	}
	*c = set
	return nil
}

// MarshalJSON writes the boolean-map shape.
func (c CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]bool(c))
}

// Has reports whether the set contains the tag, case-insensitively.
func (c CategorySet) Has(tag string) bool {
	return c[strings.ToLower(tag)]
}

// ContainsAny reports whether the set contains at least one of the
// requested tags. An empty request matches unconditionally.
func (c CategorySet) ContainsAny(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if c.Has(tag) {
			return true
		}
	}
	return false
}

// Key returns the set's normalized key: sorted, lower-cased, comma-joined.
func (c CategorySet) Key() string {
	tags := make([]string, 0, len(c))
	for tag := range c {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return strings.Join(tags, ",")
}

// CategoryKey normalizes a requested category list the same way Key
// normalizes a set, so the two can index the same map.
func CategoryKey(tags []string) string {
	lowered := make([]string, 0, len(tags))
	for _, tag := range tags {
		lowered = append(lowered, strings.ToLower(tag))
	}
	sort.Strings(lowered)
	return strings.Join(lowered, ",")
}
