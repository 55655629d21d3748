// Package names provides the single name-equality notion used when
// reconciling builder-export names against catalog names. The two systems
// disagree on punctuation, pluralization, and a known list of renames, so
// raw string comparison is never used; everything goes through Match.
package names

import "strings"

// Canonical reduces a name to its comparison form: lower-case,
// synonym-translated, then sanitized. Translation may reintroduce the
// catalog's casing, so the result is folded a second time.
func Canonical(s string) string {
	return strings.ToLower(Sanitize(Translate(strings.ToLower(s))))
}

// Match reports whether two names are equal under the cross-schema
// equality notion. It is symmetric and never panics on empty input.
func Match(a, b string) bool {
	return Canonical(a) == Canonical(b)
}

// HasPrefix reports whether s starts with prefix under the same
// normalized comparison Match uses. Used by sticky filters, which
// scope matching to nodes whose name or description begins with a
// value such as "War Domain".
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(Canonical(s), Canonical(prefix))
}

// Slug derives a stable lower-case dashed key from a display name, e.g.
// "War Domain" -> "war-domain". Builder exports key domain sub-features
// by slugs of the domain name.
func Slug(s string) string {
	sanitized := Sanitize(strings.ToLower(s))
	fields := strings.Fields(sanitized)
	return strings.Join(fields, "-")
}
