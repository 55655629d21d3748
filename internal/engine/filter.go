package engine

import (
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/names"
)

// Filter scopes slot matching to catalog nodes whose fields start with the
// expected values, compared under name normalization. A typical filter is
// {FilterFieldName: "War Domain"}. Filters are sticky: once a node on a
// search path passes, all of its descendants inherit the pass regardless of
// their own fields.
type Filter map[string]string

// Filterable fields on a catalog feature node.
const (
	FilterFieldName        = "name"
	FilterFieldDescription = "description"
)

// Matches reports whether the node passes every field constraint. A nil or
// empty filter passes everything.
func (f Filter) Matches(node *catalog.FeatureNode) bool {
	if len(f) == 0 {
		return true
	}

	for field, prefix := range f {
		var value string
		switch field {
		case FilterFieldName:
			value = node.Name
		case FilterFieldDescription:
			value = node.Description
		default:
			return false
		}

		if !names.HasPrefix(value, prefix) {
			return false
		}
	}

	return true
}
