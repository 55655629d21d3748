package engine

import (
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/domain/source"
)

// Result accumulates one resolution pass's output: the mapping from catalog
// feature guid to the selected option id(s), the matched feature nodes
// themselves, and the selections that had to be discarded.
type Result struct {
	// Choices maps a feature guid to either a single selected id (string)
	// or an ordered list of them ([]string). A slot starts single-valued
	// and is promoted to a list on its second write; later writes append.
	// Downstream consumers depend on that exact shape, so it is preserved
	// even though a list-always representation would be simpler.
	Choices map[string]any

	// Features maps the same guids to the catalog node that matched, so a
	// caller can re-enter resolution scoped to a just-matched node.
	Features map[string]*catalog.FeatureNode

	// Unresolved lists every selection that was discarded, with the reason.
	Unresolved []Unresolved
}

// Unresolved describes one discarded selection.
type Unresolved struct {
	Kind   source.Kind
	Name   string
	Reason string
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{
		Choices:  make(map[string]any),
		Features: make(map[string]*catalog.FeatureNode),
	}
}

// Record writes a selected id under a feature guid, applying the
// scalar-to-list promotion rule.
func (r *Result) Record(guid, id string) {
	existing, ok := r.Choices[guid]
	if !ok {
		r.Choices[guid] = id
		return
	}

	switch v := existing.(type) {
	case string:
		r.Choices[guid] = []string{v, id}
	case []string:
		r.Choices[guid] = append(v, id)
	default:
		r.Choices[guid] = id
	}
}

// RecordFeature remembers the catalog node matched for a guid.
func (r *Result) RecordFeature(guid string, node *catalog.FeatureNode) {
	r.Features[guid] = node
}

// Discard notes a selection that could not be resolved.
func (r *Result) Discard(kind source.Kind, name, reason string) {
	r.Unresolved = append(r.Unresolved, Unresolved{Kind: kind, Name: name, Reason: reason})
}

// Merge folds another result into this one. Choice values merge through
// Record so the promotion rule holds across independent passes; matched
// features are last-write-wins per guid.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}

	for guid, value := range other.Choices {
		switch v := value.(type) {
		case string:
			r.Record(guid, v)
		case []string:
			for _, id := range v {
				r.Record(guid, id)
			}
		}
	}

	for guid, node := range other.Features {
		r.Features[guid] = node
	}

	r.Unresolved = append(r.Unresolved, other.Unresolved...)
}

// Values returns a guid's stored ids as a list regardless of promotion
// state. It returns nil when the guid is absent.
func (r *Result) Values(guid string) []string {
	switch v := r.Choices[guid].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	default:
		return nil
	}
}
