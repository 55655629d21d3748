// Package source models a builder export: the nested document of choices a
// player already made in the foreign tool. Nodes are constructed once from
// the parsed document and never mutated afterward.
package source

import "encoding/json"

// Selection is one selected value on a feature node. Language, skill, and
// perk choices carry plain strings; richer choices (abilities, domains)
// carry objects with a name, a description, and sometimes a reference id.
type Selection struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ID          string `json:"id,omitempty"`
}

// UnmarshalJSON accepts either a bare string or a selection object, the two
// shapes the builder emits for selected values.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Name = plain
		return nil
	}

	type selectionAlias Selection
	var obj selectionAlias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Selection(obj)
	return nil
}

// FeatureNode is one node in the export's selection tree.
type FeatureNode struct {
	// ID is the builder's own key for the node. Domain sub-features key
	// themselves by a slug of the owning domain's name.
	ID string

	// Kind is the normalized type tag.
	Kind Kind

	// Name is the display name; may be empty.
	Name string

	// Selected holds the chosen values in the order the builder recorded them.
	Selected []Selection

	// SelectedIDs holds opaque reference ids, used only by class-ability
	// nodes. Callers resolve them against the document's abilities list
	// before the node reaches the resolution engine.
	SelectedIDs []string

	// ListOptions carries the builder's category tags for choices that are
	// disambiguated by category (e.g. "lore" vs "exploration" skill slots).
	ListOptions []string

	// Children holds nested nodes, present only on aggregate nodes.
	Children []*FeatureNode
}

// rawFeatureNode mirrors the wire shape of a feature node.
type rawFeatureNode struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Name           string         `json:"name"`
	SelectedValues []Selection    `json:"selectedValues"`
	SelectedIDs    []string       `json:"selectedIDs"`
	ListOptions    []string       `json:"listOptions"`
	Features       []*FeatureNode `json:"features"`
}

// UnmarshalJSON decodes a node and normalizes its type tag.
func (n *FeatureNode) UnmarshalJSON(data []byte) error {
	var raw rawFeatureNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ID = raw.ID
	n.Kind = ParseKind(raw.Type)
	n.Name = raw.Name
	n.Selected = raw.SelectedValues
	n.SelectedIDs = raw.SelectedIDs
	n.ListOptions = raw.ListOptions
	n.Children = raw.Features
	return nil
}

// SelectedNames returns the display names of all selected values in order.
func (n *FeatureNode) SelectedNames() []string {
	out := make([]string, 0, len(n.Selected))
	for _, sel := range n.Selected {
		out = append(out, sel.Name)
	}
	return out
}
