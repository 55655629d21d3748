package source

import (
	"encoding/json"
	"io"
)

// Document is a parsed builder export. Sections may be nil: the builder
// omits whole sections the player never filled in, and the importer
// tolerates that per-section rather than rejecting the document.
type Document struct {
	Name     string        `json:"name"`
	Ancestry *Section      `json:"ancestry"`
	Culture  *Section      `json:"culture"`
	Career   *Section      `json:"career"`
	Class    *ClassSection `json:"class"`
}

// Section is a flat top-level section: ancestry, culture, or career.
type Section struct {
	Name     string         `json:"name"`
	Features []*FeatureNode `json:"features"`
}

// ClassSection carries the class choices plus everything nested under them:
// the leveled featuresets, the subclass name, and the abilities reference
// list that class-ability nodes point into by id.
type ClassSection struct {
	Name        string          `json:"name"`
	Level       int             `json:"level"`
	Subclass    string          `json:"subclass"`
	Featuresets LeveledFeatures `json:"featuresets"`
	Abilities   []AbilityRef    `json:"abilities"`
}

// AbilityRef is one entry in the export's abilities reference list.
type AbilityRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Parse decodes a builder export from r. Only the envelope has to be valid
// JSON; missing sections are left nil for the importer to skip.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// AbilityByID looks up an ability reference by its opaque id.
func (c *ClassSection) AbilityByID(id string) (AbilityRef, bool) {
	for _, ref := range c.Abilities {
		if ref.ID == id {
			return ref, true
		}
	}
	return AbilityRef{}, false
}
