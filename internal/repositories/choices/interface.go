// Package choices persists the outcome of an import: the accumulated
// feature-guid to selected-id table for one character, plus enough
// identity to find it again.
package choices

import (
	"context"
	"time"
)

// ImportedCharacter is the persisted result of one import run.
type ImportedCharacter struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	RealmID string `json:"realm_id"`
	Name    string `json:"name"`

	// Choices maps feature guid to the selected id (string) or ordered
	// ids ([]string). The scalar/list split mirrors what the resolution
	// engine produced and is preserved through storage.
	Choices map[string]any `json:"choices"`

	// Kits holds the resolved kit ids the source had equipped.
	Kits []string `json:"kits,omitempty"`

	ImportedAt time.Time `json:"imported_at"`
}

// Repository defines the interface for imported-character persistence.
type Repository interface {
	// Create stores a new imported character. An empty ID is assigned.
	Create(ctx context.Context, imported *ImportedCharacter) error

	// Get retrieves an imported character by ID.
	Get(ctx context.Context, id string) (*ImportedCharacter, error)

	// GetByOwner retrieves all imported characters for an owner.
	GetByOwner(ctx context.Context, ownerID string) ([]*ImportedCharacter, error)

	// Delete removes an imported character.
	Delete(ctx context.Context, id string) error
}
