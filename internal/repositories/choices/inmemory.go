package choices

import (
	"context"
	"sync"
	"time"

	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the repository
type InMemoryRepository struct {
	mu            sync.RWMutex
	imports       map[string]*ImportedCharacter
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		imports:       make(map[string]*ImportedCharacter),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// Create stores a new imported character
func (r *InMemoryRepository) Create(ctx context.Context, imported *ImportedCharacter) error {
	if imported == nil {
		return sberr.InvalidArgument("imported character cannot be nil")
	}
	if imported.OwnerID == "" {
		return sberr.InvalidArgument("owner ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if imported.ID == "" {
		imported.ID = r.uuidGenerator.New()
	}
	if imported.ImportedAt.IsZero() {
		imported.ImportedAt = time.Now().UTC()
	}

	if _, exists := r.imports[imported.ID]; exists {
		return sberr.AlreadyExistsf("imported character '%s' already exists", imported.ID).
			WithMeta("id", imported.ID)
	}

	r.imports[imported.ID] = imported
	return nil
}

// Get retrieves an imported character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*ImportedCharacter, error) {
	if id == "" {
		return nil, sberr.InvalidArgument("id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	imported, exists := r.imports[id]
	if !exists {
		return nil, sberr.NotFoundf("imported character '%s' not found", id).
			WithMeta("id", id)
	}

	return imported, nil
}

// GetByOwner retrieves all imported characters for an owner
func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*ImportedCharacter, error) {
	if ownerID == "" {
		return nil, sberr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*ImportedCharacter
	for _, imported := range r.imports {
		if imported.OwnerID == ownerID {
			result = append(result, imported)
		}
	}

	return result, nil
}

// Delete removes an imported character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sberr.InvalidArgument("id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.imports[id]; !exists {
		return sberr.NotFoundf("imported character '%s' not found", id)
	}

	delete(r.imports, id)
	return nil
}
