// Package codex is the client for the native system's catalog storage: the
// named tables of records (skills, languages, deities, ...) and the expander
// that turns a class-like entity into its leveled feature tree.
package codex

//go:generate mockgen -destination=mock/mock_client.go -package=mockcodex -source=interface.go

import (
	"context"

	"github.com/ironreach/steelbridge/internal/domain/catalog"
)

// Client provides read access to the catalog.
type Client interface {
	// Table returns every row of the named table in the catalog's own order.
	Table(ctx context.Context, table string) ([]*catalog.Record, error)

	// Lookup is the fast-path exact lookup against the catalog's curated
	// name index. It returns nil (no error) on a miss; callers fall back
	// to a normalized scan via Resolver.
	Lookup(ctx context.Context, table, name string) (*catalog.Record, error)

	// ExpandLeveledFeatures produces the leveled feature tree of the entity
	// identified by table+id, up to and including levelCap.
	ExpandLeveledFeatures(ctx context.Context, table, id string, levelCap int) (catalog.LeveledFeatures, error)
}
