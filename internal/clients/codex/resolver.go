package codex

import (
	"context"

	"github.com/ironreach/steelbridge/internal/domain/catalog"
	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/names"
)

// Resolver resolves a display name to a catalog record with a two-tier
// strategy: the exact index first, then a full normalized scan of the
// table. The index handles the common case cheaply; the scan tolerates the
// vocabulary drift between the builder's names and the catalog's.
type Resolver struct {
	client Client
}

// NewResolver creates a new resolver over the given catalog client.
func NewResolver(client Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve returns the record in table whose name matches the given name,
// or an unresolved-name error. Hidden rows never match on the scan path.
func (r *Resolver) Resolve(ctx context.Context, table, name string) (*catalog.Record, error) {
	if name == "" {
		return nil, sberr.InvalidArgument("name is required")
	}

	if rec, err := r.client.Lookup(ctx, table, name); err != nil {
		return nil, sberr.Wrapf(err, "exact lookup failed for '%s' in table '%s'", name, table)
	} else if rec != nil {
		return rec, nil
	}

	rows, err := r.client.Table(ctx, table)
	if err != nil {
		return nil, sberr.Wrapf(err, "failed to load table '%s'", table)
	}

	for _, row := range rows {
		if row.Hidden {
			continue
		}
		if names.Match(row.Name, name) {
			return row, nil
		}
	}

	return nil, sberr.UnresolvedNamef("no record named '%s' in table '%s'", name, table).
		WithMeta("table", table).
		WithMeta("name", name)
}
