package codex

import (
	"context"
	"sync"

	"github.com/ironreach/steelbridge/internal/domain/catalog"
	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/names"
)

// InMemoryClient is an in-memory Client used by tests and fixtures.
type InMemoryClient struct {
	mu       sync.RWMutex
	tables   map[string][]*catalog.Record
	index    map[string]map[string]*catalog.Record
	features map[string]catalog.LeveledFeatures
}

// NewInMemoryClient creates an empty in-memory catalog.
func NewInMemoryClient() *InMemoryClient {
	return &InMemoryClient{
		tables:   make(map[string][]*catalog.Record),
		index:    make(map[string]map[string]*catalog.Record),
		features: make(map[string]catalog.LeveledFeatures),
	}
}

// AddRecord appends a record to a table, preserving insertion order.
func (c *InMemoryClient) AddRecord(table string, rec *catalog.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[table] = append(c.tables[table], rec)
}

// IndexRecord adds a record to the table's exact-name index.
func (c *InMemoryClient) IndexRecord(table string, rec *catalog.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index[table] == nil {
		c.index[table] = make(map[string]*catalog.Record)
	}
	c.index[table][names.Canonical(rec.Name)] = rec
}

// SetLeveledFeatures registers an entity's expanded feature tree.
func (c *InMemoryClient) SetLeveledFeatures(table, id string, tree catalog.LeveledFeatures) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features[table+"/"+id] = tree
}

// Table returns every row of the named table.
func (c *InMemoryClient) Table(ctx context.Context, table string) ([]*catalog.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables[table], nil
}

// Lookup consults the exact-name index; a miss returns (nil, nil).
func (c *InMemoryClient) Lookup(ctx context.Context, table, name string) (*catalog.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx, ok := c.index[table]; ok {
		return idx[names.Canonical(name)], nil
	}
	return nil, nil
}

// ExpandLeveledFeatures returns the registered tree capped at levelCap.
func (c *InMemoryClient) ExpandLeveledFeatures(ctx context.Context, table, id string, levelCap int) (catalog.LeveledFeatures, error) {
	c.mu.RLock()
	tree, ok := c.features[table+"/"+id]
	c.mu.RUnlock()

	if !ok {
		return nil, sberr.NotFoundf("no feature tree for '%s' in table '%s'", id, table)
	}

	capped := make(catalog.LeveledFeatures, 0, len(tree))
	for _, bucket := range tree {
		if bucket.Level <= levelCap {
			capped = append(capped, bucket)
		}
	}
	return capped, nil
}
