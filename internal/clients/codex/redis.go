package codex

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/ironreach/steelbridge/internal/domain/catalog"
	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/names"
)

// Redis key layout:
//   codex:table:<table>          list of record JSON, in catalog order
//   codex:index:<table>          hash: canonical name -> record JSON
//   codex:features:<table>:<id>  leveled feature tree JSON

// RedisClient implements Client against the catalog's Redis store.
type RedisClient struct {
	client redis.UniversalClient

	mu     sync.RWMutex
	tables map[string][]*catalog.Record
}

// RedisConfig holds configuration for the Redis-backed catalog client.
type RedisConfig struct {
	Client redis.UniversalClient
}

// NewRedisClient creates a catalog client over an existing Redis connection.
func NewRedisClient(cfg *RedisConfig) (*RedisClient, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, sberr.InvalidArgument("redis client is required")
	}

	return &RedisClient{
		client: cfg.Client,
		tables: make(map[string][]*catalog.Record),
	}, nil
}

// AllTables lists every table the catalog ships.
func AllTables() []string {
	return []string{
		catalog.TableSkills,
		catalog.TableLanguages,
		catalog.TablePerks,
		catalog.TableAncestries,
		catalog.TableCultures,
		catalog.TableCareers,
		catalog.TableClasses,
		catalog.TableSubclasses,
		catalog.TableDomains,
		catalog.TableDeities,
		catalog.TableKits,
	}
}

// Preload warms the table cache for every known table concurrently. An
// import touches most tables, so one round trip per table up front beats
// lazy loading mid-resolution.
func (c *RedisClient) Preload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, table := range AllTables() {
		g.Go(func() error {
			_, err := c.loadTable(gctx, table)
			return err
		})
	}

	return g.Wait()
}

// Table returns every row of the named table in catalog order.
func (c *RedisClient) Table(ctx context.Context, table string) ([]*catalog.Record, error) {
	if table == "" {
		return nil, sberr.InvalidArgument("table is required")
	}

	c.mu.RLock()
	rows, ok := c.tables[table]
	c.mu.RUnlock()
	if ok {
		return rows, nil
	}

	return c.loadTable(ctx, table)
}

func (c *RedisClient) loadTable(ctx context.Context, table string) ([]*catalog.Record, error) {
	raw, err := c.client.LRange(ctx, TableKey(table), 0, -1).Result()
	if err != nil {
		return nil, sberr.Wrapf(err, "failed to load table '%s'", table)
	}

	rows := make([]*catalog.Record, 0, len(raw))
	for _, item := range raw {
		var rec catalog.Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, sberr.Wrapf(err, "corrupt record in table '%s'", table)
		}
		rows = append(rows, &rec)
	}

	c.mu.Lock()
	c.tables[table] = rows
	c.mu.Unlock()

	return rows, nil
}

// Lookup consults the curated exact-name index. A miss returns (nil, nil);
// the resolver falls back to a normalized scan.
func (c *RedisClient) Lookup(ctx context.Context, table, name string) (*catalog.Record, error) {
	if table == "" || name == "" {
		return nil, sberr.InvalidArgument("table and name are required")
	}

	raw, err := c.client.HGet(ctx, IndexKey(table), names.Canonical(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, sberr.Wrapf(err, "index lookup failed for table '%s'", table)
	}

	var rec catalog.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, sberr.Wrapf(err, "corrupt index entry in table '%s'", table)
	}

	return &rec, nil
}

// ExpandLeveledFeatures returns the entity's feature tree up to levelCap.
// The store holds the full expansion; buckets above the cap are dropped.
func (c *RedisClient) ExpandLeveledFeatures(ctx context.Context, table, id string, levelCap int) (catalog.LeveledFeatures, error) {
	if table == "" || id == "" {
		return nil, sberr.InvalidArgument("table and id are required")
	}

	raw, err := c.client.Get(ctx, FeaturesKey(table, id)).Result()
	if err == redis.Nil {
		return nil, sberr.NotFoundf("no feature tree for '%s' in table '%s'", id, table).
			WithMeta("table", table).
			WithMeta("id", id)
	}
	if err != nil {
		return nil, sberr.Wrapf(err, "failed to load feature tree for '%s'", id)
	}

	var tree catalog.LeveledFeatures
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return nil, sberr.Wrapf(err, "corrupt feature tree for '%s'", id)
	}

	capped := make(catalog.LeveledFeatures, 0, len(tree))
	for _, bucket := range tree {
		if bucket.Level <= levelCap {
			capped = append(capped, bucket)
		}
	}

	return capped, nil
}

// TableKey returns the Redis key of a table's record list. The key helpers
// are exported for the catalog loader tooling and for test seeding.
func TableKey(table string) string {
	return fmt.Sprintf("codex:table:%s", table)
}

func IndexKey(table string) string {
	return fmt.Sprintf("codex:index:%s", table)
}

func FeaturesKey(table, id string) string {
	return fmt.Sprintf("codex:features:%s:%s", table, id)
}
