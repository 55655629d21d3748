//go:build integration

package codex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/testutils"
)

func TestRedisClientAgainstRealRedis(t *testing.T) {
	redisClient := testutils.CreateTestRedisClientOrSkip(t)
	testutils.SeedTestCatalog(t, redisClient)

	client, err := codex.NewRedisClient(&codex.RedisConfig{Client: redisClient})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Preload(ctx))

	rows, err := client.Table(ctx, catalog.TableSkills)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "History", rows[0].Name)

	rec, err := client.Lookup(ctx, catalog.TableDeities, "Vaslorian")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "deity-vaslorian", rec.ID)

	// Index misses are (nil, nil) so the resolver can fall back to a scan
	rec, err = client.Lookup(ctx, catalog.TableDeities, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, rec)

	tree, err := client.ExpandLeveledFeatures(ctx, catalog.TableClasses, "cls-conduit", 10)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "g-cls-deity", tree[0].Features[0].GUID)
}
