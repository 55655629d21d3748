package engine

import (
	"context"

	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/domain/source"
)

// Orchestrator drives the engine across an entire leveled tree of source
// selections against one catalog tree. One orchestrator is reused across
// differently-scoped passes by setting and clearing the filter between
// calls, so the catalog tree is flattened once.
type Orchestrator struct {
	engine  *Engine
	targets catalog.LeveledFeatures
	filter  Filter
}

// NewOrchestrator creates an orchestrator bound to one catalog tree.
func NewOrchestrator(e *Engine, targets catalog.LeveledFeatures) *Orchestrator {
	return &Orchestrator{
		engine:  e,
		targets: targets,
	}
}

// SetFilter scopes subsequent passes to catalog nodes passing the filter.
func (o *Orchestrator) SetFilter(f Filter) {
	o.filter = f
}

// ClearFilter removes the active filter.
func (o *Orchestrator) ClearFilter() {
	o.filter = nil
}

// ProcessLeveled resolves every source bucket against the whole catalog
// tree and merges the per-node results. Source buckets are visited in
// declaration order whatever their level numbers say; a source "level 3"
// feature may well land in a slot the catalog introduces at another level.
func (o *Orchestrator) ProcessLeveled(ctx context.Context, src source.LeveledFeatures) (*Result, error) {
	merged := NewResult()

	for _, bucket := range src {
		for _, node := range bucket.Features {
			result, err := o.engine.ResolveOne(ctx, node, o.targets, o.filter)
			if err != nil {
				return nil, err
			}
			merged.Merge(result)
		}
	}

	return merged, nil
}

// ProcessOne resolves a single source node under the current filter.
func (o *Orchestrator) ProcessOne(ctx context.Context, node *source.FeatureNode) (*Result, error) {
	return o.engine.ResolveOne(ctx, node, o.targets, o.filter)
}
