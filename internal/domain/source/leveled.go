package source

// LevelBucket groups the feature nodes a builder export attaches to one
// character level.
type LevelBucket struct {
	Level    int            `json:"level"`
	Features []*FeatureNode `json:"features"`
}

// LeveledFeatures is an ordered sequence of level buckets. Levels are not
// assumed sorted or contiguous; consumers visit every bucket.
type LeveledFeatures []LevelBucket

// AllFeatures returns every feature across all buckets in declaration order.
func (lf LeveledFeatures) AllFeatures() []*FeatureNode {
	var out []*FeatureNode
	for _, bucket := range lf {
		out = append(out, bucket.Features...)
	}
	return out
}
