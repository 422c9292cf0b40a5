package model

// SpatialDataset is an ordered, set-once sequence of Features. It owns
// its Features exclusively: the constructor copies the input slice and
// accessors never expose the backing array, so a new acquisition
// replaces a dataset wholesale instead of patching it.
type SpatialDataset struct {
	features []Feature
}

// NewSpatialDataset builds a dataset from the given features.
func NewSpatialDataset(features []Feature) *SpatialDataset {
	owned := make([]Feature, len(features))
	copy(owned, features)
	return &SpatialDataset{features: owned}
}

// Size returns the number of features.
func (d *SpatialDataset) Size() int {
	return len(d.features)
}

// At returns the feature at index i.
func (d *SpatialDataset) At(i int) Feature {
	return d.features[i]
}

// Features returns a copy of the feature sequence.
func (d *SpatialDataset) Features() []Feature {
	out := make([]Feature, len(d.features))
	copy(out, d.features)
	return out
}

// Filter returns a new dataset holding the features for which keep
// returns true. The receiver is not mutated.
func (d *SpatialDataset) Filter(keep func(Feature) bool) *SpatialDataset {
	var kept []Feature
	for _, f := range d.features {
		if keep(f) {
			kept = append(kept, f)
		}
	}
	return &SpatialDataset{features: kept}
}

// CategoryCounts returns the number of features per category.
func (d *SpatialDataset) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, f := range d.features {
		counts[f.Category]++
	}
	return counts
}
