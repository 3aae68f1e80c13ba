package storage

import "github.com/coregx/seqclass/ecurve"

// Stats summarizes a built Ecurve the way the reference tool's build step
// reports after construction: how many suffixes are indexed, how the
// buckets are distributed, and how much of the prefix table is EDGE.
type Stats struct {
	SuffixCount      int
	NumPrefixes      int
	PopulatedBuckets int
	EdgeBuckets      int
	AvgBucketSize    float64
	MaxBucketSize    int
}

// Stat computes Stats for e.
func Stat(e *ecurve.Ecurve) Stats {
	populated := e.Populated()
	s := Stats{
		SuffixCount:      e.SuffixCount(),
		NumPrefixes:      e.NumPrefixes(),
		PopulatedBuckets: len(populated),
		EdgeBuckets:      e.EdgeCount(),
	}
	for _, b := range populated {
		if len(b.Suffixes) > s.MaxBucketSize {
			s.MaxBucketSize = len(b.Suffixes)
		}
	}
	if s.PopulatedBuckets > 0 {
		s.AvgBucketSize = float64(s.SuffixCount) / float64(s.PopulatedBuckets)
	}
	return s
}
