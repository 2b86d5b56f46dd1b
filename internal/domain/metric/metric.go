// Package metric computes pairwise comparison matrices over user profiles.
//
// One pipeline serves both comparison modes: Euclidean distance and cosine
// similarity are strategies selected by a Metric value rather than two copies
// of the computation.
package metric

import (
	"fmt"
	"strings"
)

// Metric selects the comparison strategy for a matrix.
type Metric int

// Supported metrics.
const (
	// Distance is Euclidean distance between embeddings; lower is closer.
	// Values lie in [0, 2] for unit-circle points.
	Distance Metric = iota
	// Similarity is cosine similarity between embeddings; higher is more
	// alike. Values lie in [-1, 1].
	Similarity
)

// degenerateNorm is the cutoff below which an aggregated embedding is treated
// as the zero vector. Cosine similarity is undefined against such a vector.
const degenerateNorm = 1e-9

func (m Metric) String() string {
	switch m {
	case Distance:
		return "distance"
	case Similarity:
		return "similarity"
	default:
		return "unknown"
	}
}

// Identity is the value of a self-comparison cell: 0 for distance, 1 for
// similarity.
func (m Metric) Identity() float64 {
	if m == Similarity {
		return 1
	}
	return 0
}

// Parse maps a metric name to its Metric value.
func Parse(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "distance", "euclidean":
		return Distance, nil
	case "similarity", "cosine":
		return Similarity, nil
	default:
		return Distance, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}
