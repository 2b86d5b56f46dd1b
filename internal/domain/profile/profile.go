// Package profile reduces encoded records to one embedding per user.
//
// Aggregation is the arithmetic mean of the sin and cos components,
// separately, over all of a user's records. Averaging points on a circle is
// not itself a point on the circle: a user whose activity is spread evenly
// around the day collapses toward the origin. That is intentional and kept
// as-is; a near-zero profile reads as "no consistent time pattern". Callers
// using cosine similarity must treat such profiles as degenerate.
package profile

import "github.com/unzippd/portfolio/internal/domain/model"

// Record is one encoded observation ready for aggregation.
type Record struct {
	UserID    string
	Embedding model.TimeEmbedding
}

// Aggregate groups records by user id and averages each group's embeddings.
// Profiles are returned in order of each user's first appearance, which fixes
// matrix indexing and makes downstream tie-breaks reproducible.
func Aggregate(records []Record) []model.UserProfile {
	type bucket struct {
		sumSin float64
		sumCos float64
		count  int
	}
	order := make([]string, 0, len(records))
	buckets := make(map[string]*bucket, len(records))

	for _, r := range records {
		b, ok := buckets[r.UserID]
		if !ok {
			b = &bucket{}
			buckets[r.UserID] = b
			order = append(order, r.UserID)
		}
		b.sumSin += r.Embedding.Sin
		b.sumCos += r.Embedding.Cos
		b.count++
	}

	profiles := make([]model.UserProfile, 0, len(order))
	for _, id := range order {
		b := buckets[id]
		n := float64(b.count)
		profiles = append(profiles, model.UserProfile{
			UserID:    id,
			Embedding: model.TimeEmbedding{Sin: b.sumSin / n, Cos: b.sumCos / n},
		})
	}
	return profiles
}
